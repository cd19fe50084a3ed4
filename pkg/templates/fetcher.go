package templates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Path returns the conventional location of a template:
// templates/<platform>/<name>.html.
func Path(platform, name string) string {
	return path.Join("templates", platform, name+".html")
}

// Fetcher retrieves raw template bytes for a conventional path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, path string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// FSFetcher reads templates from an fs.FS such as an embedded tree.
type FSFetcher struct {
	FS fs.FS
}

// Fetch reads path from the file system.
func (f FSFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if f.FS == nil {
		return nil, errors.New("templates: fs is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(f.FS, name)
}

// DirFetcher reads templates below a directory on disk.
type DirFetcher struct {
	Root string
}

// Fetch reads Root/path.
func (f DirFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if strings.TrimSpace(f.Root) == "" {
		return nil, errors.New("templates: directory root is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(filepath.Join(f.Root, filepath.FromSlash(name)))
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

// HTTPFetcher downloads templates relative to BaseURL. Any non-2xx status is
// a failure.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
	Timeout time.Duration
}

// Fetch issues GET BaseURL/path.
func (f HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	base := strings.TrimRight(strings.TrimSpace(f.BaseURL), "/")
	if base == "" {
		return nil, errors.New("templates: base URL is required")
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	reqCtx := ctx
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, base+"/"+strings.TrimLeft(name, "/"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("templates: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Chain tries each fetcher in order and returns the first non-empty result.
// The error of the last attempt is returned when all fail.
func Chain(fetchers ...Fetcher) Fetcher {
	return FetcherFunc(func(ctx context.Context, name string) ([]byte, error) {
		err := errors.New("templates: no fetcher configured")
		for _, f := range fetchers {
			if f == nil {
				continue
			}
			var data []byte
			data, err = f.Fetch(ctx, name)
			if err == nil && len(strings.TrimSpace(string(data))) > 0 {
				return data, nil
			}
			if err == nil {
				err = ErrEmptyTemplate
			}
		}
		return nil, err
	})
}
