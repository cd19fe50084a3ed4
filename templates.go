package cardgen

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-cardgen/pkg/templates"
)

//go:embed templates/*/*.html
var embeddedTemplates embed.FS

// EmbeddedTemplates exposes the built-in card templates. Paths follow
// templates/<platform>/<template>.html, so the FS can be handed to
// templates.FSFetcher as is.
func EmbeddedTemplates() fs.FS {
	return embeddedTemplates
}

// EmbeddedFetcher reads the built-in card templates.
func EmbeddedFetcher() templates.Fetcher {
	return templates.FSFetcher{FS: embeddedTemplates}
}
