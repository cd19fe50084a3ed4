package templates

import (
	"errors"
	"fmt"
)

// ErrEmptyTemplate marks a fetch that succeeded with no content.
var ErrEmptyTemplate = errors.New("templates: empty template")

// LoadError reports a template that could not be fetched. The store answers
// it with a fallback layout; it only surfaces through logs and
// Template.LoadErr.
type LoadError struct {
	Platform string
	Template string
	Path     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("templates: load %s/%s from %q: %v", e.Platform, e.Template, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
