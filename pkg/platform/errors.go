package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPlatform marks a platform outside the catalogue.
	ErrInvalidPlatform = errors.New("platform: invalid platform")
	// ErrInvalidTemplateName marks a template name that fails the identifier
	// pattern.
	ErrInvalidTemplateName = errors.New("platform: invalid template name")
)

// ValidationError reports malformed render coordinates.
type ValidationError struct {
	Platform string
	Template string
	Err      error
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInvalidPlatform):
		return fmt.Sprintf("platform: unknown platform %q", e.Platform)
	case errors.Is(e.Err, ErrInvalidTemplateName):
		return fmt.Sprintf("platform: template name %q must match %s", e.Template, templateNamePattern)
	default:
		return fmt.Sprintf("platform: invalid target %s/%s: %v", e.Platform, e.Template, e.Err)
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }
