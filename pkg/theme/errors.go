package theme

import (
	"errors"
	"fmt"
)

// ErrInvalidDefinition is matched by every RegistrationError.
var ErrInvalidDefinition = errors.New("theme: invalid definition")

// RegistrationError reports a rejected theme. The registry is left unchanged.
type RegistrationError struct {
	Theme  string
	Reason string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("theme: register %q: %s", e.Theme, e.Reason)
}

func (e *RegistrationError) Unwrap() error { return ErrInvalidDefinition }
