package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingRequired, ErrUnknownVariant, and ErrRefNotFound are exported
// sentinel values. The validators in this package do not wrap them: every
// validation failure carries a one-off message inside *ValidationError, so
// errors.Is does not match these sentinels against a validation error.
var (
	ErrMissingRequired = errors.New("validator: missing required field")
	ErrUnknownVariant  = errors.New("validator: unknown enum variant")
	ErrRefNotFound     = errors.New("validator: unresolved type reference")
)

// ValidationError reports a validation failure together with the path
// (map keys and array indices, outermost first) at which it occurred.
type ValidationError struct {
	Path []any // string for map keys, int for array indices
	Msg  string
	Err  error
}

func (e *ValidationError) Error() string {
	if len(e.Path) == 0 {
		return e.Msg
	}

	var b strings.Builder
	b.WriteString("$")
	for _, seg := range e.Path {
		switch s := seg.(type) {
		case string:
			b.WriteByte('.')
			b.WriteString(s)
		case int:
			fmt.Fprintf(&b, "[%d]", s)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)

	return b.String()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// fail builds a *ValidationError with no path; callers prepend path
// segments as the error unwinds through container validators.
func fail(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// withPath prepends seg to err's path if err is a *ValidationError,
// constructing one otherwise.
func withPath(seg any, err error) error {
	if err == nil {
		return nil
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		ve.Path = append([]any{seg}, ve.Path...)

		return ve
	}

	return &ValidationError{Path: []any{seg}, Msg: err.Error(), Err: err}
}
