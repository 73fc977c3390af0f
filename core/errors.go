package core

import "github.com/pkg/errors"

// FieldError pins a validation failure to the struct field that caused it.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries a request-level message and any per-field
// failures. The API layer renders it as a 400.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks an integrity failure no request can recover from, such as
// a stored record that no longer decodes into its declared shape. The API
// error handler signals the server to stop when it catches one.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown reports whether err (or its cause) is a shutdown error.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
