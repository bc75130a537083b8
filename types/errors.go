package types

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

type ErrorKind string

const (
	ErrAuth     ErrorKind = "auth_error"
	ErrFetch    ErrorKind = "fetch_error"
	ErrUpload   ErrorKind = "upload_error"
	ErrSubmit   ErrorKind = "submit_error"
	ErrStatus   ErrorKind = "status_error"
	ErrDownload ErrorKind = "download_error"
	ErrShape    ErrorKind = "shape_error"
	ErrTimeout  ErrorKind = "timeout_error"
)

// Error is the single error type surfaced by the pipeline. Op names the step
// that failed; Err keeps the cause for logs.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Errorf(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsNetwork reports whether err was caused by the transport rather than by
// the provider's answer.
func IsNetwork(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
