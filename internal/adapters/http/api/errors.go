package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrTimeout    = errors.New("lookup timed out")
	ErrInternal   = errors.New("internal error")
	ErrCanceled   = errors.New("request canceled")
)

// StatusClientClosedRequest is written when the request context was canceled
// by the client before the handler finished.
const StatusClientClosedRequest = 499

// OpError attaches the failing handler operation and an error kind to an
// underlying cause. errors.Is matches both the kind and the cause.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewKind builds an OpError without an underlying cause.
func NewKind(op string, kind error) error {
	return &OpError{Op: op, Kind: kind}
}

// WrapKind builds an OpError around err.
func WrapKind(op string, kind, err error) error {
	return &OpError{Op: op, Kind: kind, Err: err}
}
