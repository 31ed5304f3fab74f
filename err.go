package myft

import (
	"fmt"

	"github.com/financial-times/myft.go/pkg/constants"
)

var (
	ErrNoAPIRoot         = constants.ErrNoAPIRoot
	ErrInvalidPath       = constants.ErrInvalidPath
	ErrNotFound          = constants.ErrNotFound
	ErrTransport         = constants.ErrTransport
	ErrMalformedResponse = constants.ErrMalformedResponse
	ErrUnsupportedQuery  = constants.ErrUnsupportedQuery
)

// InvalidPathError is returned before any I/O when an endpoint contains an
// unresolved placeholder.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("%s. invalid path: %s", ErrInvalidPath, e.Path)
}

func (e *InvalidPathError) Unwrap() error {
	return ErrInvalidPath
}

// NotFoundError is the service answering 404 for the requested endpoint.
type NotFoundError struct {
	Method string
	Path   string
}

func (e *NotFoundError) Error() string {
	return ErrNotFound.Error()
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrTransport, e.Method, e.URL, e.Err)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is a response body that could not be parsed as JSON.
type MalformedResponseError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s (status %d): %v", ErrMalformedResponse, e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
