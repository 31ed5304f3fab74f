package constants

import "errors"

var (
	ErrNoAPIRoot         = errors.New("myft client must be constructed with an api root")
	ErrInvalidPath       = errors.New("request must not contain undefined")
	ErrNotFound          = errors.New("no user data exists")
	ErrTransport         = errors.New("error making HTTP request")
	ErrMalformedResponse = errors.New("malformed JSON response")
	ErrUnsupportedQuery  = errors.New("unsupported query data type")
)
