package trivia

import "errors"

// Error kinds surfaced by the service. Handlers map each to an HTTP status.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnprocessable = errors.New("unprocessable")
	ErrBadRequest    = errors.New("bad request")
)
