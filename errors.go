package restclient

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is the sentinel error wrapped by [StatusError].
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrNoResponse is returned by the decode helpers when no request
	// has captured a response body yet.
	ErrNoResponse = errors.New("no response captured")

	// ErrDecode is the sentinel error wrapped when the last response
	// body is not valid JSON.
	ErrDecode = errors.New("decoding response body")
)

// StatusError is returned when the server responds with a status code
// of 400 or above. The response body (capped at a few KB) is captured
// on the error so callers can inspect server-provided diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// TransportError is returned when the request never produced a
// response: connection refused, DNS failure, timeout, or a cancelled
// context. The underlying error is available via Unwrap.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
