package download

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData indicates the response body produced zero bytes. The
	// destination file is not created in this case.
	ErrNoData = errors.New("no data received")

	// ErrLengthMismatch indicates the byte count did not match the
	// response's Content-Length.
	ErrLengthMismatch = errors.New("content length mismatch")

	// ErrChecksumMismatch indicates the file checksum did not match
	// the expected value.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrCancelled indicates the download was cancelled via context.
	ErrCancelled = errors.New("download cancelled")
)

// Error wraps a sentinel error with additional detail.
type Error struct {
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}
