package geocoding

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure kinds of a geocoding call.
var (
	ErrTransport = errors.New("geocoding transport failure")
	ErrDecode    = errors.New("geocoding response decode failure")
)

// TransportError wraps any failure to send a request or receive its response,
// including non-2xx HTTP statuses.
type TransportError struct {
	Op  string // Op is the operation that failed, e.g. "geocode".
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// DecodeError wraps any failure to decode a response body into the expected
// schema: malformed JSON, missing or mistyped fields and unrecognized codes.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrDecode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// StatusError is returned by HTTPTransport when the service answers with a
// non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("geocoding API returned status %d: %s", e.Code, e.Body)
}
