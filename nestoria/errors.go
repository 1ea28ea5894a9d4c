package nestoria

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrInvalidRequest indicates rejected parameters or a 9xx application code
	ErrInvalidRequest = errors.New("invalid request")
	// ErrBadLocation indicates the API could not resolve the requested location
	ErrBadLocation = errors.New("bad location")
	// ErrInternalError indicates the API reported an internal failure
	ErrInternalError = errors.New("internal error")
	// ErrInvalidVersion indicates the API rejected the requested API version
	ErrInvalidVersion = errors.New("invalid version")
	// ErrTransport indicates the HTTP round trip failed
	ErrTransport = errors.New("transport error")
	// ErrDecode indicates the response body could not be decoded
	ErrDecode = errors.New("decode error")
	// ErrUnknownCountry indicates a country code with no API host
	ErrUnknownCountry = errors.New("unknown country")
)

// InvalidKeysError is returned when parameters contain keys outside the
// allow-list of an action.
type InvalidKeysError struct {
	Action Action
	Keys   []string
}

// Error implements the error interface
func (e *InvalidKeysError) Error() string {
	return "invalid keys: " + strings.Join(e.Keys, ", ")
}

// Unwrap allows errors.Is(err, ErrInvalidRequest)
func (e *InvalidKeysError) Unwrap() error {
	return ErrInvalidRequest
}

// APIError carries an application response code reported inside a
// successful HTTP response.
type APIError struct {
	Kind error
	Code int
	// RawCode is the code exactly as it appeared in the response
	RawCode string
	Text    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s, %s", e.RawCode, e.Text)
}

// Unwrap returns the error kind
func (e *APIError) Unwrap() error {
	return e.Kind
}

// IsBadLocation checks if the API could not resolve the location
func (e *APIError) IsBadLocation() bool {
	return errors.Is(e.Kind, ErrBadLocation)
}

// TransportError wraps a failed or unsuccessful HTTP round trip.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transport error: %s: %v", e.URL, e.Err)
}

// Unwrap exposes both ErrTransport and the underlying cause
func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// DecodeError wraps a body that is not a valid API response.
type DecodeError struct {
	URL    string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode error: %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode error: %s: %s", e.URL, e.Reason)
}

// Unwrap exposes both ErrDecode and the underlying cause
func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}
	return []error{ErrDecode, e.Err}
}
