package domain

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the failure classes a weather request can end in.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindRateLimited
	KindServiceUnavailable
	KindServerError
	KindNoDataFound
	KindJSONDecoding
	KindNetworkFailure
	KindTimeout
)

var kindNames = map[ErrorKind]string{
	KindUnknown:            "unknown",
	KindUnauthorized:       "unauthorized",
	KindForbidden:          "forbidden",
	KindNotFound:           "not_found",
	KindRateLimited:        "rate_limited",
	KindServiceUnavailable: "service_unavailable",
	KindServerError:        "server_error",
	KindNoDataFound:        "no_data_found",
	KindJSONDecoding:       "json_decoding_error",
	KindNetworkFailure:     "network_failure",
	KindTimeout:            "timeout",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// NetworkError is the only error type the transport returns. Cause is set for
// JSON decoding failures and, where available, for connectivity failures.
type NetworkError struct {
	Kind  ErrorKind
	Cause error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error: %s: %v", e.Kind, e.Cause)
	}
	return "network error: " + e.Kind.String()
}

func (e *NetworkError) Unwrap() error { return e.Cause }

// SafeMessage describes the failure by kind only. Use it wherever the text
// leaves the process; causes may hold request details.
func (e *NetworkError) SafeMessage() string {
	return "weather lookup failed: " + e.Kind.String()
}

// Is matches any *NetworkError of the same kind, so the sentinels below work
// with errors.Is regardless of cause.
func (e *NetworkError) Is(target error) bool {
	t, ok := target.(*NetworkError)
	return ok && t.Kind == e.Kind
}

// NewNetworkError returns a NetworkError of the given kind wrapping cause.
func NewNetworkError(kind ErrorKind, cause error) *NetworkError {
	return &NetworkError{Kind: kind, Cause: cause}
}

// Sentinels for errors.Is.
var (
	ErrUnauthorized       = &NetworkError{Kind: KindUnauthorized}
	ErrForbidden          = &NetworkError{Kind: KindForbidden}
	ErrNotFound           = &NetworkError{Kind: KindNotFound}
	ErrRateLimited        = &NetworkError{Kind: KindRateLimited}
	ErrServiceUnavailable = &NetworkError{Kind: KindServiceUnavailable}
	ErrServerError        = &NetworkError{Kind: KindServerError}
	ErrNoDataFound        = &NetworkError{Kind: KindNoDataFound}
	ErrJSONDecoding       = &NetworkError{Kind: KindJSONDecoding}
	ErrNetworkFailure     = &NetworkError{Kind: KindNetworkFailure}
	ErrTimeout            = &NetworkError{Kind: KindTimeout}
	ErrUnknown            = &NetworkError{Kind: KindUnknown}
)

// AsNetworkError extracts the NetworkError from err. Errors from outside the
// taxonomy are reported as KindUnknown so callers always get a kind.
func AsNetworkError(err error) *NetworkError {
	if err == nil {
		return nil
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne
	}
	return NewNetworkError(KindUnknown, err)
}
