package catalog

import (
	"errors"
	"fmt"
)

// Kind classifies a catalog client failure.
// Use errors.As with *Error to branch on the kind in calling code.
type Kind int

const (
	// KindTransport covers DNS failures, connection resets and malformed payloads.
	KindTransport Kind = iota
	// KindAuth means the catalog rejected the credential.
	KindAuth
	// KindRateLimited means the remote side throttled the request,
	// as opposed to this client's own pacing gate.
	KindRateLimited
	// KindRequest is any other non-success response; StatusCode carries the status.
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindRateLimited:
		return "rate_limited"
	case KindRequest:
		return "request"
	}
	return "unknown"
}

// Error is a classified catalog client failure.
type Error struct {
	Kind       Kind
	StatusCode int // set for KindRequest
	Message    string
	Err        error // underlying cause, set for KindTransport
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("catalog %s error: %v", e.Kind, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("catalog %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("catalog %s error: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// transportError wraps a transport-level failure.
func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

// statusError classifies a non-success HTTP status.
func statusError(status int, body string) *Error {
	switch status {
	case 401, 403:
		return &Error{Kind: KindAuth, StatusCode: status, Message: body}
	case 429:
		return &Error{Kind: KindRateLimited, StatusCode: status, Message: body}
	default:
		return &Error{Kind: KindRequest, StatusCode: status, Message: body}
	}
}

// IsAuth reports whether err is a catalog authentication failure.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAuth
}

// IsRateLimited reports whether err is a remote-side throttle rejection.
func IsRateLimited(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindRateLimited
}
