// Package api executes HTTP calls against the personality-analysis service
// and classifies every response into a fixed set of outcome kinds, so no
// caller ever re-derives status-code or body-shape handling.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is the classification of one request execution.
type Kind int

const (
	// KindSuccess: 2xx response whose body either carries success=true or no
	// success envelope at all. The raw body is the payload.
	KindSuccess Kind = iota

	// KindBusinessError: 2xx response with success=false; the service
	// rejected the operation and supplied a message.
	KindBusinessError

	// KindHTTPError: non-2xx status.
	KindHTTPError

	// KindTimeout: the timer settled before the HTTP call did.
	KindTimeout

	// KindNetworkError: the call failed before producing a usable response
	// (connection failure, malformed body).
	KindNetworkError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindBusinessError:
		return "business_error"
	case KindHTTPError:
		return "http_error"
	case KindTimeout:
		return "timeout"
	case KindNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// Outcome is the result of exactly one Executor.Do invocation.
type Outcome struct {
	Kind    Kind
	Payload json.RawMessage // KindSuccess
	Message string          // KindBusinessError / KindHTTPError
	Status  int             // KindHTTPError
	Cause   error           // KindNetworkError
}

// Err converts a non-success outcome into a *CallError; success yields nil.
func (o Outcome) Err() error {
	switch o.Kind {
	case KindSuccess:
		return nil
	default:
		return &CallError{Kind: o.Kind, Status: o.Status, Message: o.Message, cause: o.Cause}
	}
}

// CallError carries a classified failure back to command code. The message
// text is what the user should see.
type CallError struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *CallError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return "request timed out, please try again later"
	case KindNetworkError:
		if e.cause != nil {
			return fmt.Sprintf("network error: %v", e.cause)
		}
		return "network error"
	default:
		return e.Message
	}
}

func (e *CallError) Unwrap() error { return e.cause }

// IsTimeout reports whether err is a timeout-classified call failure.
func IsTimeout(err error) bool {
	var ce *CallError
	return errors.As(err, &ce) && ce.Kind == KindTimeout
}

// IsUnauthorized reports whether err is an HTTP 401, the signal to clear the
// local session.
func IsUnauthorized(err error) bool {
	var ce *CallError
	return errors.As(err, &ce) && ce.Kind == KindHTTPError && ce.Status == 401
}
