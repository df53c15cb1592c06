package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// FailureKind classifies why an upstream fetch produced no data.
type FailureKind int

const (
	Unreachable FailureKind = iota
	Timeout
	MalformedResponse
	NotFound
)

func (k FailureKind) String() string {
	switch k {
	case Unreachable:
		return "unreachable"
	case Timeout:
		return "timeout"
	case MalformedResponse:
		return "malformed response"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is the typed failure every provider call returns. Callers match it
// with errors.As; no provider retries internally.
type Error struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind FailureKind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// classifyTransport maps a transport-level error to Timeout or Unreachable.
func classifyTransport(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(Timeout, op, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(Timeout, op, err)
	}
	return newError(Unreachable, op, err)
}

// KindOf extracts the failure kind from an error chain. The second return
// is false when the error did not come from a provider.
func KindOf(err error) (FailureKind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
