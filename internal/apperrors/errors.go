package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConfirmationRequired indicates that a destructive command was
// dispatched without the user's confirmation.
var ErrConfirmationRequired = errors.New("confirmation required")

// ErrGatewayUnavailable indicates that the record gateway could not be
// reached at all (network failure, timeout).
var ErrGatewayUnavailable = errors.New("gateway unavailable")

// ErrSessionNotFound indicates an unknown or expired page session.
var ErrSessionNotFound = errors.New("session not found")

// GatewayError carries the server-provided message of a failed gateway
// command so it can be surfaced verbatim as a user notification.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Message)
}

// UserMessage returns the text fit for a user-visible notification.
func (e *GatewayError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "The server rejected the operation."
}

// MessageFor extracts the user-facing text from any error, preferring the
// gateway's own message when present.
func MessageFor(err error) string {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.UserMessage()
	}
	return err.Error()
}
