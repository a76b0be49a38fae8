package session

import (
	"errors"
	"fmt"
)

// ValidationError is a local, pre-network failure. It never mutates session state.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Guard failures returned by the Controller before any request is sent.
var (
	ErrEmptyField     = &ValidationError{Reason: "empty field"}
	ErrEmptyAnswer    = &ValidationError{Reason: "please write an answer first"}
	ErrNoSession      = &ValidationError{Reason: "no active session"}
	ErrSessionExists  = &ValidationError{Reason: "a session is already running; reset it first"}
	ErrNotActive      = &ValidationError{Reason: "interview is not in progress"}
	ErrRequestPending = &ValidationError{Reason: "a request is already in flight"}
)

// ErrStaleResult reports a response that arrived after the session it belongs to
// was reset or replaced. The result has been discarded.
var ErrStaleResult = errors.New("result discarded: session changed while request was in flight")

// TransportError covers network failures and bodies that are not JSON.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-success HTTP status or an explicit error field in a
// well-formed body.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
