package booking

import (
	"errors"
	"fmt"
)

// ErrorClass tells the orchestrator whether a failed operation should stop
// the whole run or only the current candidate.
type ErrorClass string

const (
	// ClassAttempt means the current candidate cannot be booked; the next
	// candidate may still succeed.
	ClassAttempt ErrorClass = "attempt"
	// ClassRunFatal means the remote is rejecting the run as a whole
	// (rate limiting, malformed protocol); no further candidate is tried.
	ClassRunFatal ErrorClass = "runFatal"
	// ClassTransport is a connection-level failure; treated like ClassAttempt
	// except during search, where there is nothing to fall back to.
	ClassTransport ErrorClass = "transport"
)

// BookingError is the single error type every remote-facing operation
// returns. Only the orchestrator interprets the class.
type BookingError struct {
	Code    string
	Class   ErrorClass
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

func NewAttemptError(code, msg string) error {
	return &BookingError{Code: code, Class: ClassAttempt, Message: msg}
}

func NewRunFatalError(code, msg string) error {
	return &BookingError{Code: code, Class: ClassRunFatal, Message: msg}
}

func NewTransportError(code string, err error) error {
	return &BookingError{Code: code, Class: ClassTransport, Message: "transport failure", Err: err}
}

// ClassOf extracts the classification of err. Unclassified errors are treated
// as transport failures.
func ClassOf(err error) ErrorClass {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Class
	}
	return ClassTransport
}

// ShouldContinue reports whether the orchestrator may move on to the next
// candidate after err.
func ShouldContinue(err error) bool {
	return ClassOf(err) != ClassRunFatal
}
