package client

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired means the operation needs a signed-in identity and
	// none is present.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotFound means the record store does not know the id.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidTransition means the store rejected an illegal status change.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrTimeout means the store call did not complete within the deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrRequestInFlight means a mutation for the same record is still
	// outstanding; the duplicate is refused rather than fired twice.
	ErrRequestInFlight = errors.New("request already in flight for this record")

	// ErrDeserialization means a store response carried values outside the
	// closed enums and was rejected instead of cached.
	ErrDeserialization = errors.New("response failed validation")
)

// APIError is the decoded error envelope of a rejected store call.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("record store returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("record store returned %d", e.Status)
}

// FetchError wraps a failed collection or record fetch.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch disasters: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// CreateError wraps a rejected report submission.
type CreateError struct {
	Err error
}

func (e *CreateError) Error() string { return "create disaster report: " + e.Err.Error() }
func (e *CreateError) Unwrap() error { return e.Err }

// TransitionError wraps a rejected status update other than an unknown id.
type TransitionError struct {
	Err error
}

func (e *TransitionError) Error() string { return "update disaster status: " + e.Err.Error() }
func (e *TransitionError) Unwrap() error { return e.Err }

// AuthenticationError wraps a rejected login.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string { return "login: " + e.Err.Error() }
func (e *AuthenticationError) Unwrap() error { return e.Err }

// RegistrationError wraps a rejected registration, e.g. a duplicate email.
type RegistrationError struct {
	Err error
}

func (e *RegistrationError) Error() string { return "register: " + e.Err.Error() }
func (e *RegistrationError) Unwrap() error { return e.Err }
