package ppcp

import (
	"fmt"
)

// Error is the PayPal API error response.
// See https://developer.paypal.com/api/rest/responses/.
type Error struct {
	StatusCode int

	Name    string         `json:"name"`
	Message string         `json:"message"`
	DebugID string         `json:"debug_id"`
	Details []*ErrorDetail `json:"details"`
	Links   []*Link        `json:"links"`

	// For identity errors
	Err     string `json:"error"`
	ErrDesc string `json:"error_description"`
}

func (e *Error) Error() string {
	if e.Err != "" {
		return e.Err + ": " + e.ErrDesc
	}
	if e.Name == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Name, e.Message, e.DebugID)
}

type ErrorDetail struct {
	Field       string `json:"field,omitempty"`
	Value       string `json:"value,omitempty"`
	Location    string `json:"location,omitempty"`
	Issue       string `json:"issue"`
	Description string `json:"description"`
}

// RuntimeError is the error every endpoint and response mapper returns.
//
// The message is fixed per operation and safe to show to a customer,
// the cause (transport error, [*Error] or [*MissingFieldError]) is only reachable with Unwrap.
type RuntimeError struct {
	Message string
	Err     error
}

func NewRuntimeError(msg string, err error) *RuntimeError {
	return &RuntimeError{Message: msg, Err: err}
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a PayPal response without a required field.
type MissingFieldError struct {
	Resource string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return e.Resource + ": missing required field " + e.Field
}

// MissingField returns a [*RuntimeError] with the given message caused by a [*MissingFieldError].
func MissingField(resource, field, msg string) *RuntimeError {
	return NewRuntimeError(msg, &MissingFieldError{Resource: resource, Field: field})
}
