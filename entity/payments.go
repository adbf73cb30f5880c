package entity

import (
	"time"
)

type AuthorizationStatus string

const (
	AuthorizationCreated           AuthorizationStatus = "CREATED"
	AuthorizationCaptured          AuthorizationStatus = "CAPTURED"
	AuthorizationPartiallyCaptured AuthorizationStatus = "PARTIALLY_CAPTURED"
	AuthorizationDenied            AuthorizationStatus = "DENIED"
	AuthorizationExpired           AuthorizationStatus = "EXPIRED"
	AuthorizationVoided            AuthorizationStatus = "VOIDED"
	AuthorizationPending           AuthorizationStatus = "PENDING"
	AuthorizationCaptureInProgress AuthorizationStatus = "CAPTURE_IN_PROGRESS"
)

// Is reports whether the status equals any of the given ones.
func (s AuthorizationStatus) Is(statuses ...AuthorizationStatus) bool {
	for _, o := range statuses {
		if s == o {
			return true
		}
	}
	return false
}

// StatusDetails explains a status, e.g. why a capture is pending.
type StatusDetails struct {
	Reason string `json:"reason"`
}

// Authorization is an authorized payment.
//
// See https://developer.paypal.com/docs/api/payments/v2/#authorizations_get.
type Authorization struct {
	ID             string              `json:"id"`
	Status         AuthorizationStatus `json:"status"`
	StatusDetails  *StatusDetails      `json:"status_details,omitempty"`
	Amount         *Money              `json:"amount,omitempty"`
	ExpirationTime *time.Time          `json:"expiration_time,omitempty"`
}

// Capture is a captured payment.
//
// See https://developer.paypal.com/docs/api/payments/v2/#captures_get.
type Capture struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	StatusDetails *StatusDetails `json:"status_details,omitempty"`
	Amount        *Money         `json:"amount,omitempty"`
	FinalCapture  bool           `json:"final_capture"`
	InvoiceID     string         `json:"invoice_id,omitempty"`
	CustomID      string         `json:"custom_id,omitempty"`
}

// Refund is a refunded capture.
//
// See https://developer.paypal.com/docs/api/payments/v2/#refunds_get.
type Refund struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Amount      *Money `json:"amount,omitempty"`
	InvoiceID   string `json:"invoice_id,omitempty"`
	NoteToPayer string `json:"note_to_payer,omitempty"`
}

// Payments are the payments PayPal attached to a purchase unit.
type Payments struct {
	Authorizations []*Authorization `json:"authorizations,omitempty"`
	Captures       []*Capture       `json:"captures,omitempty"`
	Refunds        []*Refund        `json:"refunds,omitempty"`
}
