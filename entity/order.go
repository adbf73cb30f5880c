package entity

import (
	"time"

	"github.com/adobaai/ppcp"
)

// OrderIntent is the intent to either capture payment immediately
// or authorize a payment for an order after order creation.
//
// See https://developer.paypal.com/docs/api/orders/v2/#orders_create!path=intent&t=request.
type OrderIntent string

const (
	OICapture   OrderIntent = "CAPTURE"
	OIAuthorize OrderIntent = "AUTHORIZE"
)

type OrderStatus string

const (
	// OSCreated indicates the order was created with the specified context.
	OSCreated OrderStatus = "CREATED"

	// OSSaved indicates the order was saved and persisted.
	OSSaved OrderStatus = "SAVED"

	// OSApproved indicates the customer approved the payment through the PayPal wallet
	// or another form of guest or unbranded payment.
	// For example, a card, bank account, or so on.
	OSApproved OrderStatus = "APPROVED"

	// OSVoided indicates all purchase units in the order are voided.
	OSVoided OrderStatus = "VOIDED"

	// OSCompleted indicates the payment was authorized
	// or the authorized payment was captured for the order.
	OSCompleted OrderStatus = "COMPLETED"

	// OSPayerActionRequired indicates the order requires an action from the payer
	// (e.g. 3DS authentication).
	OSPayerActionRequired OrderStatus = "PAYER_ACTION_REQUIRED"
)

// Order is the PayPal order.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-order.
type Order struct {
	ID            string          `json:"id"`
	Intent        OrderIntent     `json:"intent"`
	Status        OrderStatus     `json:"status"`
	PurchaseUnits []*PurchaseUnit `json:"purchase_units"`
	Payer         *Payer          `json:"payer,omitempty"`
	PaymentSource *PaymentSource  `json:"payment_source,omitempty"`
	CreateTime    *time.Time      `json:"create_time,omitempty"`
	UpdateTime    *time.Time      `json:"update_time,omitempty"`
	Links         []*ppcp.Link    `json:"links,omitempty"`
}

// PurchaseUnit returns the unit with the reference ID or nil.
func (o *Order) PurchaseUnit(referenceID string) *PurchaseUnit {
	for _, u := range o.PurchaseUnits {
		if u.ReferenceID() == referenceID {
			return u
		}
	}
	return nil
}

// Link returns the href of the link with the relation, e.g. "approve", or "".
func (o *Order) Link(rel string) string {
	for _, l := range o.Links {
		if l.Rel == rel {
			return l.HRef
		}
	}
	return ""
}

// PaymentSource is the payment source of an order.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-payment_source.
type PaymentSource struct {
	Token  *TokenSource  `json:"token,omitempty"`
	Card   *CardSource   `json:"card,omitempty"`
	PayPal *PayPalSource `json:"paypal,omitempty"`
}

// TokenSource pays with a vaulted payment token.
type TokenSource struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// CardSource is a card, either vaulted (VaultID) or as PayPal describes it in responses.
type CardSource struct {
	VaultID          string            `json:"vault_id,omitempty"`
	Name             string            `json:"name,omitempty"`
	Brand            string            `json:"brand,omitempty"`
	LastDigits       string            `json:"last_digits,omitempty"`
	Expiry           string            `json:"expiry,omitempty"`
	StoredCredential *StoredCredential `json:"stored_credential,omitempty"`
}

// StoredCredential marks a merchant initiated payment with a stored card.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-card_stored_credential.
type StoredCredential struct {
	PaymentInitiator             string `json:"payment_initiator"`
	PaymentType                  string `json:"payment_type"`
	Usage                        string `json:"usage,omitempty"`
	PreviousTransactionReference string `json:"previous_transaction_reference,omitempty"`
}

// PayPalSource is a PayPal wallet.
type PayPalSource struct {
	EmailAddress string `json:"email_address,omitempty"`
	AccountID    string `json:"account_id,omitempty"`
	Name         *Name  `json:"name,omitempty"`
}

// ApplicationContext customizes the payer experience during the approval.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-order_application_context.
type ApplicationContext struct {
	BrandName          string `json:"brand_name,omitempty"`
	Locale             string `json:"locale,omitempty"`
	ShippingPreference string `json:"shipping_preference,omitempty"`
	UserAction         string `json:"user_action,omitempty"`
	ReturnURL          string `json:"return_url,omitempty"`
	CancelURL          string `json:"cancel_url,omitempty"`
}

// Patch is a JSON patch operation on an order.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-patch.
type Patch struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}
