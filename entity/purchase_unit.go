package entity

import (
	"encoding/json"

	"github.com/adobaai/ppcp"
)

// DefaultReferenceID is the reference of the single purchase unit built for a WooCommerce order or cart.
const DefaultReferenceID = "default"

// PurchaseUnit represents either a full or partial order
// that the payer intends to purchase from the payee.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-purchase_unit.
type PurchaseUnit struct {
	referenceID    string
	description    string
	customID       string
	invoiceID      string
	softDescriptor string
	amount         *Amount
	items          []*Item
	shipping       *Shipping
	payments       *Payments
}

type PurchaseUnitParams struct {
	ReferenceID    string // Required
	Description    string
	CustomID       string
	InvoiceID      string
	SoftDescriptor string
	Amount         *Amount
	Items          []*Item
	Shipping       *Shipping // Optional
	Payments       *Payments // Optional
}

// NewPurchaseUnit returns a [*ppcp.RuntimeError] when the reference ID is empty.
func NewPurchaseUnit(p PurchaseUnitParams) (*PurchaseUnit, error) {
	if p.ReferenceID == "" {
		return nil, ppcp.MissingField("purchase unit", "reference_id", "No reference ID given.")
	}
	return &PurchaseUnit{
		referenceID:    p.ReferenceID,
		description:    p.Description,
		customID:       p.CustomID,
		invoiceID:      p.InvoiceID,
		softDescriptor: p.SoftDescriptor,
		amount:         p.Amount,
		items:          p.Items,
		shipping:       p.Shipping,
		payments:       p.Payments,
	}, nil
}

func (u *PurchaseUnit) ReferenceID() string    { return u.referenceID }
func (u *PurchaseUnit) Description() string    { return u.description }
func (u *PurchaseUnit) CustomID() string       { return u.customID }
func (u *PurchaseUnit) InvoiceID() string      { return u.invoiceID }
func (u *PurchaseUnit) SoftDescriptor() string { return u.softDescriptor }
func (u *PurchaseUnit) Amount() *Amount        { return u.amount }
func (u *PurchaseUnit) Shipping() *Shipping    { return u.shipping }
func (u *PurchaseUnit) Payments() *Payments    { return u.payments }

// Items returns a copy of the items.
func (u *PurchaseUnit) Items() []*Item {
	return append([]*Item(nil), u.items...)
}

type purchaseUnitJSON struct {
	ReferenceID    string    `json:"reference_id"`
	Amount         *Amount   `json:"amount,omitempty"`
	Description    string    `json:"description,omitempty"`
	Items          []*Item   `json:"items,omitempty"`
	CustomID       string    `json:"custom_id,omitempty"`
	InvoiceID      string    `json:"invoice_id,omitempty"`
	SoftDescriptor string    `json:"soft_descriptor,omitempty"`
	Shipping       *Shipping `json:"shipping,omitempty"`
	Payments       *Payments `json:"payments,omitempty"`
}

func (u *PurchaseUnit) MarshalJSON() ([]byte, error) {
	return json.Marshal(purchaseUnitJSON{
		ReferenceID:    u.referenceID,
		Amount:         u.amount,
		Description:    u.description,
		Items:          u.items,
		CustomID:       u.customID,
		InvoiceID:      u.invoiceID,
		SoftDescriptor: u.softDescriptor,
		Shipping:       u.shipping,
		Payments:       u.payments,
	})
}
