package entity

import (
	"encoding/json"
)

// Amount is the total of a purchase unit with an optional breakdown.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-amount_with_breakdown.
type Amount struct {
	money     Money
	breakdown *AmountBreakdown
}

func NewAmount(money Money, breakdown *AmountBreakdown) *Amount {
	return &Amount{money: money, breakdown: breakdown}
}

func (a *Amount) Money() Money {
	return a.money
}

func (a *Amount) CurrencyCode() string {
	return a.money.Currency()
}

func (a *Amount) Value() string {
	return a.money.String()
}

// Breakdown returns nil when PayPal did not get or send one.
func (a *Amount) Breakdown() *AmountBreakdown {
	return a.breakdown
}

type amountJSON struct {
	CurrencyCode string           `json:"currency_code"`
	Value        string           `json:"value"`
	Breakdown    *AmountBreakdown `json:"breakdown,omitempty"`
}

func (a *Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountJSON{
		CurrencyCode: a.money.Currency(),
		Value:        a.money.String(),
		Breakdown:    a.breakdown,
	})
}

// AmountBreakdown details the total, every field is optional.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-amount_breakdown.
type AmountBreakdown struct {
	ItemTotal        *Money `json:"item_total,omitempty"`
	Shipping         *Money `json:"shipping,omitempty"`
	Handling         *Money `json:"handling,omitempty"`
	TaxTotal         *Money `json:"tax_total,omitempty"`
	Insurance        *Money `json:"insurance,omitempty"`
	ShippingDiscount *Money `json:"shipping_discount,omitempty"`
	Discount         *Money `json:"discount,omitempty"`
}
