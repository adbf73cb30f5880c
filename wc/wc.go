// Package wc describes the WooCommerce data the PayPal mapping reads.
//
// Orders, carts and customers are read-only views, adapters for the
// Store API and the REST API v3 live in this package too.
package wc

import (
	"context"

	"github.com/shopspring/decimal"
)

// Address is a billing or shipping address as WooCommerce stores it.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// LineItem is a product line of an order or cart.
// Subtotal is the line price before discounts and without tax.
type LineItem struct {
	Name         string
	Description  string
	SKU          string
	Quantity     int
	Subtotal     decimal.Decimal
	SubtotalTax  decimal.Decimal
	Virtual      bool
	Downloadable bool
}

// Fee is an additional fee, a negative amount is a discount.
type Fee struct {
	Name   string
	Amount decimal.Decimal
}

// Totals is what orders and carts have in common.
type Totals interface {
	Currency() string
	Total() decimal.Decimal
	ShippingTotal() decimal.Decimal
	ShippingTax() decimal.Decimal
	DiscountTotal() decimal.Decimal
	Items() []LineItem
	Fees() []Fee
}

type Order interface {
	Totals
	ID() int
	Number() string
	CustomerID() int
	BillingAddress() Address
	ShippingAddress() Address
}

type Cart interface {
	Totals
}

// Customer is the customer of the current session, ID is 0 for guests.
type Customer interface {
	ID() int
	BillingAddress() Address
	ShippingAddress() Address
}

// Subscription is a WooCommerce Subscriptions subscription.
type Subscription interface {
	ID() int
	CustomerID() int
	PaymentMethod() string
	Meta(key string) string
	UpdateMeta(key, value string)
	Save(ctx context.Context) error

	// RelatedOrderCount counts the parent and renewal orders.
	RelatedOrderCount() int
	// ParentMeta reads the meta of the parent order, "" without a parent.
	ParentMeta(key string) string
}

// Gateway IDs of the PayPal payment methods.
const (
	PayPalGatewayID     = "ppcp-gateway"
	CreditCardGatewayID = "ppcp-credit-card-gateway"
)

// Meta keys on subscriptions and orders.
const (
	MetaPaymentTokenID               = "payment_token_id"
	MetaPreviousTransactionReference = "ppcp_previous_transaction_reference"
	MetaPayPalSubscription           = "ppcp_subscription"
	MetaPayPalOrderID                = "_ppcp_paypal_order_id"
)
