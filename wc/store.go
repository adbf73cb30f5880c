package wc

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Store API cart response, amounts are strings in minor units.
//
// See https://github.com/woocommerce/woocommerce/blob/trunk/plugins/woocommerce/src/StoreApi/docs/cart.md.
type storeCart struct {
	Items           []storeCartItem `json:"items"`
	Fees            []storeFee      `json:"fees"`
	Totals          storeTotals     `json:"totals"`
	NeedsShipping   bool            `json:"needs_shipping"`
	BillingAddress  Address         `json:"billing_address"`
	ShippingAddress Address         `json:"shipping_address"`
}

type storeCartItem struct {
	Key              string          `json:"key"`
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	ShortDescription string          `json:"short_description"`
	SKU              string          `json:"sku"`
	Quantity         int             `json:"quantity"`
	Totals           storeItemTotals `json:"totals"`
}

type storeItemTotals struct {
	LineSubtotal    decimal.Decimal `json:"line_subtotal"`
	LineSubtotalTax decimal.Decimal `json:"line_subtotal_tax"`
}

type storeFee struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Totals struct {
		Total decimal.Decimal `json:"total"`
	} `json:"totals"`
}

type storeTotals struct {
	CurrencyCode      string          `json:"currency_code"`
	CurrencyMinorUnit int32           `json:"currency_minor_unit"`
	TotalDiscount     decimal.Decimal `json:"total_discount"`
	TotalShipping     decimal.Decimal `json:"total_shipping"`
	TotalShippingTax  decimal.Decimal `json:"total_shipping_tax"`
	TotalPrice        decimal.Decimal `json:"total_price"`
}

// StoreCart is a [Cart] read from the Store API.
type StoreCart struct {
	c storeCart
}

// ParseStoreCart parses the body of GET /wp-json/wc/store/v1/cart.
func ParseStoreCart(bs []byte) (*StoreCart, error) {
	var c storeCart
	if err := json.Unmarshal(bs, &c); err != nil {
		return nil, errors.Wrap(err, "unmarshal cart")
	}
	if c.Totals.CurrencyCode == "" {
		return nil, errors.New("cart without currency")
	}
	return &StoreCart{c: c}, nil
}

// major converts an amount in minor units, e.g. "1050" is 10.50 for a currency with two decimals.
func (s *StoreCart) major(v decimal.Decimal) decimal.Decimal {
	return v.Shift(-s.c.Totals.CurrencyMinorUnit)
}

func (s *StoreCart) Currency() string {
	return s.c.Totals.CurrencyCode
}

func (s *StoreCart) Total() decimal.Decimal {
	return s.major(s.c.Totals.TotalPrice)
}

func (s *StoreCart) ShippingTotal() decimal.Decimal {
	return s.major(s.c.Totals.TotalShipping)
}

func (s *StoreCart) ShippingTax() decimal.Decimal {
	return s.major(s.c.Totals.TotalShippingTax)
}

func (s *StoreCart) DiscountTotal() decimal.Decimal {
	return s.major(s.c.Totals.TotalDiscount)
}

// Items returns the cart items.
// The Store API does not tell whether a product is virtual,
// items of a cart that needs no shipping are reported as virtual.
func (s *StoreCart) Items() []LineItem {
	res := make([]LineItem, 0, len(s.c.Items))
	for _, it := range s.c.Items {
		res = append(res, LineItem{
			Name:        it.Name,
			Description: it.ShortDescription,
			SKU:         it.SKU,
			Quantity:    it.Quantity,
			Subtotal:    s.major(it.Totals.LineSubtotal),
			SubtotalTax: s.major(it.Totals.LineSubtotalTax),
			Virtual:     !s.c.NeedsShipping,
		})
	}
	return res
}

func (s *StoreCart) Fees() []Fee {
	res := make([]Fee, 0, len(s.c.Fees))
	for _, f := range s.c.Fees {
		res = append(res, Fee{Name: f.Name, Amount: s.major(f.Totals.Total)})
	}
	return res
}

// Customer returns the customer the cart addresses belong to,
// or nil when the session has no address at all.
func (s *StoreCart) Customer() Customer {
	if s.c.BillingAddress == (Address{}) && s.c.ShippingAddress == (Address{}) {
		return nil
	}
	return &SessionCustomer{Billing: s.c.BillingAddress, Shipping: s.c.ShippingAddress}
}

// SessionCustomer is a [Customer] known only by its addresses.
type SessionCustomer struct {
	CustomerID int
	Billing    Address
	Shipping   Address
}

func (c *SessionCustomer) ID() int {
	return c.CustomerID
}

func (c *SessionCustomer) BillingAddress() Address {
	return c.Billing
}

func (c *SessionCustomer) ShippingAddress() Address {
	return c.Shipping
}
