package wc

import (
	"encoding/json"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// REST API v3 order, amounts are decimal strings in the order currency.
//
// See https://woocommerce.github.io/woocommerce-rest-api-docs/#order-properties.
type restOrder struct {
	ID            int             `json:"id"`
	Number        string          `json:"number"`
	Currency      string          `json:"currency"`
	CustomerID    int             `json:"customer_id"`
	Total         decimal.Decimal `json:"total"`
	ShippingTotal decimal.Decimal `json:"shipping_total"`
	ShippingTax   decimal.Decimal `json:"shipping_tax"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	Billing       Address         `json:"billing"`
	Shipping      Address         `json:"shipping"`
	LineItems     []restLineItem  `json:"line_items"`
	FeeLines      []restFeeLine   `json:"fee_lines"`
}

type restLineItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	ProductID   int             `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	SubtotalTax decimal.Decimal `json:"subtotal_tax"`
	SKU         string          `json:"sku"`
}

type restFeeLine struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// RESTOrder is an [Order] read from the REST API v3.
type RESTOrder struct {
	o restOrder

	// Products that are virtual or downloadable, by product ID.
	// The order resource does not carry these flags.
	digital map[int]bool
}

// ParseRESTOrder parses the body of GET /wp-json/wc/v3/orders/{id}.
func ParseRESTOrder(bs []byte) (*RESTOrder, error) {
	var o restOrder
	if err := json.Unmarshal(bs, &o); err != nil {
		return nil, errors.Wrap(err, "unmarshal order")
	}
	if o.ID == 0 {
		return nil, errors.New("order without id")
	}
	return &RESTOrder{o: o}, nil
}

// MarkDigital marks the products as virtual, their lines map to digital goods.
func (r *RESTOrder) MarkDigital(productIDs ...int) {
	if r.digital == nil {
		r.digital = make(map[int]bool, len(productIDs))
	}
	for _, id := range productIDs {
		r.digital[id] = true
	}
}

func (r *RESTOrder) ID() int {
	return r.o.ID
}

// Number returns the order number, WooCommerce falls back to the ID when
// no sequential numbering plugin is active.
func (r *RESTOrder) Number() string {
	if r.o.Number == "" {
		return strconv.Itoa(r.o.ID)
	}
	return r.o.Number
}

func (r *RESTOrder) CustomerID() int {
	return r.o.CustomerID
}

func (r *RESTOrder) Currency() string {
	return r.o.Currency
}

func (r *RESTOrder) Total() decimal.Decimal {
	return r.o.Total
}

func (r *RESTOrder) ShippingTotal() decimal.Decimal {
	return r.o.ShippingTotal
}

func (r *RESTOrder) ShippingTax() decimal.Decimal {
	return r.o.ShippingTax
}

func (r *RESTOrder) DiscountTotal() decimal.Decimal {
	return r.o.DiscountTotal
}

func (r *RESTOrder) BillingAddress() Address {
	return r.o.Billing
}

func (r *RESTOrder) ShippingAddress() Address {
	return r.o.Shipping
}

func (r *RESTOrder) Items() []LineItem {
	res := make([]LineItem, 0, len(r.o.LineItems))
	for _, it := range r.o.LineItems {
		res = append(res, LineItem{
			Name:        it.Name,
			SKU:         it.SKU,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
			SubtotalTax: it.SubtotalTax,
			Virtual:     r.digital[it.ProductID],
		})
	}
	return res
}

func (r *RESTOrder) Fees() []Fee {
	res := make([]Fee, 0, len(r.o.FeeLines))
	for _, f := range r.o.FeeLines {
		res = append(res, Fee{Name: f.Name, Amount: f.Total})
	}
	return res
}
