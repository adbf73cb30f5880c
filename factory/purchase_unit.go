package factory

import (
	"encoding/json"
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/wc"
)

type PurchaseUnitMapper interface {
	FromWCOrder(o wc.Order) (*entity.PurchaseUnit, error)
	FromWCCart(c wc.Cart, customer wc.Customer) (*entity.PurchaseUnit, error)
	FromPayPalResponse(raw json.RawMessage) (*entity.PurchaseUnit, error)
}

// PurchaseUnitFactory builds the single purchase unit of a WooCommerce order or cart.
type PurchaseUnitFactory struct {
	amounts  AmountMapper
	items    ItemMapper
	shipping ShippingMapper
	payments PaymentsMapper
}

func NewPurchaseUnitFactory(
	amounts AmountMapper, items ItemMapper, shipping ShippingMapper, payments PaymentsMapper,
) *PurchaseUnitFactory {
	return &PurchaseUnitFactory{
		amounts:  amounts,
		items:    items,
		shipping: shipping,
		payments: payments,
	}
}

// FromWCOrder links the unit to the order through the custom ID (order ID)
// and the invoice ID ("WC-" followed by the order number).
func (f *PurchaseUnitFactory) FromWCOrder(o wc.Order) (*entity.PurchaseUnit, error) {
	shipping := f.shipping.FromWCOrder(o)
	return entity.NewPurchaseUnit(entity.PurchaseUnitParams{
		ReferenceID: entity.DefaultReferenceID,
		CustomID:    strconv.Itoa(o.ID()),
		InvoiceID:   "WC-" + o.Number(),
		Amount:      f.amounts.FromWCOrder(o),
		Items:       withoutDiscounts(f.items.FromWCOrder(o)),
		Shipping:    usableShipping(shipping),
	})
}

// FromWCCart builds the unit of a cart which has no order yet.
// The shipping comes from the customer of the session, a nil customer means no shipping.
func (f *PurchaseUnitFactory) FromWCCart(c wc.Cart, customer wc.Customer) (*entity.PurchaseUnit, error) {
	var shipping *entity.Shipping
	if customer != nil {
		shipping = usableShipping(f.shipping.FromWCCustomer(customer, false))
	}
	return entity.NewPurchaseUnit(entity.PurchaseUnitParams{
		ReferenceID: entity.DefaultReferenceID,
		Amount:      f.amounts.FromWCCart(c),
		Items:       withoutDiscounts(f.items.FromWCCart(c)),
		Shipping:    shipping,
	})
}

// withoutDiscounts drops the items with a negative unit amount, PayPal rejects them.
func withoutDiscounts(items []*entity.Item) []*entity.Item {
	return slices.DeleteFunc(slices.Clone(items), (*entity.Item).IsDiscount)
}

func usableShipping(s *entity.Shipping) *entity.Shipping {
	if !s.Usable() {
		return nil
	}
	return s
}

type purchaseUnitResponse struct {
	ReferenceID    string            `json:"reference_id"`
	Description    string            `json:"description"`
	CustomID       string            `json:"custom_id"`
	InvoiceID      string            `json:"invoice_id"`
	SoftDescriptor string            `json:"soft_descriptor"`
	Amount         json.RawMessage   `json:"amount"`
	Items          []json.RawMessage `json:"items"`
	Shipping       json.RawMessage   `json:"shipping"`
	Payments       json.RawMessage   `json:"payments"`
}

// FromPayPalResponse requires the reference ID and the amount,
// shipping and payments are only mapped when PayPal sent them.
func (f *PurchaseUnitFactory) FromPayPalResponse(raw json.RawMessage) (*entity.PurchaseUnit, error) {
	r, err := decode[purchaseUnitResponse](raw, "purchase unit", "Could not parse purchase unit.")
	if err != nil {
		return nil, err
	}
	if r.ReferenceID == "" {
		return nil, ppcp.MissingField("purchase unit", "reference_id", "No reference ID given.")
	}
	if !present(r.Amount) {
		return nil, ppcp.MissingField("purchase unit", "amount", "No amount given.")
	}

	amount, err := f.amounts.FromPayPalResponse(r.Amount)
	if err != nil {
		return nil, err
	}
	items, err := mapAll(r.Items, f.items.FromPayPalResponse)
	if err != nil {
		return nil, err
	}
	var shipping *entity.Shipping
	if present(r.Shipping) {
		if shipping, err = f.shipping.FromPayPalResponse(r.Shipping); err != nil {
			return nil, err
		}
	}
	var payments *entity.Payments
	if present(r.Payments) {
		if payments, err = f.payments.FromPayPalResponse(r.Payments); err != nil {
			return nil, err
		}
	}

	return entity.NewPurchaseUnit(entity.PurchaseUnitParams{
		ReferenceID:    r.ReferenceID,
		Description:    r.Description,
		CustomID:       r.CustomID,
		InvoiceID:      r.InvoiceID,
		SoftDescriptor: r.SoftDescriptor,
		Amount:         amount,
		Items:          items,
		Shipping:       shipping,
		Payments:       payments,
	})
}
