package factory

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/wc"
)

type AmountMapper interface {
	FromWCOrder(o wc.Order) *entity.Amount
	FromWCCart(c wc.Cart) *entity.Amount
	FromPayPalResponse(raw json.RawMessage) (*entity.Amount, error)
}

// AmountFactory builds the amount with its breakdown from the items of the source.
type AmountFactory struct {
	items ItemMapper
}

func NewAmountFactory(items ItemMapper) *AmountFactory {
	return &AmountFactory{items: items}
}

func (f *AmountFactory) FromWCOrder(o wc.Order) *entity.Amount {
	return f.fromTotals(o, f.items.FromWCOrder(o))
}

func (f *AmountFactory) FromWCCart(c wc.Cart) *entity.Amount {
	return f.fromTotals(c, f.items.FromWCCart(c))
}

// fromTotals sums the items for the breakdown.
// Negative items are discounts, their absolute value adds to the discount of the source.
func (f *AmountFactory) fromTotals(t wc.Totals, items []*entity.Item) *entity.Amount {
	currency := t.Currency()
	var itemTotal, taxTotal decimal.Decimal
	discount := t.DiscountTotal()
	for _, it := range items {
		if it.IsDiscount() {
			discount = discount.Add(it.Total().Abs().Value())
			continue
		}
		itemTotal = itemTotal.Add(it.Total().Value())
		if tax := it.Tax(); tax != nil {
			taxTotal = taxTotal.Add(tax.Mul(it.Quantity()).Value())
		}
	}

	breakdown := &entity.AmountBreakdown{
		ItemTotal: ptr(entity.NewMoney(itemTotal, currency)),
		Shipping:  ptr(entity.NewMoney(t.ShippingTotal().Add(t.ShippingTax()), currency)),
	}
	if !taxTotal.IsZero() {
		breakdown.TaxTotal = ptr(entity.NewMoney(taxTotal, currency))
	}
	if !discount.IsZero() {
		breakdown.Discount = ptr(entity.NewMoney(discount, currency))
	}
	return entity.NewAmount(entity.NewMoney(t.Total(), currency), breakdown)
}

type amountResponse struct {
	CurrencyCode string                  `json:"currency_code"`
	Value        string                  `json:"value"`
	Breakdown    *entity.AmountBreakdown `json:"breakdown"`
}

func (f *AmountFactory) FromPayPalResponse(raw json.RawMessage) (*entity.Amount, error) {
	const msg = "Could not parse amount."
	r, err := decode[amountResponse](raw, "amount", msg)
	if err != nil {
		return nil, err
	}
	if r.CurrencyCode == "" {
		return nil, ppcp.MissingField("amount", "currency_code", "No currency given for amount.")
	}
	if r.Value == "" {
		return nil, ppcp.MissingField("amount", "value", "No value given for amount.")
	}
	value, err := decimal.NewFromString(r.Value)
	if err != nil {
		return nil, ppcp.NewRuntimeError(msg, err)
	}
	return entity.NewAmount(entity.NewMoney(value, r.CurrencyCode), r.Breakdown), nil
}
