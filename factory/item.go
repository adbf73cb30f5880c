package factory

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/wc"
)

const maxTextLength = 127

// ItemMapper builds items, it is what [AmountFactory] and [PurchaseUnitFactory] depend on.
type ItemMapper interface {
	FromWCOrder(o wc.Order) []*entity.Item
	FromWCCart(c wc.Cart) []*entity.Item
	FromPayPalResponse(raw json.RawMessage) (*entity.Item, error)
}

type ItemFactory struct{}

func NewItemFactory() *ItemFactory {
	return &ItemFactory{}
}

// FromWCOrder returns the line items followed by the fees of the order.
func (f *ItemFactory) FromWCOrder(o wc.Order) []*entity.Item {
	return f.fromTotals(o)
}

// FromWCCart returns the cart items followed by the fees of the cart.
func (f *ItemFactory) FromWCCart(c wc.Cart) []*entity.Item {
	return f.fromTotals(c)
}

func (f *ItemFactory) fromTotals(t wc.Totals) []*entity.Item {
	currency := t.Currency()
	lines, fees := t.Items(), t.Fees()
	res := make([]*entity.Item, 0, len(lines)+len(fees))
	for _, li := range lines {
		res = append(res, f.fromLineItem(li, currency))
	}
	for _, fee := range fees {
		res = append(res, f.fromFee(fee, currency))
	}
	return res
}

func (f *ItemFactory) fromLineItem(li wc.LineItem, currency string) *entity.Item {
	unit, tax := li.Subtotal, li.SubtotalTax
	if li.Quantity > 0 {
		qty := decimal.NewFromInt(int64(li.Quantity))
		unit, tax = unit.Div(qty), tax.Div(qty)
	}

	var taxMoney *entity.Money
	if m := entity.NewMoney(tax, currency); !m.IsZero() {
		taxMoney = &m
	}
	category := entity.PhysicalGoods
	if li.Virtual || li.Downloadable {
		category = entity.DigitalGoods
	}
	return entity.NewItem(entity.ItemParams{
		Name:        truncate(li.Name, maxTextLength),
		UnitAmount:  entity.NewMoney(unit, currency),
		Quantity:    li.Quantity,
		Description: truncate(strings.TrimSpace(li.Description), maxTextLength),
		Tax:         taxMoney,
		SKU:         li.SKU,
		Category:    category,
	})
}

// fromFee keeps negative fees, the purchase unit drops them and the amount counts them as discount.
func (f *ItemFactory) fromFee(fee wc.Fee, currency string) *entity.Item {
	return entity.NewItem(entity.ItemParams{
		Name:       truncate(fee.Name, maxTextLength),
		UnitAmount: entity.NewMoney(fee.Amount, currency),
		Quantity:   1,
		Category:   entity.DigitalGoods,
	})
}

type itemResponse struct {
	Name        string              `json:"name"`
	UnitAmount  *entity.Money       `json:"unit_amount"`
	Quantity    json.Number         `json:"quantity"`
	Description string              `json:"description"`
	SKU         string              `json:"sku"`
	Category    entity.ItemCategory `json:"category"`
	Tax         *entity.Money       `json:"tax"`
}

// FromPayPalResponse accepts the quantity as a string or a number.
func (f *ItemFactory) FromPayPalResponse(raw json.RawMessage) (*entity.Item, error) {
	const msg = "Could not parse item."
	r, err := decode[itemResponse](raw, "item", msg)
	if err != nil {
		return nil, err
	}
	if r.UnitAmount == nil {
		return nil, ppcp.MissingField("item", "unit_amount", "No unit amount given.")
	}
	if r.Quantity == "" {
		return nil, ppcp.MissingField("item", "quantity", "No quantity given.")
	}
	qty, err := r.Quantity.Int64()
	if err != nil {
		return nil, ppcp.NewRuntimeError(msg, err)
	}
	return entity.NewItem(entity.ItemParams{
		Name:        r.Name,
		UnitAmount:  *r.UnitAmount,
		Quantity:    int(qty),
		Description: r.Description,
		Tax:         r.Tax,
		SKU:         r.SKU,
		Category:    r.Category,
	}), nil
}
