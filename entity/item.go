package entity

import (
	"encoding/json"
	"strconv"
)

type ItemCategory string

const (
	PhysicalGoods ItemCategory = "PHYSICAL_GOODS"
	DigitalGoods  ItemCategory = "DIGITAL_GOODS"
)

// NormalizeCategory collapses everything but [DigitalGoods] into [PhysicalGoods].
func NormalizeCategory(c ItemCategory) ItemCategory {
	if c == DigitalGoods {
		return DigitalGoods
	}
	return PhysicalGoods
}

// Item is a line of a purchase unit.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-item.
type Item struct {
	name        string
	unitAmount  Money
	quantity    int
	description string
	tax         *Money
	sku         string
	category    ItemCategory
}

type ItemParams struct {
	Name        string
	UnitAmount  Money
	Quantity    int
	Description string
	Tax         *Money // Optional
	SKU         string
	Category    ItemCategory
}

func NewItem(p ItemParams) *Item {
	qty := p.Quantity
	if qty < 0 {
		qty = 0
	}
	return &Item{
		name:        p.Name,
		unitAmount:  p.UnitAmount,
		quantity:    qty,
		description: p.Description,
		tax:         p.Tax,
		sku:         p.SKU,
		category:    NormalizeCategory(p.Category),
	}
}

func (i *Item) Name() string           { return i.name }
func (i *Item) UnitAmount() Money      { return i.unitAmount }
func (i *Item) Quantity() int          { return i.quantity }
func (i *Item) Description() string    { return i.description }
func (i *Item) Tax() *Money            { return i.tax }
func (i *Item) SKU() string            { return i.sku }
func (i *Item) Category() ItemCategory { return i.category }
func (i *Item) IsDiscount() bool       { return i.unitAmount.IsNegative() }
func (i *Item) Total() Money           { return i.unitAmount.Mul(i.quantity) }

type itemJSON struct {
	Name        string       `json:"name"`
	UnitAmount  Money        `json:"unit_amount"`
	Quantity    string       `json:"quantity"`
	Description string       `json:"description"`
	SKU         string       `json:"sku"`
	Category    ItemCategory `json:"category"`
	Tax         *Money       `json:"tax,omitempty"`
}

func (i *Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		Name:        i.name,
		UnitAmount:  i.unitAmount,
		Quantity:    strconv.Itoa(i.quantity),
		Description: i.description,
		SKU:         i.sku,
		Category:    i.category,
		Tax:         i.tax,
	})
}
