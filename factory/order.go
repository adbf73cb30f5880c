package factory

import (
	"encoding/json"
	"time"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
)

type OrderFactory struct {
	units  PurchaseUnitMapper
	payers *PayerFactory
}

func NewOrderFactory(units PurchaseUnitMapper, payers *PayerFactory) *OrderFactory {
	return &OrderFactory{units: units, payers: payers}
}

type orderResponse struct {
	ID            string                `json:"id"`
	Intent        entity.OrderIntent    `json:"intent"`
	Status        entity.OrderStatus    `json:"status"`
	PurchaseUnits []json.RawMessage     `json:"purchase_units"`
	Payer         json.RawMessage       `json:"payer"`
	PaymentSource *entity.PaymentSource `json:"payment_source"`
	CreateTime    *time.Time            `json:"create_time"`
	UpdateTime    *time.Time            `json:"update_time"`
	Links         []*ppcp.Link          `json:"links"`
}

// FromPayPalResponse requires the id, the intent, the status and at least one purchase unit.
func (f *OrderFactory) FromPayPalResponse(raw json.RawMessage) (*entity.Order, error) {
	r, err := decode[orderResponse](raw, "order", "Could not parse order.")
	if err != nil {
		return nil, err
	}
	switch {
	case r.ID == "":
		return nil, ppcp.MissingField("order", "id", "Order does not contain an id.")
	case r.Intent == "":
		return nil, ppcp.MissingField("order", "intent", "Order does not contain an intent.")
	case r.Status == "":
		return nil, ppcp.MissingField("order", "status", "Order does not contain a status.")
	case len(r.PurchaseUnits) == 0:
		return nil, ppcp.MissingField("order", "purchase_units", "Order does not contain items.")
	}

	units, err := mapAll(r.PurchaseUnits, f.units.FromPayPalResponse)
	if err != nil {
		return nil, err
	}
	var payer *entity.Payer
	if present(r.Payer) {
		if payer, err = f.payers.FromPayPalResponse(r.Payer); err != nil {
			return nil, err
		}
	}
	return &entity.Order{
		ID:            r.ID,
		Intent:        r.Intent,
		Status:        r.Status,
		PurchaseUnits: units,
		Payer:         payer,
		PaymentSource: r.PaymentSource,
		CreateTime:    r.CreateTime,
		UpdateTime:    r.UpdateTime,
		Links:         r.Links,
	}, nil
}
