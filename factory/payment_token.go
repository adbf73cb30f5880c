package factory

import (
	"encoding/json"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
)

type PaymentTokenFactory struct{}

func NewPaymentTokenFactory() *PaymentTokenFactory {
	return &PaymentTokenFactory{}
}

// FromPayPalResponse requires the id and a PayPal or card source.
func (f *PaymentTokenFactory) FromPayPalResponse(raw json.RawMessage) (*entity.PaymentToken, error) {
	t, err := decode[entity.PaymentToken](raw, "payment token", "Could not parse payment token.")
	if err != nil {
		return nil, err
	}
	if t.ID == "" {
		return nil, ppcp.MissingField("payment token", "id", "No id for payment token given.")
	}
	if !t.IsPayPal() && !t.IsCard() {
		return nil, ppcp.MissingField("payment token", "source", "No valid source for payment token given.")
	}
	if t.Type == "" {
		t.Type = entity.PaymentMethodToken
	}
	return t, nil
}
