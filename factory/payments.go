package factory

import (
	"encoding/json"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
)

type AuthorizationFactory struct{}

func NewAuthorizationFactory() *AuthorizationFactory {
	return &AuthorizationFactory{}
}

// FromPayPalResponse requires the id and the status.
func (f *AuthorizationFactory) FromPayPalResponse(raw json.RawMessage) (*entity.Authorization, error) {
	a, err := decode[entity.Authorization](raw, "authorization", "Could not parse authorization.")
	if err != nil {
		return nil, err
	}
	if a.ID == "" {
		return nil, ppcp.MissingField("authorization", "id", "Does not contain an id.")
	}
	if a.Status == "" {
		return nil, ppcp.MissingField("authorization", "status", "Does not contain status.")
	}
	return a, nil
}

type CaptureFactory struct{}

func NewCaptureFactory() *CaptureFactory {
	return &CaptureFactory{}
}

func (f *CaptureFactory) FromPayPalResponse(raw json.RawMessage) (*entity.Capture, error) {
	c, err := decode[entity.Capture](raw, "capture", "Could not parse capture.")
	if err != nil {
		return nil, err
	}
	if c.ID == "" {
		return nil, ppcp.MissingField("capture", "id", "Does not contain an id.")
	}
	if c.Status == "" {
		return nil, ppcp.MissingField("capture", "status", "Does not contain status.")
	}
	return c, nil
}

type RefundFactory struct{}

func NewRefundFactory() *RefundFactory {
	return &RefundFactory{}
}

func (f *RefundFactory) FromPayPalResponse(raw json.RawMessage) (*entity.Refund, error) {
	r, err := decode[entity.Refund](raw, "refund", "Could not parse refund.")
	if err != nil {
		return nil, err
	}
	if r.ID == "" {
		return nil, ppcp.MissingField("refund", "id", "Does not contain an id.")
	}
	if r.Status == "" {
		return nil, ppcp.MissingField("refund", "status", "Does not contain status.")
	}
	return r, nil
}

type PaymentsMapper interface {
	FromPayPalResponse(raw json.RawMessage) (*entity.Payments, error)
}

// PaymentsFactory maps the payments of a purchase unit.
type PaymentsFactory struct {
	authorizations *AuthorizationFactory
	captures       *CaptureFactory
	refunds        *RefundFactory
}

func NewPaymentsFactory(a *AuthorizationFactory, c *CaptureFactory, r *RefundFactory) *PaymentsFactory {
	return &PaymentsFactory{authorizations: a, captures: c, refunds: r}
}

type paymentsResponse struct {
	Authorizations []json.RawMessage `json:"authorizations"`
	Captures       []json.RawMessage `json:"captures"`
	Refunds        []json.RawMessage `json:"refunds"`
}

func (f *PaymentsFactory) FromPayPalResponse(raw json.RawMessage) (*entity.Payments, error) {
	r, err := decode[paymentsResponse](raw, "payments", "Could not parse payments.")
	if err != nil {
		return nil, err
	}
	res := new(entity.Payments)
	if res.Authorizations, err = mapAll(r.Authorizations, f.authorizations.FromPayPalResponse); err != nil {
		return nil, err
	}
	if res.Captures, err = mapAll(r.Captures, f.captures.FromPayPalResponse); err != nil {
		return nil, err
	}
	if res.Refunds, err = mapAll(r.Refunds, f.refunds.FromPayPalResponse); err != nil {
		return nil, err
	}
	return res, nil
}

// mapAll maps every raw element, the first error aborts.
func mapAll[T any](raws []json.RawMessage, fn func(json.RawMessage) (T, error)) ([]T, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	res := make([]T, 0, len(raws))
	for _, raw := range raws {
		v, err := fn(raw)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}
