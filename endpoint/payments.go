package endpoint

import (
	"context"
	"net/http"
	"net/url"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/factory"
)

// PaymentsEndpoint handles authorized payments and their captures.
//
// See https://developer.paypal.com/docs/api/payments/v2/.
type PaymentsEndpoint struct {
	base
	authorizations *factory.AuthorizationFactory
	captures       *factory.CaptureFactory
	refunds        *factory.RefundFactory
}

func NewPaymentsEndpoint(
	c *ppcp.Client,
	authorizations *factory.AuthorizationFactory,
	captures *factory.CaptureFactory,
	refunds *factory.RefundFactory,
	opts ...Option,
) *PaymentsEndpoint {
	return &PaymentsEndpoint{
		base:           newBase(c, opts),
		authorizations: authorizations,
		captures:       captures,
		refunds:        refunds,
	}
}

// Authorization shows details for an authorized payment.
func (e *PaymentsEndpoint) Authorization(ctx context.Context, id string) (*entity.Authorization, error) {
	res, err := e.call(ctx, request{
		op:     "GetAuthorization",
		msg:    "Could not get authorized payment info.",
		method: http.MethodGet,
		path:   "v2/payments/authorizations/" + url.PathEscape(id),
		expect: []int{http.StatusOK},
	})
	if err != nil {
		return nil, err
	}
	return e.authorizations.FromPayPalResponse(res.Body)
}

// CaptureAuthorization captures the full authorized payment.
func (e *PaymentsEndpoint) CaptureAuthorization(ctx context.Context, id string) (*entity.Capture, error) {
	res, err := e.call(ctx, request{
		op:     "CaptureAuthorization",
		msg:    "Could not capture authorized payment.",
		method: http.MethodPost,
		path:   "v2/payments/authorizations/" + url.PathEscape(id) + "/capture",
		expect: []int{http.StatusCreated},
		opts:   []ppcp.RequestOption{requestID()},
	})
	if err != nil {
		return nil, err
	}
	return e.captures.FromPayPalResponse(res.Body)
}

// VoidAuthorization voids an authorized payment that was not captured.
// PayPal answers 200 with the authorization instead of 204 when it returns the representation.
func (e *PaymentsEndpoint) VoidAuthorization(ctx context.Context, id string) error {
	_, err := e.call(ctx, request{
		op:     "VoidAuthorization",
		msg:    "Could not void authorized payment.",
		method: http.MethodPost,
		path:   "v2/payments/authorizations/" + url.PathEscape(id) + "/void",
		expect: []int{http.StatusNoContent, http.StatusOK},
		opts:   []ppcp.RequestOption{requestID()},
	})
	return err
}

type RefundParams struct {
	Amount      *entity.Money `json:"amount,omitempty"` // Nil refunds the full capture
	InvoiceID   string        `json:"invoice_id,omitempty"`
	NoteToPayer string        `json:"note_to_payer,omitempty"`
}

// RefundCapture refunds a captured payment.
func (e *PaymentsEndpoint) RefundCapture(ctx context.Context, captureID string, p RefundParams,
) (*entity.Refund, error) {
	res, err := e.call(ctx, request{
		op:     "RefundCapture",
		msg:    "Could not refund payment.",
		method: http.MethodPost,
		path:   "v2/payments/captures/" + url.PathEscape(captureID) + "/refund",
		data:   p,
		expect: []int{http.StatusCreated},
		opts:   []ppcp.RequestOption{requestID()},
	})
	if err != nil {
		return nil, err
	}
	return e.refunds.FromPayPalResponse(res.Body)
}
