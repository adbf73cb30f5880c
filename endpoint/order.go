package endpoint

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/factory"
)

// OrderEndpoint handles checkout orders.
//
// See https://developer.paypal.com/docs/api/orders/v2/.
type OrderEndpoint struct {
	base
	orders  *factory.OrderFactory
	patches *factory.PatchCollectionFactory
}

func NewOrderEndpoint(
	c *ppcp.Client, orders *factory.OrderFactory, patches *factory.PatchCollectionFactory, opts ...Option,
) *OrderEndpoint {
	return &OrderEndpoint{
		base:    newBase(c, opts),
		orders:  orders,
		patches: patches,
	}
}

type CreateOptions struct {
	Intent             entity.OrderIntent // Defaults to CAPTURE
	Payer              *entity.Payer
	ShippingPreference string
	UserAction         string
	BrandName          string
	ReturnURL          string
	CancelURL          string

	// BNCode is sent as PayPal-Partner-Attribution-Id when not empty.
	BNCode        string
	PaymentSource *entity.PaymentSource
}

type createOrderRequest struct {
	Intent             entity.OrderIntent         `json:"intent"`
	PurchaseUnits      []*entity.PurchaseUnit     `json:"purchase_units"`
	Payer              *entity.Payer              `json:"payer,omitempty"`
	ApplicationContext *entity.ApplicationContext `json:"application_context,omitempty"`
	PaymentSource      *entity.PaymentSource      `json:"payment_source,omitempty"`
}

// Create creates an order with the purchase units.
func (e *OrderEndpoint) Create(ctx context.Context, units []*entity.PurchaseUnit, o CreateOptions,
) (*entity.Order, error) {
	if o.Intent == "" {
		o.Intent = entity.OICapture
	}
	body := createOrderRequest{
		Intent:        o.Intent,
		PurchaseUnits: units,
		Payer:         o.Payer,
		PaymentSource: o.PaymentSource,
	}
	ac := entity.ApplicationContext{
		BrandName:          o.BrandName,
		ShippingPreference: o.ShippingPreference,
		UserAction:         o.UserAction,
		ReturnURL:          o.ReturnURL,
		CancelURL:          o.CancelURL,
	}
	if ac != (entity.ApplicationContext{}) {
		body.ApplicationContext = &ac
	}

	opts := []ppcp.RequestOption{requestID()}
	if o.BNCode != "" {
		opts = append(opts, ppcp.WithHeader("PayPal-Partner-Attribution-Id", o.BNCode))
	}
	res, err := e.call(ctx, request{
		op:     "CreateOrder",
		msg:    "Could not create order.",
		method: http.MethodPost,
		path:   "v2/checkout/orders",
		data:   body,
		expect: []int{http.StatusCreated},
		opts:   opts,
	})
	if err != nil {
		return nil, err
	}
	return e.orders.FromPayPalResponse(res.Body)
}

// Order shows the details of an order.
func (e *OrderEndpoint) Order(ctx context.Context, id string) (*entity.Order, error) {
	res, err := e.call(ctx, request{
		op:     "GetOrder",
		msg:    "Could not retrieve order.",
		method: http.MethodGet,
		path:   "v2/checkout/orders/" + url.PathEscape(id),
		expect: []int{http.StatusOK},
	})
	if err != nil {
		return nil, err
	}
	return e.orders.FromPayPalResponse(res.Body)
}

// Capture captures the payment of an approved order.
// An order PayPal reports as already captured is fetched and returned instead.
func (e *OrderEndpoint) Capture(ctx context.Context, id string) (*entity.Order, error) {
	res, err := e.call(ctx, request{
		op:     "CaptureOrder",
		msg:    "Could not capture order.",
		method: http.MethodPost,
		path:   "v2/checkout/orders/" + url.PathEscape(id) + "/capture",
		expect: []int{http.StatusCreated},
		opts:   []ppcp.RequestOption{requestID()},
	})
	if err != nil {
		if hasIssue(err, "ORDER_ALREADY_CAPTURED") {
			e.log.Info("Order already captured", zap.String("order_id", id))
			return e.Order(ctx, id)
		}
		return nil, err
	}
	return e.orders.FromPayPalResponse(res.Body)
}

// Authorize authorizes the payment of an approved order.
func (e *OrderEndpoint) Authorize(ctx context.Context, id string) (*entity.Order, error) {
	res, err := e.call(ctx, request{
		op:     "AuthorizeOrder",
		msg:    "Could not authorize order.",
		method: http.MethodPost,
		path:   "v2/checkout/orders/" + url.PathEscape(id) + "/authorize",
		expect: []int{http.StatusCreated},
		opts:   []ppcp.RequestOption{requestID()},
	})
	if err != nil {
		return nil, err
	}
	return e.orders.FromPayPalResponse(res.Body)
}

// Patch updates an order which is not completed yet.
func (e *OrderEndpoint) Patch(ctx context.Context, id string, patches []*entity.Patch) error {
	_, err := e.call(ctx, request{
		op:     "PatchOrder",
		msg:    "Could not update order.",
		method: http.MethodPatch,
		path:   "v2/checkout/orders/" + url.PathEscape(id),
		data:   patches,
		expect: []int{http.StatusNoContent},
	})
	return err
}

// PatchWith updates the order from to match the purchase units of to,
// it returns the order as PayPal has it afterward.
func (e *OrderEndpoint) PatchWith(ctx context.Context, from, to *entity.Order) (*entity.Order, error) {
	patches, err := e.patches.FromOrders(from, to)
	if err != nil {
		return nil, ppcp.NewRuntimeError("Could not update order.", err)
	}
	if len(patches) == 0 {
		return from, nil
	}
	if err := e.Patch(ctx, from.ID, patches); err != nil {
		return nil, err
	}
	return e.Order(ctx, from.ID)
}

func hasIssue(err error, issue string) bool {
	var e *ppcp.Error
	if !errors.As(err, &e) {
		return false
	}
	for _, d := range e.Details {
		if d.Issue == issue {
			return true
		}
	}
	return false
}
