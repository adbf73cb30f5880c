package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/endpoint"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/factory"
	"github.com/adobaai/ppcp/wc"
)

// NonceVerifier checks the nonce WordPress handed out with the page.
type NonceVerifier interface {
	Verify(ctx context.Context, nonce string) bool
}

// NonceFunc adapts a function to [NonceVerifier].
type NonceFunc func(ctx context.Context, nonce string) bool

func (f NonceFunc) Verify(ctx context.Context, nonce string) bool {
	return f(ctx, nonce)
}

// OrderSource reads WooCommerce orders, e.g. [wc.StoreClient].
type OrderSource interface {
	Order(ctx context.Context, id int) (*wc.RESTOrder, error)
}

// CartSource reads the cart of a Store API session, e.g. [wc.StoreClient].
type CartSource interface {
	Cart(ctx context.Context, cartToken string) (*wc.StoreCart, error)
}

// OrderCreator creates PayPal orders, e.g. [endpoint.OrderEndpoint].
type OrderCreator interface {
	Create(ctx context.Context, units []*entity.PurchaseUnit, o endpoint.CreateOptions) (*entity.Order, error)
}

type Handler struct {
	nonces   NonceVerifier
	orders   OrderSource
	carts    CartSource
	creator  OrderCreator
	factory  *factory.Set
	validate *validator.Validate
	bnCode   string
	intent   entity.OrderIntent
	log      *zap.Logger
}

type Option func(h *Handler)

// WithBNCode sets the BN code used when the button sends none.
func WithBNCode(code string) Option {
	return func(h *Handler) {
		h.bnCode = code
	}
}

func WithIntent(i entity.OrderIntent) Option {
	return func(h *Handler) {
		h.intent = i
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(h *Handler) {
		h.log = l
	}
}

func NewHandler(
	nonces NonceVerifier, orders OrderSource, carts CartSource, creator OrderCreator, f *factory.Set,
	opts ...Option,
) *Handler {
	h := &Handler{
		nonces:   nonces,
		orders:   orders,
		carts:    carts,
		creator:  creator,
		factory:  f,
		validate: validator.New(),
		intent:   entity.OICapture,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds the routes of the handler to the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc(CreateOrderPath, h.CreateOrder).Methods(http.MethodPost)
}

// CreateOrder creates the PayPal order for the WooCommerce order of the pay-now page
// or for the cart of the Store API session in every other context.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid create order request", zap.Error(err))
		h.fail(w, http.StatusBadRequest, &ErrorData{Message: "Could not read request."})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.log.Warn("Invalid create order request", zap.Error(err))
		h.fail(w, http.StatusBadRequest, validationData(err))
		return
	}
	if !h.nonces.Verify(ctx, req.Nonce) {
		h.fail(w, http.StatusForbidden, &ErrorData{Message: "Could not validate nonce."})
		return
	}
	h.log.Debug("Create order",
		zap.String("context", req.Context),
		zap.String("order_id", req.OrderID),
		zap.String("funding_source", req.FundingSource),
	)

	unit, err := h.purchaseUnit(ctx, r, &req)
	if err != nil {
		h.log.Warn("Could not build purchase unit", zap.Error(err))
		h.fail(w, http.StatusInternalServerError, errorData(err))
		return
	}
	payer := req.Payer
	if payer == nil {
		payer = h.factory.Payers.FromForm(req.Form)
	}
	bnCode := req.BNCode
	if bnCode == "" {
		bnCode = h.bnCode
	}

	o, err := h.creator.Create(ctx, []*entity.PurchaseUnit{unit}, endpoint.CreateOptions{
		Intent:             h.intent,
		Payer:              payer,
		ShippingPreference: h.factory.ShippingPreferences.FromState(unit, req.Context),
		BNCode:             bnCode,
	})
	if err != nil {
		h.log.Warn("Could not create order", zap.Error(err))
		h.fail(w, http.StatusBadGateway, errorData(err))
		return
	}
	h.respond(w, http.StatusOK, true, o)
}

func (h *Handler) purchaseUnit(ctx context.Context, r *http.Request, req *CreateOrderRequest,
) (*entity.PurchaseUnit, error) {
	if req.OrderID != "" {
		id, err := strconv.Atoi(req.OrderID)
		if err != nil {
			return nil, errors.Wrap(err, "parse order id")
		}
		o, err := h.orders.Order(ctx, id)
		if err != nil {
			return nil, errors.Wrap(err, "get order")
		}
		return h.factory.PurchaseUnits.FromWCOrder(o)
	}

	c, err := h.carts.Cart(ctx, r.Header.Get("Cart-Token"))
	if err != nil {
		return nil, errors.Wrap(err, "get cart")
	}
	return h.factory.PurchaseUnits.FromWCCart(c, c.Customer())
}

func (h *Handler) fail(w http.ResponseWriter, status int, d *ErrorData) {
	if d.Details == nil {
		d.Details = []*ErrorDetail{}
	}
	h.respond(w, status, false, d)
}

func (h *Handler) respond(w http.ResponseWriter, status int, success bool, data any) {
	bs, err := json.Marshal(data)
	if err != nil {
		h.log.Error("Could not encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response{Success: success, Data: bs}); err != nil {
		h.log.Warn("Could not write response", zap.Error(err))
	}
}

// errorData shows the message of a [*ppcp.RuntimeError] with the details of PayPal's answer.
func errorData(err error) *ErrorData {
	d := &ErrorData{Message: "Something went wrong. Please try again or choose another payment source."}
	var re *ppcp.RuntimeError
	if errors.As(err, &re) {
		d.Message = re.Message
	}
	var pe *ppcp.Error
	if errors.As(err, &pe) {
		d.Name = pe.Name
		for _, detail := range pe.Details {
			d.Details = append(d.Details, &ErrorDetail{Issue: detail.Issue, Description: detail.Description})
		}
	}
	return d
}

func validationData(err error) *ErrorData {
	d := &ErrorData{Name: "INVALID_REQUEST", Message: "Request is not valid."}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			d.Details = append(d.Details, &ErrorDetail{
				Issue:       fe.Field(),
				Description: "failed on the " + fe.Tag() + " rule",
			})
		}
	}
	return d
}
