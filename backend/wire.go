// Package backend serves the create-order request the checkout button sends
// before it opens the PayPal popup.
package backend

import (
	"encoding/json"

	"github.com/adobaai/ppcp/entity"
)

// CreateOrderPath is the route of the create-order endpoint.
const CreateOrderPath = "/ppcp/create-order"

// Button contexts.
const (
	ContextCheckout = "checkout"
	ContextCart     = "cart"
	ContextProduct  = "product"
	ContextMiniCart = "mini-cart"
	ContextPayNow   = "pay-now"
)

type CreateOrderRequest struct {
	Nonce         string            `json:"nonce" validate:"required"`
	Payer         *entity.Payer     `json:"payer"`
	BNCode        string            `json:"bn_code"`
	Context       string            `json:"context" validate:"oneof=checkout cart product mini-cart pay-now"`
	OrderID       string            `json:"order_id" validate:"omitempty,numeric"`
	PaymentMethod string            `json:"payment_method"`
	FundingSource string            `json:"funding_source"`
	Form          map[string]string `json:"form"`
	CreateAccount bool              `json:"createaccount"`
}

// Response is the envelope of every answer.
// Data is the created order on success and an [ErrorData] otherwise.
// Messages is reserved for notices WooCommerce renders as HTML, this handler never sets it.
type Response struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Messages *string         `json:"messages,omitempty"`
}

type ErrorData struct {
	Name    string         `json:"name,omitempty"`
	Message string         `json:"message"`
	Details []*ErrorDetail `json:"details"`
}

type ErrorDetail struct {
	Issue       string `json:"issue"`
	Description string `json:"description"`
}
