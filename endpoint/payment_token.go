package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/factory"
)

// PaymentTokenEndpoint lists and deletes the vaulted payment methods of WooCommerce customers.
//
// See https://developer.paypal.com/docs/api/payment-tokens/v2/.
type PaymentTokenEndpoint struct {
	base
	tokens *factory.PaymentTokenFactory

	// prefix makes the customer IDs of several shops on one PayPal account unique.
	prefix string
}

func NewPaymentTokenEndpoint(
	c *ppcp.Client, tokens *factory.PaymentTokenFactory, customerPrefix string, opts ...Option,
) *PaymentTokenEndpoint {
	return &PaymentTokenEndpoint{
		base:   newBase(c, opts),
		tokens: tokens,
		prefix: customerPrefix,
	}
}

type paymentTokens struct {
	CustomerID    string            `json:"customer_id"`
	PaymentTokens []json.RawMessage `json:"payment_tokens"`
}

// ForUser returns the tokens of the WooCommerce user in the order PayPal lists them.
func (e *PaymentTokenEndpoint) ForUser(ctx context.Context, userID int) ([]*entity.PaymentToken, error) {
	const msg = "Could not fetch payment tokens."
	q := url.Values{"customer_id": {e.prefix + strconv.Itoa(userID)}}
	res, err := e.call(ctx, request{
		op:     "ListPaymentTokens",
		msg:    msg,
		method: http.MethodGet,
		path:   "v2/vault/payment-tokens?" + q.Encode(),
		expect: []int{http.StatusOK},
	})
	if err != nil {
		return nil, err
	}

	var list paymentTokens
	if err := json.Unmarshal(res.Body, &list); err != nil {
		return nil, ppcp.NewRuntimeError(msg, err)
	}
	tokens := make([]*entity.PaymentToken, 0, len(list.PaymentTokens))
	for _, raw := range list.PaymentTokens {
		t, err := e.tokens.FromPayPalResponse(raw)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// Delete deletes the payment token.
func (e *PaymentTokenEndpoint) Delete(ctx context.Context, id string) error {
	_, err := e.call(ctx, request{
		op:     "DeletePaymentToken",
		msg:    "Could not delete payment token.",
		method: http.MethodDelete,
		path:   "v2/vault/payment-tokens/" + url.PathEscape(id),
		expect: []int{http.StatusNoContent},
	})
	return err
}
