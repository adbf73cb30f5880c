package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/factory"
	"github.com/adobaai/ppcp/ptesting"
)

const orderJSON = `{
	"id": "5O190127TN364715T",
	"intent": "CAPTURE",
	"status": "%s",
	"purchase_units": [{
		"reference_id": "default",
		"custom_id": "%s",
		"amount": {"currency_code": "USD", "value": "100.00"}
	}],
	"links": [{"href": "https://www.sandbox.paypal.com/checkoutnow?token=5O190127TN364715T", "rel": "approve", "method": "GET"}]
}`

func orderResponse(status, customID string) string {
	return fmt.Sprintf(orderJSON, status, customID)
}

func newOrderEndpoint(t *testing.T) (*httpmock.MockTransport, *OrderEndpoint, *factory.Set) {
	mt, c := newTestClient(t)
	f := factory.NewSet()
	return mt, NewOrderEndpoint(c, f.Orders, f.Patches), f
}

func TestOrderCreate(t *testing.T) {
	ctx := context.Background()
	url := testHost + "/v2/checkout/orders"
	unit := ptesting.R(entity.NewPurchaseUnit(entity.PurchaseUnitParams{
		ReferenceID: entity.DefaultReferenceID,
		CustomID:    "42",
		Amount:      entity.NewAmount(entity.MustMoney("100", "USD"), nil),
	})).NoError(t).V()

	t.Run("OK", func(t *testing.T) {
		mt, e, _ := newOrderEndpoint(t)
		mt.RegisterResponder(http.MethodPost, url, checkHeaders(t, func(r *http.Request) (*http.Response, error) {
			assert.Equal(t, "Woo_PPCP", r.Header.Get("PayPal-Partner-Attribution-Id"))
			assert.NotEmpty(t, r.Header.Get("PayPal-Request-Id"))
			body := decodeBody(t, r)
			assert.Equal(t, "CAPTURE", body["intent"])
			assert.Equal(t, map[string]any{
				"shipping_preference": "NO_SHIPPING",
				"user_action":         "CONTINUE",
			}, body["application_context"])
			units := body["purchase_units"].([]any)
			require.Len(t, units, 1)
			assert.Equal(t, map[string]any{
				"reference_id": "default",
				"custom_id":    "42",
				"amount":       map[string]any{"currency_code": "USD", "value": "100.00"},
			}, units[0])
			return httpmock.NewStringResponse(http.StatusCreated, orderResponse("CREATED", "42")), nil
		}))

		o := ptesting.R(e.Create(ctx, []*entity.PurchaseUnit{unit}, CreateOptions{
			ShippingPreference: factory.NoShipping,
			UserAction:         "CONTINUE",
			BNCode:             "Woo_PPCP",
		})).NoError(t).V()
		assert.Equal(t, "5O190127TN364715T", o.ID)
		assert.Equal(t, entity.OSCreated, o.Status)
		assert.Equal(t, "https://www.sandbox.paypal.com/checkoutnow?token=5O190127TN364715T", o.Link("approve"))
	})

	t.Run("Minimal", func(t *testing.T) {
		mt, e, _ := newOrderEndpoint(t)
		mt.RegisterResponder(http.MethodPost, url, func(r *http.Request) (*http.Response, error) {
			assert.Empty(t, r.Header.Get("PayPal-Partner-Attribution-Id"))
			body := decodeBody(t, r)
			assert.Equal(t, "AUTHORIZE", body["intent"])
			assert.NotContains(t, body, "application_context")
			assert.NotContains(t, body, "payer")
			return httpmock.NewStringResponse(http.StatusCreated, orderResponse("CREATED", "42")), nil
		})
		ptesting.R(e.Create(ctx, []*entity.PurchaseUnit{unit}, CreateOptions{Intent: entity.OIAuthorize})).NoError(t)
	})

	t.Run("Error", func(t *testing.T) {
		mt, e, _ := newOrderEndpoint(t)
		mt.RegisterResponder(http.MethodPost, url, unprocessable("DECIMAL_PRECISION",
			"If the currency supports decimals, only two decimal place precision is supported."))
		o, err := e.Create(ctx, []*entity.PurchaseUnit{unit}, CreateOptions{})
		assert.Nil(t, o)
		assert.EqualError(t, err, "Could not create order.")
		assert.True(t, hasIssue(err, "DECIMAL_PRECISION"))
		assert.False(t, hasIssue(err, "ORDER_ALREADY_CAPTURED"))
	})
}

func TestOrderCapture(t *testing.T) {
	ctx := context.Background()
	url := testHost + "/v2/checkout/orders/5O190127TN364715T"

	t.Run("OK", func(t *testing.T) {
		mt, e, _ := newOrderEndpoint(t)
		mt.RegisterResponder(http.MethodPost, url+"/capture",
			httpmock.NewStringResponder(http.StatusCreated, orderResponse("COMPLETED", "42")))
		o := ptesting.R(e.Capture(ctx, "5O190127TN364715T")).NoError(t).V()
		assert.Equal(t, entity.OSCompleted, o.Status)
	})

	t.Run("AlreadyCaptured", func(t *testing.T) {
		mt, e, _ := newOrderEndpoint(t)
		mt.RegisterResponder(http.MethodPost, url+"/capture", unprocessable("ORDER_ALREADY_CAPTURED",
			"Order already captured.If 'intent=CAPTURE' only one capture per order is allowed."))
		mt.RegisterResponder(http.MethodGet, url,
			httpmock.NewStringResponder(http.StatusOK, orderResponse("COMPLETED", "42")))

		o := ptesting.R(e.Capture(ctx, "5O190127TN364715T")).NoError(t).V()
		assert.Equal(t, entity.OSCompleted, o.Status)
		assert.Equal(t, 1, mt.GetCallCountInfo()["GET "+url])
	})

	t.Run("NotApproved", func(t *testing.T) {
		mt, e, _ := newOrderEndpoint(t)
		mt.RegisterResponder(http.MethodPost, url+"/capture", unprocessable("ORDER_NOT_APPROVED",
			"Payer has not yet approved the Order for payment."))
		_, err := e.Capture(ctx, "5O190127TN364715T")
		assert.EqualError(t, err, "Could not capture order.")
		assert.Zero(t, mt.GetCallCountInfo()["GET "+url])
	})
}

func TestOrderAuthorize(t *testing.T) {
	ctx := context.Background()
	mt, e, _ := newOrderEndpoint(t)
	mt.RegisterResponder(http.MethodPost, testHost+"/v2/checkout/orders/5O190127TN364715T/authorize",
		httpmock.NewStringResponder(http.StatusCreated, orderResponse("COMPLETED", "42")))
	o := ptesting.R(e.Authorize(ctx, "5O190127TN364715T")).NoError(t).V()
	assert.Equal(t, "5O190127TN364715T", o.ID)
}

func TestOrderPatchWith(t *testing.T) {
	ctx := context.Background()
	url := testHost + "/v2/checkout/orders/5O190127TN364715T"
	mt, e, f := newOrderEndpoint(t)

	parse := func(customID string) *entity.Order {
		return ptesting.R(f.Orders.FromPayPalResponse(json.RawMessage(orderResponse("CREATED", customID)))).
			NoError(t).V()
	}
	from := parse("42")

	o := ptesting.R(e.PatchWith(ctx, from, parse("42"))).NoError(t).V()
	assert.Same(t, from, o)
	assert.Zero(t, mt.GetTotalCallCount())

	mt.RegisterResponder(http.MethodPatch, url, func(r *http.Request) (*http.Response, error) {
		var patches []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patches))
		require.Len(t, patches, 1)
		assert.Equal(t, "replace", patches[0]["op"])
		assert.Equal(t, "/purchase_units/@reference_id=='default'", patches[0]["path"])
		assert.Equal(t, "43", patches[0]["value"].(map[string]any)["custom_id"])
		return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
	})
	mt.RegisterResponder(http.MethodGet, url,
		httpmock.NewStringResponder(http.StatusOK, orderResponse("CREATED", "43")))

	o = ptesting.R(e.PatchWith(ctx, from, parse("43"))).NoError(t).V()
	assert.Equal(t, "43", o.PurchaseUnit(entity.DefaultReferenceID).CustomID())
	assert.Equal(t, 1, mt.GetCallCountInfo()["PATCH "+url])

	mt.RegisterResponder(http.MethodPatch, url, unprocessable("INVALID_PATCH_OPERATION",
		"The operation cannot be honored."))
	_, err := e.PatchWith(ctx, from, parse("44"))
	assert.EqualError(t, err, "Could not update order.")
}
