package wc

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeURL = "https://shop.example.test"

const cartJSON = `{
	"items": [{
		"key": "c4ca",
		"id": 11,
		"name": "Beanie",
		"short_description": "Warm",
		"sku": "woo-beanie",
		"quantity": 2,
		"totals": {"line_subtotal": "3600", "line_subtotal_tax": "360", "line_total": "3600"}
	}],
	"fees": [{"key": "gift", "name": "Gift wrap", "totals": {"total": "250", "total_tax": "0"}}],
	"totals": {
		"currency_code": "EUR",
		"currency_minor_unit": 2,
		"total_discount": "500",
		"total_shipping": "490",
		"total_shipping_tax": "49",
		"total_price": "4749"
	},
	"needs_shipping": true,
	"billing_address": {"first_name": "Jane", "country": "DE", "postcode": "10115", "email": "jane@example.com"},
	"shipping_address": {"first_name": "Jane", "country": "DE", "postcode": "10115"}
}`

const orderJSON = `{
	"id": 42,
	"number": "1042",
	"currency": "USD",
	"customer_id": 7,
	"total": "39.99",
	"shipping_total": "5.00",
	"shipping_tax": "0.50",
	"discount_total": "0.00",
	"billing": {"first_name": "John", "last_name": "Doe", "email": "john@example.com", "country": "US", "postcode": "94103"},
	"shipping": {"first_name": "John", "country": "US", "postcode": "94103", "city": "San Francisco"},
	"line_items": [
		{"id": 1, "name": "Album", "product_id": 20, "quantity": 1, "subtotal": "15.00", "subtotal_tax": "0.00", "sku": "album"},
		{"id": 2, "name": "Poster", "product_id": 21, "quantity": 2, "subtotal": "18.00", "subtotal_tax": "1.49", "sku": "poster"}
	],
	"fee_lines": [{"id": 3, "name": "Loyalty", "total": "-1.00"}]
}`

func TestStoreCart(t *testing.T) {
	c, err := ParseStoreCart([]byte(cartJSON))
	require.NoError(t, err)

	assert.Equal(t, "EUR", c.Currency())
	assert.Equal(t, "47.49", c.Total().StringFixed(2))
	assert.Equal(t, "4.90", c.ShippingTotal().StringFixed(2))
	assert.Equal(t, "0.49", c.ShippingTax().StringFixed(2))
	assert.Equal(t, "5.00", c.DiscountTotal().StringFixed(2))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Beanie", items[0].Name)
	assert.Equal(t, "Warm", items[0].Description)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "36.00", items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "3.60", items[0].SubtotalTax.StringFixed(2))
	assert.False(t, items[0].Virtual)

	fees := c.Fees()
	require.Len(t, fees, 1)
	assert.Equal(t, "2.50", fees[0].Amount.StringFixed(2))

	cu := c.Customer()
	require.NotNil(t, cu)
	assert.Equal(t, "10115", cu.ShippingAddress().Postcode)
	assert.Equal(t, "jane@example.com", cu.BillingAddress().Email)

	t.Run("NoAddress", func(t *testing.T) {
		c, err := ParseStoreCart([]byte(`{"totals": {"currency_code": "JPY", "currency_minor_unit": 0, "total_price": "1200"}}`))
		require.NoError(t, err)
		assert.Nil(t, c.Customer())
		assert.Equal(t, "1200", c.Total().String())
	})

	t.Run("NoShippingNeeded", func(t *testing.T) {
		c, err := ParseStoreCart([]byte(`{"items": [{"name": "E-book", "quantity": 1}],
			"totals": {"currency_code": "USD", "currency_minor_unit": 2}, "needs_shipping": false}`))
		require.NoError(t, err)
		assert.True(t, c.Items()[0].Virtual)
	})

	t.Run("NoCurrency", func(t *testing.T) {
		_, err := ParseStoreCart([]byte(`{"items": []}`))
		assert.Error(t, err)
	})
}

func TestRESTOrder(t *testing.T) {
	o, err := ParseRESTOrder([]byte(orderJSON))
	require.NoError(t, err)

	assert.Equal(t, 42, o.ID())
	assert.Equal(t, "1042", o.Number())
	assert.Equal(t, 7, o.CustomerID())
	assert.Equal(t, "USD", o.Currency())
	assert.Equal(t, "39.99", o.Total().StringFixed(2))
	assert.Equal(t, "San Francisco", o.ShippingAddress().City)
	assert.Equal(t, "john@example.com", o.BillingAddress().Email)
	require.Len(t, o.Items(), 2)
	assert.Equal(t, "-1.00", o.Fees()[0].Amount.StringFixed(2))

	o.MarkDigital(20)
	assert.True(t, o.Items()[0].Virtual)
	assert.False(t, o.Items()[1].Virtual)

	t.Run("NumberFallback", func(t *testing.T) {
		o, err := ParseRESTOrder([]byte(`{"id": 9, "currency": "USD"}`))
		require.NoError(t, err)
		assert.Equal(t, "9", o.Number())
	})

	t.Run("NoID", func(t *testing.T) {
		_, err := ParseRESTOrder([]byte(`{"number": "1"}`))
		assert.Error(t, err)
	})
}

func TestStoreClient(t *testing.T) {
	ctx := context.Background()
	mt := httpmock.NewMockTransport()
	c := NewStoreClient(storeURL+"/", "ck_1", "cs_1", &http.Client{Transport: mt})

	mt.RegisterResponder("GET", storeURL+"/wp-json/wc/store/v1/cart",
		func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("Cart-Token") != "tok" {
				return httpmock.NewStringResponse(http.StatusUnauthorized,
					`{"code": "woocommerce_rest_invalid_token", "message": "Invalid token"}`), nil
			}
			return httpmock.NewStringResponse(http.StatusOK, cartJSON), nil
		})
	mt.RegisterResponder("GET", storeURL+"/wp-json/wc/v3/orders/42",
		func(r *http.Request) (*http.Response, error) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != "ck_1" || pass != "cs_1" {
				return httpmock.NewStringResponse(http.StatusUnauthorized, `{}`), nil
			}
			return httpmock.NewStringResponse(http.StatusOK, orderJSON), nil
		})
	mt.RegisterResponder("GET", storeURL+"/wp-json/wc/v3/products/20",
		httpmock.NewStringResponder(http.StatusOK, `{"id": 20, "virtual": false, "downloadable": true}`))
	mt.RegisterResponder("GET", storeURL+"/wp-json/wc/v3/products/21",
		httpmock.NewStringResponder(http.StatusOK, `{"id": 21, "virtual": false, "downloadable": false}`))

	t.Run("Cart", func(t *testing.T) {
		cart, err := c.Cart(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "EUR", cart.Currency())
	})

	t.Run("CartBadToken", func(t *testing.T) {
		_, err := c.Cart(ctx, "other")
		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, http.StatusUnauthorized, e.StatusCode)
		assert.Equal(t, "woocommerce_rest_invalid_token", e.Code)
	})

	t.Run("Order", func(t *testing.T) {
		o, err := c.Order(ctx, 42)
		require.NoError(t, err)
		items := o.Items()
		assert.True(t, items[0].Virtual)
		assert.False(t, items[1].Virtual)
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		mt.RegisterResponder("GET", storeURL+"/wp-json/wc/v3/orders/43",
			httpmock.NewStringResponder(http.StatusNotFound, `not json`))
		_, err := c.Order(ctx, 43)
		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "woocommerce: unexpected status 404", e.Error())
	})
}
