// Package entity holds the typed PayPal resources built from WooCommerce data
// or from PayPal responses.
//
// Entities are not modified after construction.
package entity

import (
	"encoding/json"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// currencyPlaces lists the currencies that do not support decimals.
//
// See https://developer.paypal.com/reference/currency-codes/.
var currencyPlaces = map[string]int32{
	"HUF": 0,
	"JPY": 0,
	"TWD": 0,
}

// DecimalPlaces returns the number of decimals PayPal accepts for the currency.
func DecimalPlaces(currency string) int32 {
	if places, ok := currencyPlaces[strings.ToUpper(currency)]; ok {
		return places
	}
	return 2
}

// Money is an amount in a currency, rounded to the decimals PayPal accepts for it.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-money.
type Money struct {
	value    decimal.Decimal
	currency string
}

func NewMoney(value decimal.Decimal, currency string) Money {
	return Money{
		value:    value.Round(DecimalPlaces(currency)),
		currency: currency,
	}
}

// MustMoney parses the value and panics on failure, it is meant for constants and tests.
func MustMoney(value, currency string) Money {
	return NewMoney(decimal.RequireFromString(value), currency)
}

func (m Money) Value() decimal.Decimal {
	return m.value
}

func (m Money) Currency() string {
	return m.currency
}

// String returns the value in the format PayPal expects, e.g. "10.00" or "1235" for JPY.
func (m Money) String() string {
	return m.value.StringFixed(DecimalPlaces(m.currency))
}

func (m Money) IsNegative() bool {
	return m.value.IsNegative()
}

func (m Money) IsZero() bool {
	return m.value.IsZero()
}

func (m Money) Abs() Money {
	return NewMoney(m.value.Abs(), m.currency)
}

// Mul returns the money multiplied by the quantity.
func (m Money) Mul(qty int) Money {
	return NewMoney(m.value.Mul(decimal.NewFromInt(int64(qty))), m.currency)
}

// Add returns the sum, both operands must share the currency.
func (m Money) Add(o Money) (Money, error) {
	if !strings.EqualFold(m.currency, o.currency) {
		return Money{}, errors.Errorf("add %s to %s: currency mismatch", o.currency, m.currency)
	}
	return NewMoney(m.value.Add(o.value), m.currency), nil
}

func (m Money) Equal(o Money) bool {
	return m.currency == o.currency && m.value.Equal(o.value)
}

type moneyJSON struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{CurrencyCode: m.currency, Value: m.String()})
}

func (m *Money) UnmarshalJSON(bs []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(bs, &raw); err != nil {
		return err
	}
	value, err := decimal.NewFromString(raw.Value)
	if err != nil {
		return errors.Wrapf(err, "parse money value %q", raw.Value)
	}
	*m = NewMoney(value, raw.CurrencyCode)
	return nil
}
