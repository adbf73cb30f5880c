package factory

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/wc"
)

type fakeOrder struct {
	id            int
	number        string
	customerID    int
	currency      string
	total         decimal.Decimal
	shippingTotal decimal.Decimal
	shippingTax   decimal.Decimal
	discountTotal decimal.Decimal
	items         []wc.LineItem
	fees          []wc.Fee
	billing       wc.Address
	shipping      wc.Address
}

func (o *fakeOrder) ID() int                        { return o.id }
func (o *fakeOrder) Number() string                 { return o.number }
func (o *fakeOrder) CustomerID() int                { return o.customerID }
func (o *fakeOrder) Currency() string               { return o.currency }
func (o *fakeOrder) Total() decimal.Decimal         { return o.total }
func (o *fakeOrder) ShippingTotal() decimal.Decimal { return o.shippingTotal }
func (o *fakeOrder) ShippingTax() decimal.Decimal   { return o.shippingTax }
func (o *fakeOrder) DiscountTotal() decimal.Decimal { return o.discountTotal }
func (o *fakeOrder) Items() []wc.LineItem           { return o.items }
func (o *fakeOrder) Fees() []wc.Fee                 { return o.fees }
func (o *fakeOrder) BillingAddress() wc.Address     { return o.billing }
func (o *fakeOrder) ShippingAddress() wc.Address    { return o.shipping }

// fakeCart is an order without identity.
type fakeCart struct {
	fakeOrder
}

type mockItems struct {
	mock.Mock
}

func (m *mockItems) FromWCOrder(o wc.Order) []*entity.Item {
	return m.Called(o).Get(0).([]*entity.Item)
}

func (m *mockItems) FromWCCart(c wc.Cart) []*entity.Item {
	return m.Called(c).Get(0).([]*entity.Item)
}

func (m *mockItems) FromPayPalResponse(raw json.RawMessage) (*entity.Item, error) {
	args := m.Called(raw)
	it, _ := args.Get(0).(*entity.Item)
	return it, args.Error(1)
}

type mockAmounts struct {
	mock.Mock
}

func (m *mockAmounts) FromWCOrder(o wc.Order) *entity.Amount {
	a, _ := m.Called(o).Get(0).(*entity.Amount)
	return a
}

func (m *mockAmounts) FromWCCart(c wc.Cart) *entity.Amount {
	a, _ := m.Called(c).Get(0).(*entity.Amount)
	return a
}

func (m *mockAmounts) FromPayPalResponse(raw json.RawMessage) (*entity.Amount, error) {
	args := m.Called(raw)
	a, _ := args.Get(0).(*entity.Amount)
	return a, args.Error(1)
}

type mockShipping struct {
	mock.Mock
}

func (m *mockShipping) FromWCOrder(o wc.Order) *entity.Shipping {
	s, _ := m.Called(o).Get(0).(*entity.Shipping)
	return s
}

func (m *mockShipping) FromWCCustomer(c wc.Customer, useBilling bool) *entity.Shipping {
	s, _ := m.Called(c, useBilling).Get(0).(*entity.Shipping)
	return s
}

func (m *mockShipping) FromPayPalResponse(raw json.RawMessage) (*entity.Shipping, error) {
	args := m.Called(raw)
	s, _ := args.Get(0).(*entity.Shipping)
	return s, args.Error(1)
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) FromPayPalResponse(raw json.RawMessage) (*entity.Payments, error) {
	args := m.Called(raw)
	p, _ := args.Get(0).(*entity.Payments)
	return p, args.Error(1)
}

type mockUnits struct {
	mock.Mock
}

func (m *mockUnits) FromWCOrder(o wc.Order) (*entity.PurchaseUnit, error) {
	args := m.Called(o)
	u, _ := args.Get(0).(*entity.PurchaseUnit)
	return u, args.Error(1)
}

func (m *mockUnits) FromWCCart(c wc.Cart, customer wc.Customer) (*entity.PurchaseUnit, error) {
	args := m.Called(c, customer)
	u, _ := args.Get(0).(*entity.PurchaseUnit)
	return u, args.Error(1)
}

func (m *mockUnits) FromPayPalResponse(raw json.RawMessage) (*entity.PurchaseUnit, error) {
	args := m.Called(raw)
	u, _ := args.Get(0).(*entity.PurchaseUnit)
	return u, args.Error(1)
}
