package subscription

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/config"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/ptesting"
	"github.com/adobaai/ppcp/vault"
	"github.com/adobaai/ppcp/wc"
)

type fakeSubscription struct {
	id            int
	customerID    int
	paymentMethod string
	meta          map[string]string
	parentMeta    map[string]string
	relatedOrders int
	saves         int
	saveErr       error
}

func (s *fakeSubscription) ID() int                      { return s.id }
func (s *fakeSubscription) CustomerID() int              { return s.customerID }
func (s *fakeSubscription) PaymentMethod() string        { return s.paymentMethod }
func (s *fakeSubscription) Meta(key string) string       { return s.meta[key] }
func (s *fakeSubscription) ParentMeta(key string) string { return s.parentMeta[key] }
func (s *fakeSubscription) RelatedOrderCount() int       { return s.relatedOrders }

func (s *fakeSubscription) UpdateMeta(key, value string) {
	if s.meta == nil {
		s.meta = map[string]string{}
	}
	s.meta[key] = value
}

func (s *fakeSubscription) Save(ctx context.Context) error {
	s.saves++
	return s.saveErr
}

type mockEndpoint struct {
	mock.Mock
}

func (m *mockEndpoint) ForUser(ctx context.Context, userID int) ([]*entity.PaymentToken, error) {
	args := m.Called(userID)
	tokens, _ := args.Get(0).([]*entity.PaymentToken)
	return tokens, args.Error(1)
}

func (m *mockEndpoint) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

type mockOrders struct {
	mock.Mock
}

func (m *mockOrders) Order(ctx context.Context, id string) (*entity.Order, error) {
	args := m.Called(id)
	o, _ := args.Get(0).(*entity.Order)
	return o, args.Error(1)
}

var (
	paypalToken = &entity.PaymentToken{
		ID:   "8kk8451t",
		Type: entity.PaymentMethodToken,
		Source: entity.PaymentTokenSource{
			PayPal: &entity.PayPalTokenSource{Payer: &entity.Payer{EmailAddress: "john@example.com"}},
		},
	}
	cardToken = &entity.PaymentToken{
		ID:   "fgh6561t",
		Type: entity.PaymentMethodToken,
		Source: entity.PaymentTokenSource{
			Card: &entity.CardSource{Brand: "VISA", LastDigits: "1111"},
		},
	}
)

func newLinker(t *testing.T) (*TokenLinker, *mockEndpoint, *mockOrders, *observer.ObservedLogs) {
	e := new(mockEndpoint)
	o := new(mockOrders)
	core, logs := observer.New(zapcore.WarnLevel)
	t.Cleanup(func() {
		e.AssertExpectations(t)
		o.AssertExpectations(t)
	})
	return NewTokenLinker(vault.NewPaymentTokenRepository(e), o, zap.New(core)), e, o, logs
}

func TestAddPaymentTokenID(t *testing.T) {
	ctx := context.Background()

	t.Run("Latest", func(t *testing.T) {
		l, e, _, _ := newLinker(t)
		e.On("ForUser", 7).Return([]*entity.PaymentToken{paypalToken, cardToken}, nil)
		sub := &fakeSubscription{id: 99, customerID: 7}

		require.NoError(t, l.AddPaymentTokenID(ctx, sub))
		assert.Equal(t, "fgh6561t", sub.Meta(wc.MetaPaymentTokenID))
		assert.Equal(t, 1, sub.saves)
	})

	t.Run("NoTokens", func(t *testing.T) {
		l, e, _, _ := newLinker(t)
		e.On("ForUser", 7).Return([]*entity.PaymentToken{}, nil)
		sub := &fakeSubscription{id: 99, customerID: 7}

		require.NoError(t, l.AddPaymentTokenID(ctx, sub))
		assert.Empty(t, sub.Meta(wc.MetaPaymentTokenID))
		assert.Zero(t, sub.saves)
	})

	t.Run("RuntimeError", func(t *testing.T) {
		l, e, _, logs := newLinker(t)
		e.On("ForUser", 7).Return(nil, ppcp.NewRuntimeError("Could not fetch payment tokens.", nil))
		sub := &fakeSubscription{id: 99, customerID: 7}

		require.NoError(t, l.AddPaymentTokenID(ctx, sub))
		assert.Zero(t, sub.saves)
		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "Could not add token Id to subscription 99: Could not fetch payment tokens.", entries[0].Message)
	})

	t.Run("OtherError", func(t *testing.T) {
		l, e, _, logs := newLinker(t)
		e.On("ForUser", 7).Return(nil, context.Canceled)
		sub := &fakeSubscription{id: 99, customerID: 7}

		assert.ErrorIs(t, l.AddPaymentTokenID(ctx, sub), context.Canceled)
		assert.Zero(t, logs.Len())
	})

	t.Run("Save", func(t *testing.T) {
		l, e, _, _ := newLinker(t)
		e.On("ForUser", 7).Return([]*entity.PaymentToken{paypalToken}, nil)
		sub := &fakeSubscription{id: 99, customerID: 7, saveErr: errors.New("database is locked")}

		ptesting.R(0, l.AddPaymentTokenID(ctx, sub)).EqualError(t, "save subscription: database is locked")
	})
}

func capturedOrder(t *testing.T, captureID string) *entity.Order {
	u := ptesting.R(entity.NewPurchaseUnit(entity.PurchaseUnitParams{
		ReferenceID: entity.DefaultReferenceID,
		Payments:    &entity.Payments{Captures: []*entity.Capture{{ID: captureID, Status: "COMPLETED"}}},
	})).NoError(t).V()
	return &entity.Order{ID: "5O190127TN364715T", PurchaseUnits: []*entity.PurchaseUnit{u}}
}

func TestPaymentComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstPayment", func(t *testing.T) {
		l, e, o, _ := newLinker(t)
		e.On("ForUser", 7).Return([]*entity.PaymentToken{cardToken}, nil)
		o.On("Order", "5O190127TN364715T").Return(capturedOrder(t, "3C679366HH908993F"), nil)
		sub := &fakeSubscription{
			id: 99, customerID: 7, relatedOrders: 1,
			parentMeta: map[string]string{wc.MetaPayPalOrderID: "5O190127TN364715T"},
		}

		require.NoError(t, l.PaymentComplete(ctx, sub))
		assert.Equal(t, "fgh6561t", sub.Meta(wc.MetaPaymentTokenID))
		assert.Equal(t, "3C679366HH908993F", sub.Meta(wc.MetaPreviousTransactionReference))
		assert.Equal(t, 2, sub.saves)
	})

	t.Run("Renewal", func(t *testing.T) {
		l, e, _, _ := newLinker(t)
		e.On("ForUser", 7).Return([]*entity.PaymentToken{cardToken}, nil)
		sub := &fakeSubscription{
			id: 99, customerID: 7, relatedOrders: 3,
			parentMeta: map[string]string{wc.MetaPayPalOrderID: "5O190127TN364715T"},
		}

		require.NoError(t, l.PaymentComplete(ctx, sub))
		assert.Empty(t, sub.Meta(wc.MetaPreviousTransactionReference))
	})

	t.Run("PayPalSubscription", func(t *testing.T) {
		l, _, _, _ := newLinker(t)
		sub := &fakeSubscription{id: 99, customerID: 7, meta: map[string]string{wc.MetaPayPalSubscription: "I-BW452GLLEP1G"}}

		require.NoError(t, l.PaymentComplete(ctx, sub))
		assert.Zero(t, sub.saves)
	})

	t.Run("OrderError", func(t *testing.T) {
		l, e, o, _ := newLinker(t)
		e.On("ForUser", 7).Return([]*entity.PaymentToken{}, nil)
		o.On("Order", "5O190127TN364715T").Return(nil, ppcp.NewRuntimeError("Could not retrieve order.", nil))
		sub := &fakeSubscription{
			id: 99, customerID: 7, relatedOrders: 1,
			parentMeta: map[string]string{wc.MetaPayPalOrderID: "5O190127TN364715T"},
		}

		assert.EqualError(t, l.PaymentComplete(ctx, sub), "Could not retrieve order.")
	})
}

func TestRenewalPaymentSource(t *testing.T) {
	sub := &fakeSubscription{
		paymentMethod: wc.CreditCardGatewayID,
		meta:          map[string]string{wc.MetaPreviousTransactionReference: "3C679366HH908993F"},
	}

	assert.Equal(t, &entity.PaymentSource{
		Card: &entity.CardSource{
			VaultID: "fgh6561t",
			StoredCredential: &entity.StoredCredential{
				PaymentInitiator:             "MERCHANT",
				PaymentType:                  "RECURRING",
				Usage:                        "SUBSEQUENT",
				PreviousTransactionReference: "3C679366HH908993F",
			},
		},
	}, RenewalPaymentSource(ActionProcessRenewal, sub, cardToken))

	noReference := &fakeSubscription{paymentMethod: wc.CreditCardGatewayID}
	src := RenewalPaymentSource(ActionProcessRenewal, noReference, cardToken)
	require.NotNil(t, src.Card)
	assert.Empty(t, src.Card.StoredCredential.PreviousTransactionReference)

	tokenSource := &entity.PaymentSource{Token: &entity.TokenSource{ID: "fgh6561t", Type: entity.PaymentMethodToken}}
	assert.Equal(t, tokenSource, RenewalPaymentSource("", sub, cardToken))
	assert.Equal(t, tokenSource, RenewalPaymentSource(ActionProcessRenewal,
		&fakeSubscription{paymentMethod: wc.PayPalGatewayID}, cardToken))
	assert.Equal(t, &entity.PaymentSource{Token: &entity.TokenSource{ID: "8kk8451t", Type: entity.PaymentMethodToken}},
		RenewalPaymentSource(ActionProcessRenewal, sub, paypalToken))
	assert.Nil(t, RenewalPaymentSource(ActionProcessRenewal, sub, nil))
}

func TestSavedPayPal(t *testing.T) {
	ctx := context.Background()
	e := new(mockEndpoint)
	s := NewSavedPayments(vault.NewPaymentTokenRepository(e), config.Settings{VaultEnabled: true})

	e.On("ForUser", 7).Return([]*entity.PaymentToken{paypalToken, cardToken}, nil).Once()
	ptesting.R(s.PayPalDescription(ctx, wc.PayPalGatewayID, 7, true, "Pay via PayPal.")).NoError(t).
		Equal(`<p class="form-row form-row-wide"><label>Select a saved PayPal payment</label>` +
			`<select id="saved-paypal-payment" name="saved_paypal_payment">` +
			`<option value="8kk8451t">john@example.com</option></select></p>`)

	e.On("ForUser", 7).Return([]*entity.PaymentToken{cardToken}, nil).Once()
	ptesting.R(s.PayPalDescription(ctx, wc.PayPalGatewayID, 7, true, "Pay via PayPal.")).NoError(t).
		Equal(NoPayPalSaved)

	ptesting.R(s.PayPalDescription(ctx, wc.PayPalGatewayID, 7, false, "Pay via PayPal.")).NoError(t).
		Equal("Pay via PayPal.")
	ptesting.R(s.PayPalDescription(ctx, wc.CreditCardGatewayID, 7, true, "Pay by card.")).NoError(t).
		Equal("Pay by card.")

	disabled := NewSavedPayments(vault.NewPaymentTokenRepository(e), config.Settings{VaultEnabledDCC: true})
	ptesting.R(disabled.PayPalDescription(ctx, wc.PayPalGatewayID, 7, true, "Pay via PayPal.")).NoError(t).
		Equal("Pay via PayPal.")
	e.AssertExpectations(t)
}

func TestSavedCards(t *testing.T) {
	ctx := context.Background()
	e := new(mockEndpoint)
	s := NewSavedPayments(vault.NewPaymentTokenRepository(e), config.Settings{VaultEnabledDCC: true})
	fields := map[string]string{"card-number-field": "<input>"}

	e.On("ForUser", 7).Return([]*entity.PaymentToken{paypalToken, cardToken}, nil).Once()
	ptesting.R(s.CreditCardFields(ctx, wc.CreditCardGatewayID, 7, true, fields)).NoError(t).
		Equal(map[string]string{
			SavedCardField: `<p class="form-row form-row-wide"><label>Select a saved Credit Card payment</label>` +
				`<select id="saved-credit-card" name="saved_credit_card">` +
				`<option value="fgh6561t">VISA ...1111</option></select></p>`,
		})

	e.On("ForUser", 7).Return([]*entity.PaymentToken{paypalToken}, nil).Once()
	ptesting.R(s.CreditCardFields(ctx, wc.CreditCardGatewayID, 7, true, fields)).NoError(t).
		Equal(map[string]string{SavedCardField: NoCardSaved})

	e.On("ForUser", 7).Return(nil, ppcp.NewRuntimeError("Could not fetch payment tokens.", nil)).Once()
	_, err := s.CreditCardFields(ctx, wc.CreditCardGatewayID, 7, true, fields)
	assert.EqualError(t, err, "Could not fetch payment tokens.")

	ptesting.R(s.CreditCardFields(ctx, wc.PayPalGatewayID, 7, true, fields)).NoError(t).Equal(fields)
	ptesting.R(s.CreditCardFields(ctx, wc.CreditCardGatewayID, 7, false, fields)).NoError(t).Equal(fields)
	e.AssertExpectations(t)
}

func TestSavedEscapes(t *testing.T) {
	ctx := context.Background()
	e := new(mockEndpoint)
	s := NewSavedPayments(vault.NewPaymentTokenRepository(e), config.Settings{VaultEnabled: true})
	evil := &entity.PaymentToken{
		ID: `"><script>`,
		Source: entity.PaymentTokenSource{
			PayPal: &entity.PayPalTokenSource{Payer: &entity.Payer{EmailAddress: "<b>x</b>"}},
		},
	}
	e.On("ForUser", 7).Return([]*entity.PaymentToken{evil}, nil)

	out := ptesting.R(s.PayPalDescription(ctx, wc.PayPalGatewayID, 7, true, "")).NoError(t).V()
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "&lt;b&gt;x&lt;/b&gt;")
}
