package vault

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/ptesting"
)

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

func TestAllForUserID(t *testing.T) {
	ctx := context.Background()
	e := new(mockEndpoint)
	r := NewPaymentTokenRepository(e)

	e.On("ForUser", 7).Return([]*entity.PaymentToken{paypalToken, cardToken}, nil).Once()
	tokens := ptesting.R(r.AllForUserID(ctx, 7)).NoError(t).V()
	assert.Equal(t, []*entity.PaymentToken{paypalToken, cardToken}, tokens)

	tokens[0] = nil
	e.On("ForUser", 7).Return([]*entity.PaymentToken{paypalToken}, nil).Once()
	assert.Equal(t, []*entity.PaymentToken{paypalToken}, ptesting.R(r.AllForUserID(ctx, 7)).NoError(t).V())

	e.On("ForUser", 8).Return(nil, ppcp.NewRuntimeError("Could not fetch payment tokens.", nil)).Once()
	_, err := r.AllForUserID(ctx, 8)
	assert.EqualError(t, err, "Could not fetch payment tokens.")
	e.AssertExpectations(t)
}

func TestTokensContain(t *testing.T) {
	r := NewPaymentTokenRepository(new(mockEndpoint))

	assert.True(t, r.TokensContainPayPal([]*entity.PaymentToken{cardToken, paypalToken}))
	assert.False(t, r.TokensContainPayPal([]*entity.PaymentToken{cardToken}))
	assert.False(t, r.TokensContainPayPal(nil))

	assert.True(t, r.TokensContainCard([]*entity.PaymentToken{paypalToken, cardToken}))
	assert.False(t, r.TokensContainCard([]*entity.PaymentToken{paypalToken}))
}

func TestDeleteToken(t *testing.T) {
	ctx := context.Background()
	e := new(mockEndpoint)
	r := NewPaymentTokenRepository(e)

	e.On("Delete", "8kk8451t").Return(nil).Once()
	require.NoError(t, r.DeleteToken(ctx, paypalToken))

	e.On("Delete", "fgh6561t").Return(ppcp.NewRuntimeError("Could not delete payment token.", nil)).Once()
	assert.EqualError(t, r.DeleteToken(ctx, cardToken), "Could not delete payment token.")
	e.AssertExpectations(t)
}
