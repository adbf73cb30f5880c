// Package vault reads and deletes the payment methods customers saved with PayPal.
package vault

import (
	"context"
	"strconv"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/singleflight"

	"github.com/adobaai/ppcp/entity"
)

// TokenEndpoint is the PayPal payment token resource.
type TokenEndpoint interface {
	ForUser(ctx context.Context, userID int) ([]*entity.PaymentToken, error)
	Delete(ctx context.Context, id string) error
}

type PaymentTokenRepository struct {
	e TokenEndpoint
	g singleflight.Group
}

func NewPaymentTokenRepository(e TokenEndpoint) *PaymentTokenRepository {
	return &PaymentTokenRepository{e: e}
}

// AllForUserID returns every token of the user, the latest last.
// Concurrent calls for the same user share one request.
func (r *PaymentTokenRepository) AllForUserID(ctx context.Context, userID int) ([]*entity.PaymentToken, error) {
	v, err, _ := r.g.Do(strconv.Itoa(userID), func() (any, error) {
		return r.e.ForUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]*entity.PaymentToken)), nil
}

// DeleteToken removes the token from the vault.
func (r *PaymentTokenRepository) DeleteToken(ctx context.Context, token *entity.PaymentToken) error {
	return r.e.Delete(ctx, token.ID)
}

func (r *PaymentTokenRepository) TokensContainPayPal(tokens []*entity.PaymentToken) bool {
	return slices.ContainsFunc(tokens, (*entity.PaymentToken).IsPayPal)
}

func (r *PaymentTokenRepository) TokensContainCard(tokens []*entity.PaymentToken) bool {
	return slices.ContainsFunc(tokens, (*entity.PaymentToken).IsCard)
}
