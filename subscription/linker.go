// Package subscription links WooCommerce subscriptions to the payment methods
// saved with PayPal so renewals can be charged without the customer.
package subscription

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/vault"
	"github.com/adobaai/ppcp/wc"
)

// OrderGetter fetches PayPal orders, e.g. the order endpoint.
type OrderGetter interface {
	Order(ctx context.Context, id string) (*entity.Order, error)
}

type TokenLinker struct {
	tokens *vault.PaymentTokenRepository
	orders OrderGetter
	log    *zap.Logger
}

func NewTokenLinker(tokens *vault.PaymentTokenRepository, orders OrderGetter, log *zap.Logger) *TokenLinker {
	return &TokenLinker{tokens: tokens, orders: orders, log: log}
}

// PaymentComplete runs after a subscription payment.
// Subscriptions billed by PayPal itself are left alone.
// After the first payment the capture of the parent order is stored for card renewals.
func (l *TokenLinker) PaymentComplete(ctx context.Context, sub wc.Subscription) error {
	if sub.Meta(wc.MetaPayPalSubscription) != "" {
		return nil
	}
	if err := l.AddPaymentTokenID(ctx, sub); err != nil {
		return err
	}
	if sub.RelatedOrderCount() != 1 {
		return nil
	}
	id := sub.ParentMeta(wc.MetaPayPalOrderID)
	if id == "" {
		return nil
	}
	o, err := l.orders.Order(ctx, id)
	if err != nil {
		return err
	}
	tx := transactionID(o)
	if tx == "" {
		return nil
	}
	sub.UpdateMeta(wc.MetaPreviousTransactionReference, tx)
	if err := sub.Save(ctx); err != nil {
		return errors.Wrap(err, "save subscription")
	}
	return nil
}

// AddPaymentTokenID stores the latest vaulted token of the customer on the subscription.
// PayPal failures are logged instead of returned so the payment is not affected.
func (l *TokenLinker) AddPaymentTokenID(ctx context.Context, sub wc.Subscription) error {
	tokens, err := l.tokens.AllForUserID(ctx, sub.CustomerID())
	if err != nil {
		var re *ppcp.RuntimeError
		if errors.As(err, &re) {
			l.log.Warn(fmt.Sprintf("Could not add token Id to subscription %d: %s", sub.ID(), re.Message),
				zap.Error(re.Err))
			return nil
		}
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	sub.UpdateMeta(wc.MetaPaymentTokenID, tokens[len(tokens)-1].ID)
	if err := sub.Save(ctx); err != nil {
		return errors.Wrap(err, "save subscription")
	}
	return nil
}

// transactionID returns the first capture of the order.
func transactionID(o *entity.Order) string {
	for _, u := range o.PurchaseUnits {
		p := u.Payments()
		if p == nil || len(p.Captures) == 0 {
			continue
		}
		return p.Captures[0].ID
	}
	return ""
}
