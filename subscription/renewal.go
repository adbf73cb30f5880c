package subscription

import (
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/wc"
)

// ActionProcessRenewal is the order action of a renewal an admin triggers.
const ActionProcessRenewal = "wcs_process_renewal"

// Stored credential values of a merchant initiated recurring charge.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-card_stored_credential.
const (
	InitiatorMerchant = "MERCHANT"
	PaymentRecurring  = "RECURRING"
	UsageSubsequent   = "SUBSEQUENT"
)

// RenewalPaymentSource returns the payment source for charging the vaulted token.
//
// A card renewal an admin processes for the credit card gateway is sent as a
// stored credential, referencing the first transaction when it is known.
// Any other renewal pays with the token as is.
func RenewalPaymentSource(action string, sub wc.Subscription, token *entity.PaymentToken) *entity.PaymentSource {
	if token == nil {
		return nil
	}
	if action != ActionProcessRenewal ||
		sub.PaymentMethod() != wc.CreditCardGatewayID ||
		token.Type != entity.PaymentMethodToken ||
		!token.IsCard() {
		return &entity.PaymentSource{
			Token: &entity.TokenSource{ID: token.ID, Type: token.Type},
		}
	}
	return &entity.PaymentSource{
		Card: &entity.CardSource{
			VaultID: token.ID,
			StoredCredential: &entity.StoredCredential{
				PaymentInitiator:             InitiatorMerchant,
				PaymentType:                  PaymentRecurring,
				Usage:                        UsageSubsequent,
				PreviousTransactionReference: sub.Meta(wc.MetaPreviousTransactionReference),
			},
		},
	}
}
