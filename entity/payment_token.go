package entity

// PaymentMethodToken is the only token type the vault returns.
const PaymentMethodToken = "PAYMENT_METHOD_TOKEN"

// PaymentToken is a vaulted payment method.
//
// See https://developer.paypal.com/docs/api/payment-tokens/v2/.
type PaymentToken struct {
	ID     string             `json:"id"`
	Type   string             `json:"type"`
	Source PaymentTokenSource `json:"source"`
}

// PaymentTokenSource has exactly one of PayPal or Card set.
type PaymentTokenSource struct {
	PayPal *PayPalTokenSource `json:"paypal,omitempty"`
	Card   *CardSource        `json:"card,omitempty"`
}

type PayPalTokenSource struct {
	Payer *Payer `json:"payer,omitempty"`
}

func (t *PaymentToken) IsPayPal() bool {
	return t.Source.PayPal != nil
}

func (t *PaymentToken) IsCard() bool {
	return t.Source.Card != nil
}

// Email returns the email of the PayPal account, or "" for other sources.
func (t *PaymentToken) Email() string {
	if t.Source.PayPal == nil || t.Source.PayPal.Payer == nil {
		return ""
	}
	return t.Source.PayPal.Payer.EmailAddress
}
