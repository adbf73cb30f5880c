package subscription

import (
	"context"
	"html/template"
	"strings"

	"github.com/go-faster/errors"

	"github.com/adobaai/ppcp/config"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/vault"
	"github.com/adobaai/ppcp/wc"
)

const (
	NoPayPalSaved = "No PayPal payments saved, in order to use a saved payment you first need to create it through a purchase."
	NoCardSaved   = "No Credit Card saved, in order to use a saved Credit Card you first need to create it through a purchase."

	// SavedCardField is the credit card form field replaced by the saved cards.
	SavedCardField = "saved-credit-card"
)

var selectTmpl = template.Must(template.New("select").Parse(
	`<p class="form-row form-row-wide"><label>{{.Label}}</label><select id="{{.ID}}" name="{{.Name}}">` +
		`{{range .Options}}<option value="{{.Value}}">{{.Text}}</option>{{end}}</select></p>`))

type selectData struct {
	Label   string
	ID      string
	Name    string
	Options []option
}

type option struct {
	Value string
	Text  string
}

// SavedPayments lets a customer pick a saved payment method when changing
// the payment method of a subscription.
type SavedPayments struct {
	tokens   *vault.PaymentTokenRepository
	settings config.Settings
}

func NewSavedPayments(tokens *vault.PaymentTokenRepository, settings config.Settings) *SavedPayments {
	return &SavedPayments{tokens: tokens, settings: settings}
}

// PayPalDescription returns the select of the saved PayPal accounts of the user
// for the PayPal gateway, or the description unchanged.
func (s *SavedPayments) PayPalDescription(
	ctx context.Context, gatewayID string, userID int, changePayment bool, description string,
) (string, error) {
	if !s.settings.VaultEnabled || gatewayID != wc.PayPalGatewayID || !changePayment {
		return description, nil
	}
	tokens, err := s.tokens.AllForUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !s.tokens.TokensContainPayPal(tokens) {
		return NoPayPalSaved, nil
	}

	d := selectData{
		Label: "Select a saved PayPal payment",
		ID:    "saved-paypal-payment",
		Name:  "saved_paypal_payment",
	}
	for _, t := range tokens {
		if t.IsPayPal() {
			d.Options = append(d.Options, option{Value: t.ID, Text: t.Email()})
		}
	}
	return render(d)
}

// CreditCardFields returns the fields of the credit card form,
// a single select of the saved cards when changing the payment method of a subscription.
func (s *SavedPayments) CreditCardFields(
	ctx context.Context, gatewayID string, userID int, changePayment bool, fields map[string]string,
) (map[string]string, error) {
	if !s.settings.VaultEnabledDCC || !changePayment || gatewayID != wc.CreditCardGatewayID {
		return fields, nil
	}
	tokens, err := s.tokens.AllForUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !s.tokens.TokensContainCard(tokens) {
		return map[string]string{SavedCardField: NoCardSaved}, nil
	}

	d := selectData{
		Label: "Select a saved Credit Card payment",
		ID:    "saved-credit-card",
		Name:  "saved_credit_card",
	}
	for _, t := range tokens {
		if t.IsCard() {
			d.Options = append(d.Options, option{Value: t.ID, Text: cardLabel(t.Source.Card)})
		}
	}
	out, err := render(d)
	if err != nil {
		return nil, err
	}
	return map[string]string{SavedCardField: out}, nil
}

func cardLabel(c *entity.CardSource) string {
	return c.Brand + " ..." + c.LastDigits
}

func render(d selectData) (string, error) {
	var sb strings.Builder
	if err := selectTmpl.Execute(&sb, d); err != nil {
		return "", errors.Wrap(err, "render saved payments")
	}
	return sb.String(), nil
}
