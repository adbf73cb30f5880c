package factory

import (
	"encoding/json"
	"strings"

	"github.com/adobaai/ppcp/entity"
)

type PayerFactory struct{}

func NewPayerFactory() *PayerFactory {
	return &PayerFactory{}
}

// FromPayPalResponse parses the payer of an order, or the payer the checkout page collected.
func (f *PayerFactory) FromPayPalResponse(raw json.RawMessage) (*entity.Payer, error) {
	return decode[entity.Payer](raw, "payer", "Could not parse payer.")
}

// FromForm builds the payer from the checkout form fields, it returns nil without an email.
func (f *PayerFactory) FromForm(form map[string]string) *entity.Payer {
	email := strings.TrimSpace(form["billing_email"])
	if email == "" {
		return nil
	}
	res := &entity.Payer{EmailAddress: email}
	given := strings.TrimSpace(form["billing_first_name"])
	surname := strings.TrimSpace(form["billing_last_name"])
	if given != "" || surname != "" {
		res.Name = &entity.Name{GivenName: given, Surname: surname}
	}
	if country := form["billing_country"]; country != "" {
		res.Address = &entity.Address{
			CountryCode:  country,
			AddressLine1: form["billing_address_1"],
			AddressLine2: form["billing_address_2"],
			AdminArea1:   form["billing_state"],
			AdminArea2:   form["billing_city"],
			PostalCode:   form["billing_postcode"],
		}
	}
	return res
}
