package factory

import (
	"github.com/adobaai/ppcp/entity"
)

// Shipping preferences of the application context.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-order_application_context.
const (
	NoShipping         = "NO_SHIPPING"
	SetProvidedAddress = "SET_PROVIDED_ADDRESS"
	GetFromFile        = "GET_FROM_FILE"
)

type ShippingPreferenceFactory struct{}

func NewShippingPreferenceFactory() *ShippingPreferenceFactory {
	return &ShippingPreferenceFactory{}
}

// FromState returns the preference for the unit created in the button context, e.g. "checkout".
// Only on the checkout page the customer already entered the address PayPal must use.
func (f *ShippingPreferenceFactory) FromState(unit *entity.PurchaseUnit, context string) string {
	if unit.Shipping() == nil {
		return NoShipping
	}
	if context == "checkout" {
		return SetProvidedAddress
	}
	return GetFromFile
}
