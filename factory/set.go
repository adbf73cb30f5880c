package factory

// Set holds every factory wired to its collaborators.
type Set struct {
	Items               *ItemFactory
	Amounts             *AmountFactory
	Addresses           *AddressFactory
	Shipping            *ShippingFactory
	Authorizations      *AuthorizationFactory
	Captures            *CaptureFactory
	Refunds             *RefundFactory
	Payments            *PaymentsFactory
	PurchaseUnits       *PurchaseUnitFactory
	Payers              *PayerFactory
	Orders              *OrderFactory
	PaymentTokens       *PaymentTokenFactory
	Errors              *ErrorResponseFactory
	Patches             *PatchCollectionFactory
	ShippingPreferences *ShippingPreferenceFactory
}

func NewSet() *Set {
	s := &Set{
		Items:               NewItemFactory(),
		Addresses:           NewAddressFactory(),
		Authorizations:      NewAuthorizationFactory(),
		Captures:            NewCaptureFactory(),
		Refunds:             NewRefundFactory(),
		Payers:              NewPayerFactory(),
		PaymentTokens:       NewPaymentTokenFactory(),
		Errors:              NewErrorResponseFactory(),
		Patches:             NewPatchCollectionFactory(),
		ShippingPreferences: NewShippingPreferenceFactory(),
	}
	s.Amounts = NewAmountFactory(s.Items)
	s.Shipping = NewShippingFactory(s.Addresses)
	s.Payments = NewPaymentsFactory(s.Authorizations, s.Captures, s.Refunds)
	s.PurchaseUnits = NewPurchaseUnitFactory(s.Amounts, s.Items, s.Shipping, s.Payments)
	s.Orders = NewOrderFactory(s.PurchaseUnits, s.Payers)
	return s
}
