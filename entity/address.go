package entity

// Address is a portable postal address.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-address_portable.
type Address struct {
	CountryCode  string `json:"country_code"`
	AddressLine1 string `json:"address_line_1,omitempty"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	AdminArea1   string `json:"admin_area_1,omitempty"` // State or province
	AdminArea2   string `json:"admin_area_2,omitempty"` // City
	PostalCode   string `json:"postal_code,omitempty"`
}

// Usable reports whether PayPal can use the address for shipping.
func (a *Address) Usable() bool {
	return a != nil && a.CountryCode != "" && a.PostalCode != ""
}

// Name is the name of a party.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-name.
type Name struct {
	GivenName string `json:"given_name,omitempty"`
	Surname   string `json:"surname,omitempty"`
	FullName  string `json:"full_name,omitempty"`
}

// Shipping is the shipping details of a purchase unit.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-shipping_detail.
type Shipping struct {
	Name    *Name    `json:"name,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// Usable reports whether the shipping has a usable address.
func (s *Shipping) Usable() bool {
	return s != nil && s.Address.Usable()
}

// Payer is the customer who approves and pays for the order.
//
// See https://developer.paypal.com/docs/api/orders/v2/#definition-payer.
type Payer struct {
	PayerID      string   `json:"payer_id,omitempty"`
	EmailAddress string   `json:"email_address,omitempty"`
	Name         *Name    `json:"name,omitempty"`
	Address      *Address `json:"address,omitempty"`
}
