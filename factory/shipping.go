package factory

import (
	"encoding/json"
	"strings"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/entity"
	"github.com/adobaai/ppcp/wc"
)

type AddressFactory struct{}

func NewAddressFactory() *AddressFactory {
	return &AddressFactory{}
}

func (f *AddressFactory) FromWCAddress(a wc.Address) *entity.Address {
	return &entity.Address{
		CountryCode:  a.Country,
		AddressLine1: a.Address1,
		AddressLine2: a.Address2,
		AdminArea1:   a.State,
		AdminArea2:   a.City,
		PostalCode:   a.Postcode,
	}
}

func (f *AddressFactory) FromPayPalResponse(raw json.RawMessage) (*entity.Address, error) {
	a, err := decode[entity.Address](raw, "address", "Could not parse address.")
	if err != nil {
		return nil, err
	}
	if a.CountryCode == "" {
		return nil, ppcp.MissingField("address", "country_code", "No country given for address.")
	}
	return a, nil
}

type ShippingMapper interface {
	FromWCOrder(o wc.Order) *entity.Shipping
	FromWCCustomer(c wc.Customer, useBilling bool) *entity.Shipping
	FromPayPalResponse(raw json.RawMessage) (*entity.Shipping, error)
}

type ShippingFactory struct {
	addresses *AddressFactory
}

func NewShippingFactory(addresses *AddressFactory) *ShippingFactory {
	return &ShippingFactory{addresses: addresses}
}

func (f *ShippingFactory) FromWCOrder(o wc.Order) *entity.Shipping {
	return f.fromWCAddress(o.ShippingAddress())
}

// FromWCCustomer uses the billing address instead of the shipping one when useBilling is set.
func (f *ShippingFactory) FromWCCustomer(c wc.Customer, useBilling bool) *entity.Shipping {
	if useBilling {
		return f.fromWCAddress(c.BillingAddress())
	}
	return f.fromWCAddress(c.ShippingAddress())
}

func (f *ShippingFactory) fromWCAddress(a wc.Address) *entity.Shipping {
	res := &entity.Shipping{Address: f.addresses.FromWCAddress(a)}
	if name := strings.TrimSpace(a.FirstName + " " + a.LastName); name != "" {
		res.Name = &entity.Name{FullName: name}
	}
	return res
}

type shippingResponse struct {
	Name    *entity.Name    `json:"name"`
	Address json.RawMessage `json:"address"`
}

// FromPayPalResponse requires a name and an address.
func (f *ShippingFactory) FromPayPalResponse(raw json.RawMessage) (*entity.Shipping, error) {
	r, err := decode[shippingResponse](raw, "shipping", "Could not parse shipping.")
	if err != nil {
		return nil, err
	}
	if r.Name == nil || r.Name.FullName == "" {
		return nil, ppcp.MissingField("shipping", "name", "No name was given for shipping.")
	}
	if !present(r.Address) {
		return nil, ppcp.MissingField("shipping", "address", "No address was given for shipping.")
	}
	addr, err := f.addresses.FromPayPalResponse(r.Address)
	if err != nil {
		return nil, err
	}
	return &entity.Shipping{Name: r.Name, Address: addr}, nil
}
