package shippingAddress

import (
	"strings"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

// DefaultCountry is used when the checkout form leaves country empty.
const DefaultCountry = "US"

// Address is the structured shipping address captured at checkout.
// It is copied onto the order (snapshot), never referenced.
type Address struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// Errors
var (
	ErrInvalidName       = common.NewValidationError("shipping_address.name", "name is required")
	ErrInvalidPhone      = common.NewValidationError("shipping_address.phone", "phone is required")
	ErrInvalidLine1      = common.NewValidationError("shipping_address.address_line_1", "address line 1 is required")
	ErrInvalidCity       = common.NewValidationError("shipping_address.city", "city is required")
	ErrInvalidState      = common.NewValidationError("shipping_address.state", "state is required")
	ErrInvalidPostalCode = common.NewValidationError("shipping_address.postal_code", "postal code is required")
)

// Normalize trims every field and fills the default country.
func (a Address) Normalize() Address {
	a.Name = strings.TrimSpace(a.Name)
	a.Phone = strings.TrimSpace(a.Phone)
	a.AddressLine1 = strings.TrimSpace(a.AddressLine1)
	a.AddressLine2 = strings.TrimSpace(a.AddressLine2)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	if a.Country == "" {
		a.Country = DefaultCountry
	}
	return a
}

// Validate expects a normalized address. address_line_2 is optional.
func (a Address) Validate() error {
	switch {
	case a.Name == "":
		return ErrInvalidName
	case a.Phone == "":
		return ErrInvalidPhone
	case a.AddressLine1 == "":
		return ErrInvalidLine1
	case a.City == "":
		return ErrInvalidCity
	case a.State == "":
		return ErrInvalidState
	case a.PostalCode == "":
		return ErrInvalidPostalCode
	}
	return nil
}
