package kernel

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// DefaultCountry is used by callers that accept an address without a country.
const DefaultCountry = "India"

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is a postal address used for shipping and billing.
// Every field is required and stored trimmed.
type Address struct {
	name       string
	phone      string
	street     string
	city       string
	state      string
	postalCode string
	country    string
	guard      guard.ConstructorGuard
}

// AddressFields carries raw input for NewAddress.
type AddressFields struct {
	Name       string
	Phone      string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// NewAddress returns every missing field in one joined error.
func NewAddress(f AddressFields) (Address, error) {
	a := Address{
		name:       strings.TrimSpace(f.Name),
		phone:      strings.TrimSpace(f.Phone),
		street:     strings.TrimSpace(f.Street),
		city:       strings.TrimSpace(f.City),
		state:      strings.TrimSpace(f.State),
		postalCode: strings.TrimSpace(f.PostalCode),
		country:    strings.TrimSpace(f.Country),
	}

	if err := errors.Join(
		required("name", a.name),
		required("phone", a.phone),
		required("street", a.street),
		required("city", a.city),
		required("state", a.state),
		required("postal code", a.postalCode),
		required("country", a.country),
	); err != nil {
		return Address{}, err
	}

	a.guard = guard.NewConstructorGuard()
	return a, nil
}

func required(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Name() string { return a.name }
func (a Address) Phone() string { return a.phone }
func (a Address) Street() string { return a.street }
func (a Address) City() string { return a.city }
func (a Address) State() string { return a.state }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string { return a.country }

// Fields returns the address as raw input, useful for copies and DTOs.
func (a Address) Fields() AddressFields {
	return AddressFields{
		Name:       a.name,
		Phone:      a.phone,
		Street:     a.street,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
		Country:    a.country,
	}
}

func (a Address) IsEqual(other Address) bool {
	return a.Fields() == other.Fields()
}
