package kernel

import (
	"fmt"
	"strings"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents a postal address used as a parcel destination and as
// geocoding input. It is an immutable value object.
//
// Individual fields may be empty: a parcel can be created before the full
// destination is known. IsComplete reports whether the address carries enough
// information to be geocoded.
type Address struct { //nolint:recvcheck //using for validation
	street  string
	city    string
	zipCode string
	country string
	guard   guard.ConstructorGuard
}

// NewAddress creates an Address from its four components.
// Fields are trimmed of surrounding whitespace; empty fields are allowed.
func NewAddress(street, city, zipCode, country string) Address {
	return Address{
		street:  strings.TrimSpace(street),
		city:    strings.TrimSpace(city),
		zipCode: strings.TrimSpace(zipCode),
		country: strings.TrimSpace(country),
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate checks that the Address was created via NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// ZipCode returns the postal code of the address.
func (a Address) ZipCode() string {
	return a.zipCode
}

// Country returns the country of the address.
func (a Address) Country() string {
	return a.country
}

// IsComplete reports whether all four address components are non-empty.
// Only complete addresses may be submitted for geocoding.
func (a Address) IsComplete() bool {
	return a.street != "" && a.city != "" && a.zipCode != "" && a.country != ""
}

// String returns the address as a single comma-separated line.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s %s, %s", a.street, a.zipCode, a.city, a.country)
}
