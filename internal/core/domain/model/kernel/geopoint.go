package kernel

import (
	"errors"
	"fmt"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin float64 = -90
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax float64 = 90
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin float64 = -180
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax float64 = 180
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position as a validated latitude/longitude
// pair in decimal degrees. It is an immutable value object; the zero value is
// invalid and fails validation.
//
// A parcel either has a known position (a *GeoPoint) or none (nil); latitude
// and longitude are never set independently.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(52.2297, 21.0122)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(point) // Output: GeoPoint(52.229700,21.012200)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given coordinates.
// Latitude must be within [LatitudeMin..LatitudeMax] and longitude within
// [LongitudeMin..LongitudeMax]; otherwise a validation error is returned.
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks that the GeoPoint was created via NewGeoPoint.
// Returns ErrGeoPointIsNotConstructed for a zero-value GeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns the point formatted as "GeoPoint(lat,lon)".
// Implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p == other, nil
}

// setLatitude sets the latitude with range validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, so the constructor can run self-encapsulated validation.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}

// GeoPointsEqual reports whether two optional points carry the same coordinates.
// Two nil points are equal; a nil and a non-nil point are not.
func GeoPointsEqual(a *GeoPoint, b *GeoPoint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
