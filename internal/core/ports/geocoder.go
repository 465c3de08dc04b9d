package ports

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
)

// GeocodeResult is the outcome of resolving an address to coordinates.
// Resolution failures from the upstream service are ordinary results, not
// errors: Location is nil and FailureReason names the upstream problem.
// An error return is reserved for transport-level faults (network, timeout).
type GeocodeResult struct {
	Location      *kernel.GeoPoint
	FailureReason string
}

// Resolved reports whether the result carries usable coordinates.
func (r GeocodeResult) Resolved() bool {
	return r.Location != nil
}

// Geocoder resolves postal addresses to geographic coordinates.
// Implementations must bound each call by the context deadline and must
// never panic on upstream failure.
type Geocoder interface {
	Geocode(ctx context.Context, address kernel.Address) (GeocodeResult, error)
}
