// Package guard provides a defensive programming primitive that ensures domain
// objects are created through their constructors rather than as zero values.
//
// Value objects, commands, and queries embed a ConstructorGuard that is only
// initialized by the constructor. Validation of a zero-value guard fails,
// catching struct literals that bypass invariant checks.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no custom error
// is supplied and the guard was not initialized by a constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// The zero value is invalid; NewConstructorGuard produces a valid guard.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
// Call this only from the owning object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil if the guard was created via NewConstructorGuard.
// For a zero-value guard it returns notConstructedErr, or
// ErrDefaultConstructorGuard when notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.constructed {
		return nil
	}

	if notConstructedErr != nil {
		return notConstructedErr
	}

	return ErrDefaultConstructorGuard
}
