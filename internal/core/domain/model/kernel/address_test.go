package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/core/domain/model/kernel"
)

func TestNewAddress(t *testing.T) {
	t.Run("creates address with trimmed fields", func(t *testing.T) {
		addr := kernel.NewAddress("  Nowy Swiat 1 ", " Warsaw", "00-001 ", "Poland")

		require.NoError(t, addr.Validate())
		assert.Equal(t, "Nowy Swiat 1", addr.Street())
		assert.Equal(t, "Warsaw", addr.City())
		assert.Equal(t, "00-001", addr.ZipCode())
		assert.Equal(t, "Poland", addr.Country())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var addr kernel.Address

		require.Error(t, addr.Validate())
	})
}

func TestAddress_IsComplete(t *testing.T) {
	tests := []struct {
		name    string
		street  string
		city    string
		zipCode string
		country string
		want    bool
	}{
		{name: "all fields present", street: "Nowy Swiat 1", city: "Warsaw", zipCode: "00-001", country: "Poland", want: true},
		{name: "missing street", street: "", city: "Warsaw", zipCode: "00-001", country: "Poland", want: false},
		{name: "missing city", street: "Nowy Swiat 1", city: "", zipCode: "00-001", country: "Poland", want: false},
		{name: "missing zip code", street: "Nowy Swiat 1", city: "Warsaw", zipCode: "", country: "Poland", want: false},
		{name: "missing country", street: "Nowy Swiat 1", city: "Warsaw", zipCode: "00-001", country: "", want: false},
		{name: "whitespace-only field", street: "   ", city: "Warsaw", zipCode: "00-001", country: "Poland", want: false},
		{name: "all fields empty", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := kernel.NewAddress(tt.street, tt.city, tt.zipCode, tt.country)

			assert.Equal(t, tt.want, addr.IsComplete())
		})
	}
}

func TestAddress_String(t *testing.T) {
	addr := kernel.NewAddress("Nowy Swiat 1", "Warsaw", "00-001", "Poland")

	assert.Equal(t, "Nowy Swiat 1, 00-001 Warsaw, Poland", addr.String())
}
