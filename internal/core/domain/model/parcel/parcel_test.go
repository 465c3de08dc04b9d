package parcel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/errs"
)

func testDestination() kernel.Address {
	return kernel.NewAddress("Nowy Swiat 1", "Warsaw", "00-001", "Poland")
}

func newTestParcel(t *testing.T) *parcel.Parcel {
	t.Helper()

	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		"PKG-0001",
		kernel.NewUUID(),
		kernel.NewUUID(),
		testDestination(),
		time.Now(),
	)
	require.NoError(t, err)
	return p
}

func TestNewParcel(t *testing.T) {
	t.Run("valid parcel starts in sent status", func(t *testing.T) {
		id := kernel.NewUUID()
		sender := kernel.NewUUID()
		recipient := kernel.NewUUID()
		submittedAt := time.Now()

		p, err := parcel.NewParcel(id, "PKG-0001", sender, recipient, testDestination(), submittedAt)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, "PKG-0001", p.TrackingNumber())
		assert.True(t, p.Sender().IsEqual(sender))
		assert.True(t, p.Recipient().IsEqual(recipient))
		assert.Equal(t, parcel.StatusSent, p.Status())
		assert.Nil(t, p.Courier())
		assert.Nil(t, p.Location())
		assert.Nil(t, p.Notes())
		assert.Nil(t, p.DeliveredAt())
		assert.Equal(t, submittedAt, p.SubmittedAt())
	})

	t.Run("empty tracking number is rejected", func(t *testing.T) {
		_, err := parcel.NewParcel(
			kernel.NewUUID(), "", kernel.NewUUID(), kernel.NewUUID(), testDestination(), time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid sender is rejected", func(t *testing.T) {
		var sender kernel.UUID

		_, err := parcel.NewParcel(
			kernel.NewUUID(), "PKG-0001", sender, kernel.NewUUID(), testDestination(), time.Now())

		require.Error(t, err)
	})

	t.Run("unconstructed destination is rejected", func(t *testing.T) {
		var destination kernel.Address

		_, err := parcel.NewParcel(
			kernel.NewUUID(), "PKG-0001", kernel.NewUUID(), kernel.NewUUID(), destination, time.Now())

		require.Error(t, err)
	})

	t.Run("zero value parcel fails validation", func(t *testing.T) {
		var p parcel.Parcel

		require.ErrorIs(t, p.Validate(), parcel.ErrParcelIsNotConstructed)
	})
}

func TestRestoreParcel(t *testing.T) {
	t.Run("restores full state", func(t *testing.T) {
		id := kernel.NewUUID()
		courierID := kernel.NewUUID()
		location, _ := kernel.NewGeoPoint(52.2297, 21.0122)
		notes := "left at reception"
		deliveredAt := time.Now()

		p, err := parcel.RestoreParcel(
			id, "PKG-0002", kernel.NewUUID(), kernel.NewUUID(), &courierID,
			parcel.StatusDelivered, &notes, &location, testDestination(),
			deliveredAt.Add(-time.Hour), &deliveredAt, 3,
		)

		require.NoError(t, err)
		assert.Equal(t, parcel.StatusDelivered, p.Status())
		assert.NotNil(t, p.Courier())
		assert.NotNil(t, p.Location())
		assert.Equal(t, &notes, p.Notes())
		assert.Equal(t, &deliveredAt, p.DeliveredAt())
		assert.Equal(t, 3, p.Version())
	})

	t.Run("delivered without timestamp is inconsistent", func(t *testing.T) {
		_, err := parcel.RestoreParcel(
			kernel.NewUUID(), "PKG-0003", kernel.NewUUID(), kernel.NewUUID(), nil,
			parcel.StatusDelivered, nil, nil, testDestination(),
			time.Now(), nil, 1,
		)

		require.ErrorIs(t, err, parcel.ErrDeliveredAtInconsistent)
	})

	t.Run("timestamp without delivered status is inconsistent", func(t *testing.T) {
		deliveredAt := time.Now()

		_, err := parcel.RestoreParcel(
			kernel.NewUUID(), "PKG-0004", kernel.NewUUID(), kernel.NewUUID(), nil,
			parcel.StatusInDelivery, nil, nil, testDestination(),
			time.Now(), &deliveredAt, 1,
		)

		require.ErrorIs(t, err, parcel.ErrDeliveredAtInconsistent)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := parcel.RestoreParcel(
			kernel.NewUUID(), "PKG-0005", kernel.NewUUID(), kernel.NewUUID(), nil,
			parcel.StatusUnknown, nil, nil, testDestination(),
			time.Now(), nil, 1,
		)

		require.Error(t, err)
	})
}

func TestParcel_AssignCourier(t *testing.T) {
	t.Run("assigns and reassigns before delivery", func(t *testing.T) {
		p := newTestParcel(t)
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		require.NoError(t, p.AssignCourier(first))
		require.NotNil(t, p.Courier())
		assert.True(t, p.Courier().IsEqual(first))

		require.NoError(t, p.AssignCourier(second))
		assert.True(t, p.Courier().IsEqual(second))
	})

	t.Run("rejects assignment after delivery", func(t *testing.T) {
		p := newTestParcel(t)
		deliveredAt := time.Now()
		require.NoError(t, p.Apply(parcel.TransitionOutcome{
			Status:      parcel.StatusDelivered,
			DeliveredAt: &deliveredAt,
		}))

		err := p.AssignCourier(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("rejects invalid courier id", func(t *testing.T) {
		p := newTestParcel(t)
		var courierID kernel.UUID

		require.Error(t, p.AssignCourier(courierID))
	})
}

func TestParcel_Apply(t *testing.T) {
	t.Run("round-trips the outcome onto the parcel", func(t *testing.T) {
		p := newTestParcel(t)
		location, _ := kernel.NewGeoPoint(52.2297, 21.0122)
		notes := "on the way"

		outcome := parcel.TransitionOutcome{
			Status:       parcel.StatusInDelivery,
			Location:     &location,
			Notes:        &notes,
			WriteHistory: true,
		}

		require.NoError(t, p.Apply(outcome))
		assert.Equal(t, outcome.Status, p.Status())
		assert.Equal(t, outcome.Location, p.Location())
		assert.Equal(t, outcome.Notes, p.Notes())
		assert.Nil(t, p.DeliveredAt())
	})

	t.Run("delivered outcome must carry a timestamp", func(t *testing.T) {
		p := newTestParcel(t)

		err := p.Apply(parcel.TransitionOutcome{Status: parcel.StatusDelivered})

		require.ErrorIs(t, err, parcel.ErrDeliveredAtInconsistent)
	})

	t.Run("timestamp on undelivered outcome is rejected", func(t *testing.T) {
		p := newTestParcel(t)
		deliveredAt := time.Now()

		err := p.Apply(parcel.TransitionOutcome{
			Status:      parcel.StatusInDelivery,
			DeliveredAt: &deliveredAt,
		})

		require.ErrorIs(t, err, parcel.ErrDeliveredAtInconsistent)
	})

	t.Run("delivered parcel keeps the invariant", func(t *testing.T) {
		p := newTestParcel(t)
		deliveredAt := time.Now()

		require.NoError(t, p.Apply(parcel.TransitionOutcome{
			Status:      parcel.StatusDelivered,
			DeliveredAt: &deliveredAt,
		}))

		assert.Equal(t, parcel.StatusDelivered, p.Status())
		require.NotNil(t, p.DeliveredAt())
	})
}

func TestNewHistoryEntry(t *testing.T) {
	t.Run("valid entry", func(t *testing.T) {
		location, _ := kernel.NewGeoPoint(52.2297, 21.0122)
		notes := "picked up"
		recordedAt := time.Now()
		id := kernel.NewUUID()
		parcelID := kernel.NewUUID()

		entry, err := parcel.NewHistoryEntry(
			id, parcelID, parcel.StatusInDelivery, &location, &notes, recordedAt)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.True(t, entry.ID().IsEqual(id))
		assert.True(t, entry.ParcelID().IsEqual(parcelID))
		assert.Equal(t, parcel.StatusInDelivery, entry.Status())
		assert.NotNil(t, entry.Location())
		assert.Equal(t, &notes, entry.Notes())
		assert.Equal(t, recordedAt, entry.RecordedAt())
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := parcel.NewHistoryEntry(
			kernel.NewUUID(), kernel.NewUUID(), parcel.StatusUnknown, nil, nil, time.Now())

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var entry parcel.HistoryEntry

		require.ErrorIs(t, entry.Validate(), parcel.ErrHistoryEntryIsNotConstructed)
	})
}
