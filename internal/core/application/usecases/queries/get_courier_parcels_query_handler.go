package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/errs"
)

const courierMayOnlyListOwnParcels = "couriers may only list their own packages"

// GetCourierParcelsQueryHandler lists the parcels assigned to a courier.
//
// Scope ordering follows how the workload is read: active parcels by newest
// submission, delivered parcels by most recent delivery.
type GetCourierParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierParcelsQueryHandler creates a handler for courier workload queries.
// Requires a GORM database connection for query execution.
func NewGetCourierParcelsQueryHandler(db *gorm.DB) GetCourierParcelsQueryHandler {
	return GetCourierParcelsQueryHandler{db: db}
}

// Handle executes the listing. Actors other than the courier themselves or an
// administrator get an AccessDeniedError. An unknown courier yields an empty
// listing, not an error: this view cannot tell an empty workload apart from a
// courier that does not exist.
func (h GetCourierParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierParcelsQuery,
) ([]GetCourierParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requester := query.Requester()
	isSelf := requester.Role == actor.RoleCourier && requester.ID.IsEqual(query.CourierID())
	if requester.Role != actor.RoleAdmin && !isSelf {
		return nil, errs.NewAccessDeniedError(courierMayOnlyListOwnParcels)
	}

	parcels := make([]GetCourierParcelsQueryResponse, 0)

	stmt, args := h.scopedSQL(query.Scope(), query.CourierID())
	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                  uuid.UUID
			trackingNumber      string
			status              int
			latitude, longitude sql.NullFloat64
			submittedAt         time.Time
			deliveredAt         sql.NullTime
		)

		err = rows.Scan(&id, &trackingNumber, &status, &latitude, &longitude,
			&submittedAt, &deliveredAt)
		if err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp := GetCourierParcelsQueryResponse{
			ID:             parcelID,
			TrackingNumber: trackingNumber,
			Status:         parcel.Status(status).String(),
			SubmittedAt:    submittedAt,
		}
		if latitude.Valid && longitude.Valid {
			location, locErr := kernel.NewGeoPoint(latitude.Float64, longitude.Float64)
			if locErr != nil {
				return nil, locErr
			}
			resp.Location = &location
		}
		if deliveredAt.Valid {
			d := deliveredAt.Time
			resp.DeliveredAt = &d
		}

		parcels = append(parcels, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}

// scopedSQL returns the listing statement and its arguments for a scope.
func (h GetCourierParcelsQueryHandler) scopedSQL(scope Scope, courierID kernel.UUID) (string, []any) {
	const base = `
		SELECT
			id,
			tracking_number,
			status,
			latitude,
			longitude,
			submitted_at,
			delivered_at
		FROM parcels
		WHERE courier_id = ?`

	switch scope {
	case ScopeDelivered:
		return base + `
		AND status = ?
		ORDER BY delivered_at DESC`, []any{courierID.Bytes(), parcel.StatusDelivered}
	case ScopeActive:
		return base + `
		AND status != ?
		ORDER BY submitted_at DESC`, []any{courierID.Bytes(), parcel.StatusDelivered}
	default:
		return base + `
		ORDER BY submitted_at DESC`, []any{courierID.Bytes()}
	}
}
