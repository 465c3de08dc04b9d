package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/pkg/errs"
)

// GetParcelQueryHandler retrieves one parcel and its audit trail from the
// database. The parcel is rehydrated into the domain aggregate so the access
// policy can run against real state before anything is returned.
//
// Example:
//
//	handler := NewGetParcelQueryHandler(db)
//	view, err := handler.Handle(ctx, query)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // 404
//	case errors.Is(err, errs.ErrAccessDenied):
//	    // 403
//	}
type GetParcelQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewGetParcelQueryHandler creates a handler for single-parcel queries.
// Requires a GORM database connection for query execution.
func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

// Handle executes the query. Returns an ObjectNotFoundError when the parcel
// does not exist and an AccessDeniedError when the requester has no
// relationship to it.
func (h GetParcelQueryHandler) Handle(
	ctx context.Context,
	query GetParcelQuery,
) (*GetParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	p, err := h.loadParcel(ctx, query.ParcelID())
	if err != nil {
		return nil, err
	}

	if decision := h.policy.Authorize(p, query.Requester()); !decision.Authorized {
		return nil, errs.NewAccessDeniedError(decision.Reason)
	}

	history, err := h.loadHistory(ctx, p.ID())
	if err != nil {
		return nil, err
	}

	response := &GetParcelQueryResponse{
		ID:             p.ID(),
		TrackingNumber: p.TrackingNumber(),
		SenderID:       p.Sender(),
		RecipientID:    p.Recipient(),
		CourierID:      p.Courier(),
		Status:         p.Status().String(),
		Notes:          p.Notes(),
		Location:       p.Location(),
		Destination:    p.Destination(),
		SubmittedAt:    p.SubmittedAt(),
		DeliveredAt:    p.DeliveredAt(),
		History:        history,
	}

	return response, nil
}

// loadParcel rehydrates the parcel aggregate from its row.
func (h GetParcelQueryHandler) loadParcel(
	ctx context.Context,
	parcelID kernel.UUID,
) (*parcel.Parcel, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			sender_id,
			recipient_id,
			courier_id,
			status,
			notes,
			latitude,
			longitude,
			dest_street,
			dest_city,
			dest_zip_code,
			dest_country,
			submitted_at,
			delivered_at,
			version
		FROM parcels
		WHERE id = ?
	`, parcelID.Bytes()).Row()

	var (
		id, senderID, recipientID uuid.UUID
		courierID                 uuid.NullUUID
		trackingNumber            string
		status, version           int
		notes                     sql.NullString
		latitude, longitude       sql.NullFloat64
		submittedAt               time.Time
		deliveredAt               sql.NullTime

		destStreet, destCity, destZipCode, destCountry string
	)

	err := row.Scan(
		&id, &trackingNumber, &senderID, &recipientID, &courierID,
		&status, &notes, &latitude, &longitude,
		&destStreet, &destCity, &destZipCode, &destCountry,
		&submittedAt, &deliveredAt, &version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("parcel", parcelID)
	}
	if err != nil {
		return nil, err
	}

	return restoreParcelRow(parcelRow{
		id:          id,
		tracking:    trackingNumber,
		senderID:    senderID,
		recipientID: recipientID,
		courierID:   courierID,
		status:      status,
		notes:       notes,
		latitude:    latitude,
		longitude:   longitude,
		street:      destStreet,
		city:        destCity,
		zipCode:     destZipCode,
		country:     destCountry,
		submittedAt: submittedAt,
		deliveredAt: deliveredAt,
		version:     version,
	})
}

// loadHistory reads the audit trail oldest first.
func (h GetParcelQueryHandler) loadHistory(
	ctx context.Context,
	parcelID kernel.UUID,
) ([]HistoryEntryResponse, error) {
	entries := make([]HistoryEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			latitude,
			longitude,
			notes,
			recorded_at
		FROM parcel_history
		WHERE parcel_id = ?
		ORDER BY recorded_at, id
	`, parcelID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status              int
			latitude, longitude sql.NullFloat64
			notes               sql.NullString
			recordedAt          time.Time
		)

		if err = rows.Scan(&status, &latitude, &longitude, &notes, &recordedAt); err != nil {
			return nil, err
		}

		entry := HistoryEntryResponse{
			Status:     parcel.Status(status).String(),
			RecordedAt: recordedAt,
		}
		if notes.Valid {
			n := notes.String
			entry.Notes = &n
		}
		if latitude.Valid && longitude.Valid {
			location, locErr := kernel.NewGeoPoint(latitude.Float64, longitude.Float64)
			if locErr != nil {
				return nil, locErr
			}
			entry.Location = &location
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// parcelRow carries one scanned parcels row before domain rehydration.
type parcelRow struct {
	id          uuid.UUID
	tracking    string
	senderID    uuid.UUID
	recipientID uuid.UUID
	courierID   uuid.NullUUID
	status      int
	notes       sql.NullString
	latitude    sql.NullFloat64
	longitude   sql.NullFloat64
	street      string
	city        string
	zipCode     string
	country     string
	submittedAt time.Time
	deliveredAt sql.NullTime
	version     int
}

// restoreParcelRow maps a scanned row onto the domain aggregate so corrupt
// rows surface as errors instead of invalid views.
func restoreParcelRow(row parcelRow) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(row.id[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(row.senderID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(row.recipientID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if row.courierID.Valid {
		cID, cErr := kernel.UUIDFromBytes(row.courierID.UUID[:])
		if cErr != nil {
			return nil, cErr
		}
		courierID = &cID
	}

	var notes *string
	if row.notes.Valid {
		n := row.notes.String
		notes = &n
	}

	var location *kernel.GeoPoint
	if row.latitude.Valid && row.longitude.Valid {
		loc, locErr := kernel.NewGeoPoint(row.latitude.Float64, row.longitude.Float64)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	var deliveredAt *time.Time
	if row.deliveredAt.Valid {
		d := row.deliveredAt.Time
		deliveredAt = &d
	}

	return parcel.RestoreParcel(
		id,
		row.tracking,
		senderID,
		recipientID,
		courierID,
		parcel.Status(row.status),
		notes,
		location,
		kernel.NewAddress(row.street, row.city, row.zipCode, row.country),
		row.submittedAt,
		deliveredAt,
		row.version,
	)
}
