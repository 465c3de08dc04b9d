// Package http exposes the package tracking API over HTTP.
// It translates requests into commands and queries, and maps domain errors
// onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers. The API trusts an upstream gateway to authenticate the
// caller and forward its identity.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	updateParcelStatusHandler commands.UpdateParcelStatusCommandHandler
	getParcelHandler          queries.GetParcelQueryHandler
	getCourierParcelsHandler  queries.GetCourierParcelsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	updateParcelStatusHandler commands.UpdateParcelStatusCommandHandler,
	getParcelHandler queries.GetParcelQueryHandler,
	getCourierParcelsHandler queries.GetCourierParcelsQueryHandler,
) *Server {
	return &Server{
		updateParcelStatusHandler: updateParcelStatusHandler,
		getParcelHandler:          getParcelHandler,
		getCourierParcelsHandler:  getCourierParcelsHandler,
	}
}

// RegisterRoutes attaches the API routes to the Echo instance.
func RegisterRoutes(e *echo.Echo, s *Server) {
	api := e.Group("/api/v1")
	api.PATCH("/parcels/:parcelId/status", s.UpdateParcelStatus)
	api.GET("/parcels/:parcelId", s.GetParcel)
	api.GET("/couriers/:courierId/parcels", s.GetCourierParcels)
}

// Error is the JSON body returned for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPoint carries coordinates in request and response bodies.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address carries a postal address in request and response bodies.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// UpdateParcelStatusRequest is the body of the status update endpoint.
// Location, address and notes are optional.
type UpdateParcelStatusRequest struct {
	StatusDefinitionID string    `json:"statusDefinitionId"`
	Location           *GeoPoint `json:"location,omitempty"`
	Address            *Address  `json:"address,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
}

// Parcel is the response body describing a parcel's current state.
type Parcel struct {
	ID             string         `json:"id"`
	TrackingNumber string         `json:"trackingNumber"`
	SenderID       string         `json:"senderId"`
	RecipientID    string         `json:"recipientId"`
	CourierID      *string        `json:"courierId,omitempty"`
	Status         string         `json:"status"`
	Notes          *string        `json:"notes,omitempty"`
	Location       *GeoPoint      `json:"location,omitempty"`
	Destination    Address        `json:"destination"`
	SubmittedAt    time.Time      `json:"submittedAt"`
	DeliveredAt    *time.Time     `json:"deliveredAt,omitempty"`
	History        []HistoryEntry `json:"history,omitempty"`
}

// HistoryEntry is one audit trail item in a parcel response.
type HistoryEntry struct {
	Status     string    `json:"status"`
	Location   *GeoPoint `json:"location,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// CourierParcel is one item of a courier workload listing.
type CourierParcel struct {
	ID             string     `json:"id"`
	TrackingNumber string     `json:"trackingNumber"`
	Status         string     `json:"status"`
	Location       *GeoPoint  `json:"location,omitempty"`
	SubmittedAt    time.Time  `json:"submittedAt"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
}

// UpdateParcelStatus handles PATCH /api/v1/parcels/{parcelId}/status.
func (s *Server) UpdateParcelStatus(ctx echo.Context) error {
	requester, err := requesterFromHeaders(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	parcelID, err := uuidFromParam(ctx, "parcelId")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request UpdateParcelStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	statusDefinitionID, err := parseUUID("statusDefinitionId", request.StatusDefinitionID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var location *kernel.GeoPoint
	if request.Location != nil {
		point, pointErr := kernel.NewGeoPoint(request.Location.Latitude, request.Location.Longitude)
		if pointErr != nil {
			return errorResponse(ctx, pointErr)
		}
		location = &point
	}

	var address *kernel.Address
	if request.Address != nil {
		addr := kernel.NewAddress(
			request.Address.Street,
			request.Address.City,
			request.Address.ZipCode,
			request.Address.Country,
		)
		address = &addr
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(
		parcelID, requester, statusDefinitionID, location, address, request.Notes)
	if err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := s.updateParcelStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelFromAggregate(updated))
}

// GetParcel handles GET /api/v1/parcels/{parcelId}.
func (s *Server) GetParcel(ctx echo.Context) error {
	requester, err := requesterFromHeaders(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	parcelID, err := uuidFromParam(ctx, "parcelId")
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetParcelQuery(parcelID, requester)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.getParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelFromQueryResponse(result))
}

// GetCourierParcels handles GET /api/v1/couriers/{courierId}/parcels.
// The optional scope parameter is one of "active", "delivered" or "all" and
// defaults to "active".
func (s *Server) GetCourierParcels(ctx echo.Context) error {
	requester, err := requesterFromHeaders(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	courierID, err := uuidFromParam(ctx, "courierId")
	if err != nil {
		return errorResponse(ctx, err)
	}

	scope, err := queries.ScopeFromName(ctx.QueryParam("scope"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetCourierParcelsQuery(courierID, requester, scope)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.getCourierParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]CourierParcel, len(result))
	for i, item := range result {
		response[i] = CourierParcel{
			ID:             item.ID.String(),
			TrackingNumber: item.TrackingNumber,
			Status:         item.Status,
			Location:       geoPointFromKernel(item.Location),
			SubmittedAt:    item.SubmittedAt,
			DeliveredAt:    item.DeliveredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// requesterFromHeaders derives the acting identity from the gateway headers.
func requesterFromHeaders(ctx echo.Context) (actor.Actor, error) {
	id, err := parseUUID(HeaderActorID, ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return actor.Actor{}, err
	}

	role, err := actor.RoleFromName(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(id, role)
}

func uuidFromParam(ctx echo.Context, name string) (kernel.UUID, error) {
	return parseUUID(name, ctx.Param(name))
}

func parseUUID(name, value string) (kernel.UUID, error) {
	if value == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}

	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	return id, nil
}

// errorResponse maps domain errors onto HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrAccessDenied):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func parcelFromAggregate(p *parcel.Parcel) Parcel {
	var courierID *string
	if p.Courier() != nil {
		id := p.Courier().String()
		courierID = &id
	}

	return Parcel{
		ID:             p.ID().String(),
		TrackingNumber: p.TrackingNumber(),
		SenderID:       p.Sender().String(),
		RecipientID:    p.Recipient().String(),
		CourierID:      courierID,
		Status:         p.Status().String(),
		Notes:          p.Notes(),
		Location:       geoPointFromKernel(p.Location()),
		Destination:    addressFromKernel(p.Destination()),
		SubmittedAt:    p.SubmittedAt(),
		DeliveredAt:    p.DeliveredAt(),
	}
}

func parcelFromQueryResponse(result *queries.GetParcelQueryResponse) Parcel {
	var courierID *string
	if result.CourierID != nil {
		id := result.CourierID.String()
		courierID = &id
	}

	history := make([]HistoryEntry, len(result.History))
	for i, entry := range result.History {
		history[i] = HistoryEntry{
			Status:     entry.Status,
			Location:   geoPointFromKernel(entry.Location),
			Notes:      entry.Notes,
			RecordedAt: entry.RecordedAt,
		}
	}

	return Parcel{
		ID:             result.ID.String(),
		TrackingNumber: result.TrackingNumber,
		SenderID:       result.SenderID.String(),
		RecipientID:    result.RecipientID.String(),
		CourierID:      courierID,
		Status:         result.Status,
		Notes:          result.Notes,
		Location:       geoPointFromKernel(result.Location),
		Destination:    addressFromKernel(result.Destination),
		SubmittedAt:    result.SubmittedAt,
		DeliveredAt:    result.DeliveredAt,
		History:        history,
	}
}

func geoPointFromKernel(point *kernel.GeoPoint) *GeoPoint {
	if point == nil {
		return nil
	}
	return &GeoPoint{Latitude: point.Latitude(), Longitude: point.Longitude()}
}

func addressFromKernel(address kernel.Address) Address {
	return Address{
		Street:  address.Street(),
		City:    address.City(),
		ZipCode: address.ZipCode(),
		Country: address.Country(),
	}
}
