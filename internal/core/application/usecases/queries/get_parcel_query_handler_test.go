package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tracker/internal/adapters/out/postgres/historyrepo"
	"tracker/internal/adapters/out/postgres/parcelrepo"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/errs"
)

// mockAggregateTracker implements the tracker interface for test purposes.
// It's a no-op implementation since we don't need aggregate tracking in query tests.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
	// No-op for query tests
}

type GetParcelQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetParcelQueryHandler

	sender    kernel.UUID
	recipient kernel.UUID
	courier   kernel.UUID
}

func (suite *GetParcelQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&parcelrepo.ParcelDTO{}, &historyrepo.HistoryEntryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetParcelQueryHandler(db)
}

func (suite *GetParcelQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetParcelQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels, parcel_history CASCADE").Error
	suite.Require().NoError(err)

	suite.sender = kernel.NewUUID()
	suite.recipient = kernel.NewUUID()
	suite.courier = kernel.NewUUID()
}

func (suite *GetParcelQueryHandlerTestSuite) createParcel(trackingNumber string) *parcel.Parcel {
	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		trackingNumber,
		suite.sender,
		suite.recipient,
		kernel.NewAddress("Nowy Swiat 1", "Warsaw", "00-001", "Poland"),
		time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(p.AssignCourier(suite.courier))

	repo := parcelrepo.NewGormParcelRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), p))
	return p
}

func (suite *GetParcelQueryHandlerTestSuite) appendHistory(
	p *parcel.Parcel,
	status parcel.Status,
	recordedAt time.Time,
) {
	entry, err := parcel.NewHistoryEntry(
		kernel.NewUUID(), p.ID(), status, nil, nil, recordedAt)
	suite.Require().NoError(err)

	repo := historyrepo.NewGormHistoryRepository(suite.db)
	suite.Require().NoError(repo.Add(context.Background(), entry))
}

func (suite *GetParcelQueryHandlerTestSuite) TestHandle_SenderSeesParcelWithHistory() {
	p := suite.createParcel("PKG-4000")
	suite.appendHistory(p, parcel.StatusSent, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	suite.appendHistory(p, parcel.StatusInDelivery, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC))

	query, err := queries.NewGetParcelQuery(p.ID(),
		actor.Actor{ID: suite.sender, Role: actor.RoleUser})
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(p.ID(), result.ID)
	suite.Equal("PKG-4000", result.TrackingNumber)
	suite.Equal(suite.sender, result.SenderID)
	suite.Equal(suite.recipient, result.RecipientID)
	suite.Require().NotNil(result.CourierID)
	suite.Equal(suite.courier, *result.CourierID)
	suite.Equal("Sent", result.Status)
	suite.Nil(result.DeliveredAt)

	suite.Require().Len(result.History, 2)
	suite.Equal("Sent", result.History[0].Status)
	suite.Equal("In Delivery", result.History[1].Status)
}

func (suite *GetParcelQueryHandlerTestSuite) TestHandle_DeliveredParcelMapsLocationAndTimestamp() {
	deliveredAt := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	location, err := kernel.NewGeoPoint(52.2297, 21.0122)
	suite.Require().NoError(err)
	notes := "left at reception"

	p, err := parcel.RestoreParcel(
		kernel.NewUUID(), "PKG-4001", suite.sender, suite.recipient, &suite.courier,
		parcel.StatusDelivered, &notes, &location,
		kernel.NewAddress("Nowy Swiat 1", "Warsaw", "00-001", "Poland"),
		time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), &deliveredAt, 0)
	suite.Require().NoError(err)

	repo := parcelrepo.NewGormParcelRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), p))

	query, err := queries.NewGetParcelQuery(p.ID(),
		actor.Actor{ID: suite.recipient, Role: actor.RoleUser})
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("Delivered", result.Status)
	suite.Require().NotNil(result.DeliveredAt)
	suite.True(deliveredAt.Equal(*result.DeliveredAt))
	suite.Require().NotNil(result.Location)
	suite.True(kernel.GeoPointsEqual(&location, result.Location))
	suite.Require().NotNil(result.Notes)
	suite.Equal(notes, *result.Notes)
}

func (suite *GetParcelQueryHandlerTestSuite) TestHandle_StrangerIsDenied() {
	p := suite.createParcel("PKG-4002")

	query, err := queries.NewGetParcelQuery(p.ID(),
		actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleUser})
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)
	suite.Nil(result)
}

func (suite *GetParcelQueryHandlerTestSuite) TestHandle_AdminSeesAnyParcel() {
	p := suite.createParcel("PKG-4003")

	query, err := queries.NewGetParcelQuery(p.ID(),
		actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleAdmin})
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(p.ID(), result.ID)
}

func (suite *GetParcelQueryHandlerTestSuite) TestHandle_UnknownParcel_ReturnsNotFound() {
	query, err := queries.NewGetParcelQuery(kernel.NewUUID(),
		actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleAdmin})
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(result)
}

func (suite *GetParcelQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetParcelQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetParcelQuery constructor")
}

func TestGetParcelQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetParcelQueryHandlerTestSuite))
}
