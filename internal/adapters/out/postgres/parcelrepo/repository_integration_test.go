package parcelrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tracker/internal/adapters/out/postgres/parcelrepo"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ParcelRepositoryIntegrationTestSuite provides integration tests for ParcelRepository
// using PostgreSQL containers to verify database persistence behavior.
type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *parcelrepo.GormParcelRepository
	tracker    *MockAggregateTracker
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&parcelrepo.ParcelDTO{}))
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE parcels").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = parcelrepo.NewGormParcelRepository(suite.db, suite.tracker)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// createTestParcel creates a freshly submitted parcel with default values.
func (suite *ParcelRepositoryIntegrationTestSuite) createTestParcel(trackingNumber string) *parcel.Parcel {
	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		trackingNumber,
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewAddress("Nowy Swiat 1", "Warsaw", "00-001", "Poland"),
		time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)
	return p
}

// createDeliveredParcel creates a delivered parcel, optionally without coordinates.
func (suite *ParcelRepositoryIntegrationTestSuite) createDeliveredParcel(
	trackingNumber string,
	deliveredAt time.Time,
	location *kernel.GeoPoint,
) *parcel.Parcel {
	courierID := kernel.NewUUID()
	p, err := parcel.RestoreParcel(
		kernel.NewUUID(), trackingNumber, kernel.NewUUID(), kernel.NewUUID(), &courierID,
		parcel.StatusDelivered, nil, location,
		kernel.NewAddress("Nowy Swiat 1", "Warsaw", "00-001", "Poland"),
		time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), &deliveredAt, 0)
	suite.Require().NoError(err)
	return p
}

func (suite *ParcelRepositoryIntegrationTestSuite) assertParcelCount(expected int) {
	var count int64
	err := suite.db.Model(&parcelrepo.ParcelDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_ValidParcel_Success() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("PKG-6000")
	suite.tracker.On("TrackAggregate", testParcel.ID(), testParcel).Once()

	err := suite.repository.Add(ctx, testParcel)
	suite.Require().NoError(err)

	suite.assertParcelCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingNumber_Fails() {
	ctx := context.Background()

	first := suite.createTestParcel("PKG-6001")
	second := suite.createTestParcel("PKG-6001")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()

	suite.Require().NoError(suite.repository.Add(ctx, first))
	err := suite.repository.Add(ctx, second)

	suite.Require().Error(err)
	suite.assertParcelCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_ExistingParcel_RoundTripsAllFields() {
	ctx := context.Background()

	location, err := kernel.NewGeoPoint(52.2297, 21.0122)
	suite.Require().NoError(err)
	deliveredAt := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	original := suite.createDeliveredParcel("PKG-6002", deliveredAt, &location)

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal("PKG-6002", retrieved.TrackingNumber())
	suite.Equal(original.Sender(), retrieved.Sender())
	suite.Equal(original.Recipient(), retrieved.Recipient())
	suite.Require().NotNil(retrieved.Courier())
	suite.Equal(*original.Courier(), *retrieved.Courier())
	suite.Equal(parcel.StatusDelivered, retrieved.Status())
	suite.Require().NotNil(retrieved.Location())
	suite.True(kernel.GeoPointsEqual(&location, retrieved.Location()))
	suite.Require().NotNil(retrieved.DeliveredAt())
	suite.True(deliveredAt.Equal(*retrieved.DeliveredAt()))
	suite.Equal(original.Destination(), retrieved.Destination())
	suite.Equal(1, retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_NonExistentParcel_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetByTrackingNumber_ExistingParcel_ReturnsParcel() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("PKG-6003")
	suite.tracker.On("TrackAggregate", testParcel.ID(), testParcel).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	retrieved, err := suite.repository.GetByTrackingNumber(ctx, "PKG-6003")
	suite.Require().NoError(err)
	suite.Equal(testParcel.ID(), retrieved.ID())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetByTrackingNumber_Unknown_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetByTrackingNumber(ctx, "PKG-9999")

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("PKG-6004")
	suite.tracker.On("TrackAggregate", testParcel.ID(), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	loaded, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.Equal(1, loaded.Version())

	notes := "picked up"
	err = loaded.Apply(parcel.TransitionOutcome{
		Status: parcel.StatusInDelivery,
		Notes:  &notes,
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StatusInDelivery, reloaded.Status())
	suite.Require().NotNil(reloaded.Notes())
	suite.Equal(notes, *reloaded.Notes())
	suite.Equal(2, reloaded.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflictError() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("PKG-6005")
	suite.tracker.On("TrackAggregate", testParcel.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	// two actors load the same version
	first, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)

	err = first.Apply(parcel.TransitionOutcome{Status: parcel.StatusInDelivery})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	err = second.Apply(parcel.TransitionOutcome{Status: parcel.StatusInDelivery})
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_NonExistentParcel_ReturnsConflictError() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("PKG-6006")

	err := suite.repository.Update(ctx, testParcel)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetDeliveredWithoutLocation_ReturnsOldestFirst() {
	ctx := context.Background()

	location, err := kernel.NewGeoPoint(52.2297, 21.0122)
	suite.Require().NoError(err)

	older := suite.createDeliveredParcel("PKG-6007",
		time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC), nil)
	newer := suite.createDeliveredParcel("PKG-6008",
		time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC), nil)
	located := suite.createDeliveredParcel("PKG-6009",
		time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC), &location)
	active := suite.createTestParcel("PKG-6010")

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)
	for _, p := range []*parcel.Parcel{newer, older, located, active} {
		suite.Require().NoError(suite.repository.Add(ctx, p))
	}

	result, err := suite.repository.GetDeliveredWithoutLocation(ctx, 10)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal(older.ID(), result[0].ID())
	suite.Equal(newer.ID(), result[1].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetDeliveredWithoutLocation_RespectsLimit() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)
	for i, day := range []int{5, 6, 7} {
		p := suite.createDeliveredParcel(
			fmt.Sprintf("PKG-601%d", i+1),
			time.Date(2025, 6, day, 10, 0, 0, 0, time.UTC), nil)
		suite.Require().NoError(suite.repository.Add(ctx, p))
	}

	result, err := suite.repository.GetDeliveredWithoutLocation(ctx, 2)
	suite.Require().NoError(err)
	suite.Len(result, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
