package cmd

import (
	"tracker/internal/adapters/out/geo"
	"tracker/internal/adapters/out/postgres"
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	geocoder   ports.Geocoder
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		geocoder:   geo.NewNominatimClient(config.GeocoderBaseURL, config.GeocoderTimeout),
	}
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() commands.UpdateParcelStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateParcelStatusCommandHandler(f, c.createTransitionEngine(), nil)
}

func (c *CompositionRoot) CreateBackfillLocationsCommandHandler() commands.BackfillLocationsCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBackfillLocationsCommandHandler(f, c.createTransitionEngine(), nil)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierParcelsQueryHandler() queries.GetCourierParcelsQueryHandler {
	return queries.NewGetCourierParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) createTransitionEngine() services.TransitionEngine {
	return services.NewTransitionEngine(c.geocoder, nil)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}
