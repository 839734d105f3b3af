package cmd

import (
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   ports.CarrierRegistry
	publisher  ports.EventPublisher
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	registry ports.CarrierRegistry,
	publisher ports.EventPublisher,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		publisher:  publisher,
	}
}

func (c *CompositionRoot) CreatePlaceDealerOrderCommandHandler() commands.PlaceDealerOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceDealerOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUpdateProductionStatusCommandHandler() commands.UpdateProductionStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateProductionStatusCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.registry)
}

func (c *CompositionRoot) CreateUpdateShipmentStatusCommandHandler() commands.UpdateShipmentStatusCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShipmentStatusCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelShipmentCommandHandler(f, c.registry, c.publisher)
}

func (c *CompositionRoot) CreateAddCreditCommandHandler() commands.AddCreditCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCreditCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateCreditLimitCommandHandler() commands.UpdateCreditLimitCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCreditLimitCommandHandler(f)
}

func (c *CompositionRoot) CreateGetBalanceSummaryQueryHandler() queries.GetBalanceSummaryQueryHandler {
	return queries.NewGetBalanceSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCheckCreditQueryHandler() queries.CheckCreditQueryHandler {
	return queries.NewCheckCreditQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDelayedShipmentsQueryHandler() queries.GetDelayedShipmentsQueryHandler {
	return queries.NewGetDelayedShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveShipmentsQueryHandler() queries.GetActiveShipmentsQueryHandler {
	return queries.NewGetActiveShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackShipmentQueryHandler() queries.TrackShipmentQueryHandler {
	// A fresh unit of work without an open transaction reads through the
	// shared connection pool.
	shipments := c.uowFactory.Create().ShipmentRepository()
	return queries.NewTrackShipmentQueryHandler(shipments, c.registry)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
