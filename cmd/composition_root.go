package cmd

import (
	"errors"

	httpadapter "checkcore/internal/adapters/in/http"
	"checkcore/internal/adapters/out/postgres"
	"checkcore/internal/adapters/out/postgres/auditrepo"
	"checkcore/internal/adapters/out/postgres/catalogrepo"
	"checkcore/internal/adapters/out/postgres/employeerepo"
	"checkcore/internal/adapters/out/redisstream"
	"checkcore/internal/core/application/usecases/commands"
	"checkcore/internal/core/application/usecases/queries"
	"checkcore/internal/jobs"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot owns the process-wide connections and builds every
// handler from them. Connections are opened by the caller and released by Close.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	redisClient *redis.Client
	logger      *zap.Logger
	uowFactory  *postgres.GormUnitOfWorkFactory
	deps        commands.Collaborators
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *CompositionRoot {
	return &CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		redisClient: redisClient,
		logger:      logger,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		deps: commands.Collaborators{
			Routing:      catalogrepo.NewGormRoutingResolver(gormDB),
			Menu:         catalogrepo.NewGormMenuCatalog(gormDB),
			Discounts:    catalogrepo.NewGormDiscountCatalog(gormDB),
			Notifier:     redisstream.NewNotifier(redisClient, config.RedisStreamPrefix, config.RedisStreamMaxLen),
			Audit:        auditrepo.NewGormAuditSink(gormDB),
			Availability: catalogrepo.NewGormItemAvailability(gormDB),
			Managers:     employeerepo.NewGormManagerAuthorizer(gormDB),
			BusinessDays: catalogrepo.NewGormBusinessDateProvider(gormDB),
			Logger:       logger.With(zap.String("component", "commands")),
		},
	}
}

// Close releases the database pool and the Redis client.
func (c *CompositionRoot) Close() error {
	var errList []error
	if sqlDB, err := c.gormDB.DB(); err != nil {
		errList = append(errList, err)
	} else if err = sqlDB.Close(); err != nil {
		errList = append(errList, err)
	}
	if err := c.redisClient.Close(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) checkUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) kitchenUoWFactory() commands.KitchenUoWFactory {
	return FuncKitchenUoWFactory(func() commands.KitchenUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) checkLockUoWFactory() commands.CheckLockUoWFactory {
	return FuncCheckLockUoWFactory(func() commands.CheckLockUoW {
		return c.uowFactory.Create()
	})
}

// HTTPHandlers wires every use case the HTTP adapter exposes.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	uow := c.checkUoWFactory()
	return httpadapter.Handlers{
		OpenCheck:          commands.NewOpenCheckCommandHandler(uow, c.deps),
		AddItem:            commands.NewAddItemCommandHandler(uow, c.deps),
		ModifyItem:         commands.NewModifyItemCommandHandler(uow, c.deps),
		OverridePrice:      commands.NewOverridePriceCommandHandler(uow, c.deps),
		VoidItem:           commands.NewVoidItemCommandHandler(uow, c.deps),
		ApplyItemDiscount:  commands.NewApplyItemDiscountCommandHandler(uow, c.deps),
		ApplyCheckDiscount: commands.NewApplyCheckDiscountCommandHandler(uow, c.deps),
		SendCheck:          commands.NewSendCheckCommandHandler(uow, c.deps),
		ApplyPayment:       commands.NewApplyPaymentCommandHandler(uow, c.deps),
		SplitCheck:         commands.NewSplitCheckCommandHandler(uow, c.deps),
		MergeChecks:        commands.NewMergeChecksCommandHandler(uow, c.deps),
		TransferCheck:      commands.NewTransferCheckCommandHandler(uow, c.deps),
		ReopenCheck:        commands.NewReopenCheckCommandHandler(uow, c.deps),
		CancelCheck:        commands.NewCancelCheckCommandHandler(uow, c.deps),
		AcquireCheckLock:   commands.NewAcquireCheckLockCommandHandler(c.checkLockUoWFactory(), c.deps),
		ReleaseCheckLock:   commands.NewReleaseCheckLockCommandHandler(c.checkLockUoWFactory()),
		BumpTicket:         commands.NewBumpTicketCommandHandler(c.kitchenUoWFactory(), c.deps),

		GetCheck:          queries.NewGetCheckQueryHandler(c.gormDB),
		GetOpenChecks:     queries.NewGetOpenChecksQueryHandler(c.gormDB),
		GetStationTickets: queries.NewGetStationTicketsQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) HTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(c.HTTPHandlers(), c.logger)
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	purge := commands.NewPurgeExpiredCheckLocksCommandHandler(c.checkLockUoWFactory(), c.deps)
	return jobs.NewJobManager(purge, c.config.LockSweepSchedule, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncKitchenUoWFactory func() commands.KitchenUoW

func (f FuncKitchenUoWFactory) Create() commands.KitchenUoW {
	return f()
}

type FuncCheckLockUoWFactory func() commands.CheckLockUoW

func (f FuncCheckLockUoWFactory) Create() commands.CheckLockUoW {
	return f()
}
