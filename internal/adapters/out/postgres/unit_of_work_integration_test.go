package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "checkcore/internal/adapters/out/postgres"
	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kitchen"
	"checkcore/internal/core/ports"
	"checkcore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real
// PostgreSQL so numeric columns, uuid columns and upserts behave as in production.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a PostgreSQL container")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.AutoMigrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE check_items, check_discounts, checks, rounds, kds_ticket_items, kds_tickets, payments, check_locks").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.CheckRepository())
	suite.NotNil(uow1.TicketRepository())
	suite.NotNil(uow2.RoundRepository())
	suite.NotNil(uow2.PaymentRepository())
	suite.NotNil(uow2.CheckLockRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_SendCommitsAllWrites writes what a send writes: the check,
// its round and a ticket.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SendCommitsAllWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()
	c, round, ticket := suite.sentCheck()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CheckRepository().Add(ctx, c))
	suite.Require().NoError(uow.RoundRepository().Add(ctx, round))
	suite.Require().NoError(uow.TicketRepository().Add(ctx, ticket))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	loaded, err := reader.CheckRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.True(loaded.Items()[0].IsSent())
	suite.True(decimal.RequireFromString("12.50").Equal(loaded.Items()[0].UnitPrice()))

	count, err := reader.RoundRepository().CountByCheck(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(1, count)

	tickets, err := reader.TicketRepository().ListByCheck(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Len(tickets, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAllWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()
	c, round, ticket := suite.sentCheck()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CheckRepository().Add(ctx, c))
	suite.Require().NoError(uow.RoundRepository().Add(ctx, round))
	suite.Require().NoError(uow.TicketRepository().Add(ctx, ticket))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.CheckRepository().Get(ctx, c.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	count, err := reader.RoundRepository().CountByCheck(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Zero(count)

	_, err = reader.TicketRepository().Get(ctx, ticket.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUnitOfWork_ConcurrentWritersConflict loads one check in two units of
// work; the second writer must see a version conflict.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentWritersConflict() {
	ctx := context.Background()
	c, _, _ := suite.sentCheck()
	suite.Require().NoError(suite.factory.Create().CheckRepository().Add(ctx, c))

	first := suite.factory.Create()
	second := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))

	a, err := first.CheckRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)
	b, err := second.CheckRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(a.SeatTable("4", 2))
	suite.Require().NoError(first.CheckRepository().Update(ctx, a))
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(b.SeatTable("5", 3))
	err = second.CheckRepository().Update(ctx, b)
	suite.Require().ErrorIs(err, errs.ErrVersionConflict)
	suite.Require().NoError(second.Rollback(ctx))

	loaded, err := suite.factory.Create().CheckRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal("4", loaded.TableNumber())
	suite.Equal(1, loaded.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) sentCheck() (*check.Check, *kitchen.Round, *kitchen.Ticket) {
	return newSentCheck(suite.T())
}
