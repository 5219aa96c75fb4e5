// Package http exposes check, kitchen and lock operations as JSON endpoints
// on echo. Handlers only translate: they build commands and queries, call the
// application layer and map its error taxonomy onto status codes.
package http

import (
	"context"
	"net/http"

	"checkcore/internal/core/application/usecases/commands"
	"checkcore/internal/core/application/usecases/queries"
	"checkcore/internal/core/domain/model/checklock"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler is any command or query handler that returns a result.
type Handler[C any, R any] interface {
	Handle(ctx context.Context, request C) (R, error)
}

// ActionHandler is a command handler without a result.
type ActionHandler[C any] interface {
	Handle(ctx context.Context, request C) error
}

// Handlers groups the application use cases the server dispatches to.
type Handlers struct {
	OpenCheck          Handler[commands.OpenCheckCommand, commands.CheckResult]
	AddItem            Handler[commands.AddItemCommand, commands.AddItemResult]
	ModifyItem         Handler[commands.ModifyItemCommand, commands.CheckResult]
	OverridePrice      Handler[commands.OverridePriceCommand, commands.CheckResult]
	VoidItem           Handler[commands.VoidItemCommand, commands.CheckResult]
	ApplyItemDiscount  Handler[commands.ApplyItemDiscountCommand, commands.CheckResult]
	ApplyCheckDiscount Handler[commands.ApplyCheckDiscountCommand, commands.CheckResult]
	SendCheck          Handler[commands.SendCheckCommand, commands.SendCheckResult]
	ApplyPayment       Handler[commands.ApplyPaymentCommand, commands.ApplyPaymentResult]
	SplitCheck         Handler[commands.SplitCheckCommand, commands.SplitCheckResult]
	MergeChecks        Handler[commands.MergeChecksCommand, commands.CheckResult]
	TransferCheck      Handler[commands.TransferCheckCommand, commands.CheckResult]
	ReopenCheck        Handler[commands.ReopenCheckCommand, commands.CheckResult]
	CancelCheck        Handler[commands.CancelCheckCommand, commands.CheckResult]
	AcquireCheckLock   Handler[commands.AcquireCheckLockCommand, *checklock.Lease]
	ReleaseCheckLock   ActionHandler[commands.ReleaseCheckLockCommand]
	BumpTicket         ActionHandler[commands.BumpTicketCommand]

	GetCheck          Handler[queries.GetCheckQuery, queries.GetCheckQueryResponse]
	GetOpenChecks     Handler[queries.GetOpenChecksQuery, []queries.GetOpenChecksQueryResponse]
	GetStationTickets Handler[queries.GetStationTicketsQuery, []queries.GetStationTicketsQueryResponse]
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With(zap.String("component", "http")),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/checks", s.OpenCheck)
	api.GET("/checks/:checkId", s.GetCheck)
	api.GET("/rvcs/:rvcId/checks/open", s.GetOpenChecks)

	api.POST("/checks/:checkId/items", s.AddItem)
	api.PATCH("/checks/:checkId/items/:itemId", s.ModifyItem)
	api.PUT("/checks/:checkId/items/:itemId/price", s.OverridePrice)
	api.POST("/checks/:checkId/items/:itemId/void", s.VoidItem)
	api.POST("/checks/:checkId/items/:itemId/discounts", s.ApplyItemDiscount)
	api.POST("/checks/:checkId/discounts", s.ApplyCheckDiscount)

	api.POST("/checks/:checkId/send", s.SendCheck)
	api.POST("/checks/:checkId/payments", s.ApplyPayment)
	api.POST("/checks/:checkId/split", s.SplitCheck)
	api.POST("/checks/:checkId/merge", s.MergeChecks)
	api.POST("/checks/:checkId/transfer", s.TransferCheck)
	api.POST("/checks/:checkId/reopen", s.ReopenCheck)
	api.POST("/checks/:checkId/cancel", s.CancelCheck)

	api.PUT("/checks/:checkId/lock", s.AcquireCheckLock)
	api.DELETE("/checks/:checkId/lock", s.ReleaseCheckLock)

	api.POST("/tickets/:ticketId/bump", s.BumpTicket)
	api.GET("/kds-devices/:deviceId/tickets", s.GetStationTickets)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
