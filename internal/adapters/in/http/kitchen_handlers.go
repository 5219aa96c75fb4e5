package http

import (
	"net/http"
	"time"

	"checkcore/internal/core/application/usecases/commands"
	"checkcore/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// BumpTicket handles POST /api/v1/tickets/:ticketId/bump.
func (s *Server) BumpTicket(ctx echo.Context) error {
	ticketID, err := pathUUID(ctx, "ticketId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req BumpRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewBumpTicketCommand(ticketID, req.EmployeeID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.BumpTicket.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetStationTickets handles GET /api/v1/kds-devices/:deviceId/tickets.
func (s *Server) GetStationTickets(ctx echo.Context) error {
	deviceID, err := pathUUID(ctx, "deviceId")
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetStationTicketsQuery(deviceID)
	if err != nil {
		return s.fail(ctx, err)
	}

	tickets, err := s.handlers.GetStationTickets.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]StationTicketResponse, len(tickets))
	for i, t := range tickets {
		items := make([]StationTicketItemResponse, len(t.Items))
		for j, item := range t.Items {
			items[j] = StationTicketItemResponse{
				CheckItemID: item.CheckItemID,
				Name:        item.Name,
				Quantity:    item.Quantity.String(),
				Voided:      item.Voided,
				IsReady:     item.IsReady,
			}
		}
		response[i] = StationTicketResponse{
			ID:          t.ID,
			CheckID:     t.CheckID,
			CheckNumber: t.CheckNumber,
			StationType: t.StationType,
			Status:      t.Status,
			Paid:        t.Paid,
			CreatedAt:   t.CreatedAt,
			Items:       items,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// AcquireCheckLock handles PUT /api/v1/checks/:checkId/lock.
func (s *Server) AcquireCheckLock(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req LockRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAcquireCheckLockCommand(checkID, req.WorkstationID, req.EmployeeID,
		time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		return s.fail(ctx, err)
	}
	lease, err := s.handlers.AcquireCheckLock.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, LockResponse{
		CheckID:       lease.CheckID(),
		WorkstationID: lease.WorkstationID(),
		ExpiresAt:     lease.ExpiresAt(),
	})
}

// ReleaseCheckLock handles DELETE /api/v1/checks/:checkId/lock?workstationId=...
func (s *Server) ReleaseCheckLock(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReleaseCheckLockCommand(checkID, ctx.QueryParam("workstationId"))
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.ReleaseCheckLock.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
