package http

import (
	"net/http"

	"checkcore/internal/core/application/usecases/commands"
	"checkcore/internal/core/application/usecases/queries"
	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/payment"
	"checkcore/internal/core/domain/services"
	"checkcore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func toModifiers(in []ModifierRequest) ([]check.Modifier, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]check.Modifier, 0, len(in))
	for _, m := range in {
		modifier, err := check.NewModifier(m.Name, m.PriceDelta)
		if err != nil {
			return nil, err
		}
		out = append(out, modifier)
	}
	return out, nil
}

// OpenCheck handles POST /api/v1/checks.
func (s *Server) OpenCheck(ctx echo.Context) error {
	var req OpenCheckRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewOpenCheckCommand(req.RvcID, req.PropertyID, req.EmployeeID,
		check.OrderType(req.OrderType), req.TableNumber, req.GuestCount, req.CustomerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.OpenCheck.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toCheckResponse(result))
}

// GetCheck handles GET /api/v1/checks/:checkId.
func (s *Server) GetCheck(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetCheckQuery(checkID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetCheck.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toCheckViewResponse(view))
}

// GetOpenChecks handles GET /api/v1/rvcs/:rvcId/checks/open.
func (s *Server) GetOpenChecks(ctx echo.Context) error {
	rvcID, err := pathUUID(ctx, "rvcId")
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOpenChecksQuery(rvcID)
	if err != nil {
		return s.fail(ctx, err)
	}

	checks, err := s.handlers.GetOpenChecks.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]OpenCheckSummaryResponse, len(checks))
	for i, c := range checks {
		response[i] = OpenCheckSummaryResponse{
			ID:          c.ID,
			CheckNumber: c.CheckNumber,
			TableNumber: c.TableNumber,
			GuestCount:  c.GuestCount,
			EmployeeID:  c.EmployeeID,
			Total:       money(c.Total),
			Version:     c.Version,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// AddItem handles POST /api/v1/checks/:checkId/items. Quantity defaults to 1.
func (s *Server) AddItem(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req AddItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	modifiers, err := toModifiers(req.Modifiers)
	if err != nil {
		return s.fail(ctx, err)
	}
	quantity := decimal.NewFromInt(1)
	if req.Quantity.Valid {
		quantity = req.Quantity.Decimal
	}
	var linked *check.LinkedEntityRef
	if req.LinkedEntity != nil {
		ref, refErr := check.NewLinkedEntityRef(check.LinkedEntityKind(req.LinkedEntity.Kind), req.LinkedEntity.ID)
		if refErr != nil {
			return s.fail(ctx, refErr)
		}
		linked = &ref
	}

	cmd, err := commands.NewAddItemCommand(checkID, req.ExpectedVersion, req.EmployeeID,
		req.MenuItemID, req.Name, req.UnitPrice, quantity, modifiers, linked)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.AddItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, AddItemResponse{
		CheckResponse: toCheckResponse(result.CheckResult),
		ItemID:        result.ItemID,
	})
}

// ModifyItem handles PATCH /api/v1/checks/:checkId/items/:itemId.
func (s *Server) ModifyItem(ctx echo.Context) error {
	checkID, itemID, err := checkAndItem(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req ModifyItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	modifiers, err := toModifiers(req.Modifiers)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewModifyItemCommand(checkID, req.ExpectedVersion, req.EmployeeID, itemID, req.Quantity, modifiers)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCheck(ctx, func() (commands.CheckResult, error) {
		return s.handlers.ModifyItem.Handle(ctx.Request().Context(), cmd)
	})
}

// OverridePrice handles PUT /api/v1/checks/:checkId/items/:itemId/price.
func (s *Server) OverridePrice(ctx echo.Context) error {
	checkID, itemID, err := checkAndItem(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req OverridePriceRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewOverridePriceCommand(checkID, req.ExpectedVersion, req.EmployeeID,
		itemID, req.UnitPrice, req.ManagerPIN)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCheck(ctx, func() (commands.CheckResult, error) {
		return s.handlers.OverridePrice.Handle(ctx.Request().Context(), cmd)
	})
}

// VoidItem handles POST /api/v1/checks/:checkId/items/:itemId/void.
func (s *Server) VoidItem(ctx echo.Context) error {
	checkID, itemID, err := checkAndItem(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req VoidItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewVoidItemCommand(checkID, req.ExpectedVersion, req.EmployeeID,
		itemID, req.Reason, req.ManagerPIN)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCheck(ctx, func() (commands.CheckResult, error) {
		return s.handlers.VoidItem.Handle(ctx.Request().Context(), cmd)
	})
}

// ApplyItemDiscount handles POST /api/v1/checks/:checkId/items/:itemId/discounts.
func (s *Server) ApplyItemDiscount(ctx echo.Context) error {
	checkID, itemID, err := checkAndItem(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req DiscountRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewApplyItemDiscountCommand(checkID, req.ExpectedVersion, req.EmployeeID,
		itemID, req.DiscountID, req.Amount, req.ManagerPIN)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCheck(ctx, func() (commands.CheckResult, error) {
		return s.handlers.ApplyItemDiscount.Handle(ctx.Request().Context(), cmd)
	})
}

// ApplyCheckDiscount handles POST /api/v1/checks/:checkId/discounts.
func (s *Server) ApplyCheckDiscount(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req DiscountRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewApplyCheckDiscountCommand(checkID, req.ExpectedVersion, req.EmployeeID,
		req.DiscountID, req.Amount, req.ManagerPIN)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCheck(ctx, func() (commands.CheckResult, error) {
		return s.handlers.ApplyCheckDiscount.Handle(ctx.Request().Context(), cmd)
	})
}

// SendCheck handles POST /api/v1/checks/:checkId/send.
func (s *Server) SendCheck(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req checkRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSendCheckCommand(checkID, req.ExpectedVersion, req.EmployeeID)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.handlers.SendCheck.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	ticketIDs := result.TicketIDs
	if ticketIDs == nil {
		ticketIDs = []kernel.UUID{}
	}
	return ctx.JSON(http.StatusOK, SendResponse{
		CheckResponse: toCheckResponse(result.CheckResult),
		RoundID:       result.RoundID,
		RoundNumber:   result.RoundNumber,
		TicketIDs:     ticketIDs,
	})
}

// ApplyPayment handles POST /api/v1/checks/:checkId/payments.
func (s *Server) ApplyPayment(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req PaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewApplyPaymentCommand(checkID, req.ExpectedVersion, req.EmployeeID,
		payment.TenderType(req.TenderType), req.Amount)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.handlers.ApplyPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, PaymentResponse{
		CheckResponse: toCheckResponse(result.CheckResult),
		PaymentID:     result.PaymentID,
		PaidAmount:    money(result.PaidAmount),
		ChangeDue:     money(result.ChangeDue),
		BalanceDue:    money(result.BalanceDue),
		Closed:        result.Closed,
	})
}

// SplitCheck handles POST /api/v1/checks/:checkId/split. Without a
// targetCheckId a new check is opened for the split-off items.
func (s *Server) SplitCheck(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req SplitRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	plan := services.SplitPlan{Move: req.Move}
	for _, share := range req.Share {
		plan.Share = append(plan.Share, services.ShareRequest{ItemID: share.ItemID, Ratio: share.Ratio})
	}
	cmd, err := commands.NewSplitCheckCommand(checkID, req.ExpectedVersion, req.EmployeeID, req.TargetCheckID, plan)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.SplitCheck.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, SplitResponse{
		Source: toCheckResponse(result.Source),
		Target: toCheckResponse(result.Target),
	})
}

// MergeChecks handles POST /api/v1/checks/:checkId/merge; :checkId is the target.
func (s *Server) MergeChecks(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req MergeRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMergeChecksCommand(checkID, req.ExpectedVersion, req.EmployeeID, req.SourceCheckIDs)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCheck(ctx, func() (commands.CheckResult, error) {
		return s.handlers.MergeChecks.Handle(ctx.Request().Context(), cmd)
	})
}

// TransferCheck handles POST /api/v1/checks/:checkId/transfer.
func (s *Server) TransferCheck(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req TransferRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewTransferCheckCommand(checkID, req.ExpectedVersion, req.EmployeeID, req.ToEmployeeID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCheck(ctx, func() (commands.CheckResult, error) {
		return s.handlers.TransferCheck.Handle(ctx.Request().Context(), cmd)
	})
}

// ReopenCheck handles POST /api/v1/checks/:checkId/reopen.
func (s *Server) ReopenCheck(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req checkRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReopenCheckCommand(checkID, req.ExpectedVersion, req.EmployeeID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCheck(ctx, func() (commands.CheckResult, error) {
		return s.handlers.ReopenCheck.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelCheck handles POST /api/v1/checks/:checkId/cancel.
func (s *Server) CancelCheck(ctx echo.Context) error {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req checkRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelCheckCommand(checkID, req.ExpectedVersion, req.EmployeeID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCheck(ctx, func() (commands.CheckResult, error) {
		return s.handlers.CancelCheck.Handle(ctx.Request().Context(), cmd)
	})
}

func checkAndItem(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	checkID, err := pathUUID(ctx, "checkId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return checkID, itemID, nil
}

func (s *Server) respondCheck(ctx echo.Context, run func() (commands.CheckResult, error)) error {
	result, err := run()
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toCheckResponse(result))
}
