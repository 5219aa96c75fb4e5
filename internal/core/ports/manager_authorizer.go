package ports

import (
	"context"

	"checkcore/internal/core/domain/model/kernel"
)

// Privilege names an action that needs manager approval.
type Privilege string

const (
	PrivilegeVoidSentItem    Privilege = "void_sent_item"
	PrivilegePriceOverride   Privilege = "price_override"
	PrivilegeApproveDiscount Privilege = "approve_discount"
)

// Approval identifies the manager who approved a gated action.
type Approval struct {
	EmployeeID kernel.UUID
}

// ManagerAuthorizer verifies a manager PIN for a privilege. It returns an
// errs.ErrNotAuthorized error for an unknown PIN or a missing privilege.
type ManagerAuthorizer interface {
	Authorize(ctx context.Context, pin string, privilege Privilege) (Approval, error)
}
