package ports

import (
	"context"

	"checkcore/internal/core/domain/model/kernel"
)

// AuditEntry records who did what to which check.
type AuditEntry struct {
	RvcID             kernel.UUID
	EmployeeID        kernel.UUID
	Action            string
	TargetType        string
	TargetID          kernel.UUID
	Details           map[string]any
	ReasonCode        string
	ManagerApprovalID *kernel.UUID
}

// AuditSink writes audit entries. Failures never abort the audited operation.
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry) error
}
