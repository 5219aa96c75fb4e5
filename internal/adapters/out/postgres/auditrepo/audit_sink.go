package auditrepo

import (
	"context"
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/ports"

	"gorm.io/gorm"
)

// GormAuditSink implements ports.AuditSink. Entries are written outside the
// command's transaction so a failed audit never rolls back a check.
type GormAuditSink struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormAuditSink(db *gorm.DB) *GormAuditSink {
	return &GormAuditSink{db: db, now: time.Now}
}

func (s *GormAuditSink) Record(ctx context.Context, entry ports.AuditEntry) error {
	dto := AuditLogDTO{
		ID:                kernel.NewUUID().Bytes(),
		RvcID:             entry.RvcID.Bytes(),
		EmployeeID:        entry.EmployeeID.Bytes(),
		Action:            entry.Action,
		TargetType:        entry.TargetType,
		TargetID:          entry.TargetID.Bytes(),
		Details:           entry.Details,
		ReasonCode:        entry.ReasonCode,
		ManagerApprovalID: kernel.OptionalBytes(entry.ManagerApprovalID),
		CreatedAt:         s.now().UTC(),
	}
	return s.db.WithContext(ctx).Create(&dto).Error
}
