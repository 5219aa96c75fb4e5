// Package auditrepo appends audit entries to audit_logs.
package auditrepo

import (
	"time"

	"github.com/google/uuid"
)

type AuditLogDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RvcID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	EmployeeID        uuid.UUID      `gorm:"type:uuid;not null"`
	Action            string         `gorm:"type:varchar(32);not null;index"`
	TargetType        string         `gorm:"type:varchar(32);not null"`
	TargetID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Details           map[string]any `gorm:"serializer:json"`
	ReasonCode        string         `gorm:"type:varchar(255)"`
	ManagerApprovalID *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt         time.Time      `gorm:"not null"`
}

func (AuditLogDTO) TableName() string {
	return "audit_logs"
}
