// Package lockrepo persists advisory check leases, one row per check.
package lockrepo

import (
	"time"

	"checkcore/internal/core/domain/model/checklock"
	"checkcore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type LeaseDTO struct {
	CheckID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkstationID string    `gorm:"type:varchar(64);not null"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt     time.Time `gorm:"not null;index"`
}

func (LeaseDTO) TableName() string {
	return "check_locks"
}

func fromDomain(l *checklock.Lease) LeaseDTO {
	return LeaseDTO{
		CheckID:       l.CheckID().Bytes(),
		WorkstationID: l.WorkstationID(),
		EmployeeID:    l.EmployeeID().Bytes(),
		ExpiresAt:     l.ExpiresAt(),
	}
}

func toDomain(dto LeaseDTO) (*checklock.Lease, error) {
	checkID, err := kernel.UUIDFromBytes(dto.CheckID[:])
	if err != nil {
		return nil, err
	}
	employeeID, err := kernel.UUIDFromBytes(dto.EmployeeID[:])
	if err != nil {
		return nil, err
	}
	return checklock.RestoreLease(checkID, dto.WorkstationID, employeeID, dto.ExpiresAt)
}
