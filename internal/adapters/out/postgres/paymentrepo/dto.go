// Package paymentrepo persists tenders applied to checks.
package paymentrepo

import (
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CheckID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenderType     string          `gorm:"type:varchar(16);not null"`
	TenderedAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaidAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ChangeDue      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status         string          `gorm:"type:varchar(16);not null"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null"`
	BusinessDate   string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt      time.Time       `gorm:"not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:             p.ID().Bytes(),
		CheckID:        p.CheckID().Bytes(),
		TenderType:     string(p.TenderType()),
		TenderedAmount: p.TenderedAmount(),
		PaidAmount:     p.PaidAmount(),
		ChangeDue:      p.ChangeDue(),
		Status:         string(p.Status()),
		EmployeeID:     p.EmployeeID().Bytes(),
		BusinessDate:   p.BusinessDate().String(),
		CreatedAt:      p.CreatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	checkID, err := kernel.UUIDFromBytes(dto.CheckID[:])
	if err != nil {
		return nil, err
	}
	employeeID, err := kernel.UUIDFromBytes(dto.EmployeeID[:])
	if err != nil {
		return nil, err
	}
	return payment.RestorePayment(payment.PaymentState{
		ID:             id,
		CheckID:        checkID,
		TenderType:     payment.TenderType(dto.TenderType),
		TenderedAmount: kernel.RoundMoney(dto.TenderedAmount),
		PaidAmount:     kernel.RoundMoney(dto.PaidAmount),
		ChangeDue:      kernel.RoundMoney(dto.ChangeDue),
		Status:         payment.Status(dto.Status),
		EmployeeID:     employeeID,
		BusinessDate:   kernel.BusinessDate(dto.BusinessDate),
		CreatedAt:      dto.CreatedAt,
	})
}
