package ports

import (
	"context"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/payment"
)

type PaymentRepository interface {
	Add(ctx context.Context, p *payment.Payment) error
	ListByCheck(ctx context.Context, checkID kernel.UUID) ([]*payment.Payment, error)
}
