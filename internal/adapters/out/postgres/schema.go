package postgres

import (
	"checkcore/internal/adapters/out/postgres/auditrepo"
	"checkcore/internal/adapters/out/postgres/catalogrepo"
	"checkcore/internal/adapters/out/postgres/checkrepo"
	"checkcore/internal/adapters/out/postgres/employeerepo"
	"checkcore/internal/adapters/out/postgres/kitchenrepo"
	"checkcore/internal/adapters/out/postgres/lockrepo"
	"checkcore/internal/adapters/out/postgres/paymentrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the check core, parents before children.
func Models() []any {
	return []any{
		&catalogrepo.RevenueCenterDTO{},
		&catalogrepo.TaxGroupDTO{},
		&catalogrepo.MenuItemDTO{},
		&catalogrepo.KdsRouteDTO{},
		&catalogrepo.ItemAvailabilityDTO{},
		&catalogrepo.DiscountDefinitionDTO{},
		&employeerepo.EmployeeDTO{},
		&employeerepo.PrivilegeDTO{},
		&checkrepo.CheckDTO{},
		&checkrepo.ItemDTO{},
		&checkrepo.DiscountDTO{},
		&kitchenrepo.RoundDTO{},
		&kitchenrepo.TicketDTO{},
		&kitchenrepo.TicketItemDTO{},
		&paymentrepo.PaymentDTO{},
		&lockrepo.LeaseDTO{},
		&auditrepo.AuditLogDTO{},
	}
}

// AutoMigrate creates or updates every table of Models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
