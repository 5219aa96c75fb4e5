package employeerepo

import (
	"context"
	"errors"
	"strings"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/ports"
	"checkcore/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	errUnknownPIN       = errors.New("PIN does not match an active employee")
	errMissingPrivilege = errors.New("employee lacks the privilege")
)

// HashPIN returns the bcrypt hash stored in employees.pin_hash.
func HashPIN(pin string) (string, error) {
	if strings.TrimSpace(pin) == "" {
		return "", errs.NewValueIsRequiredError("pin")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GormManagerAuthorizer implements ports.ManagerAuthorizer.
type GormManagerAuthorizer struct {
	db *gorm.DB
}

func NewGormManagerAuthorizer(db *gorm.DB) *GormManagerAuthorizer {
	return &GormManagerAuthorizer{db: db}
}

// Authorize compares the PIN with every active employee's hash, since bcrypt
// hashes cannot be looked up by value.
func (a *GormManagerAuthorizer) Authorize(ctx context.Context, pin string, privilege ports.Privilege) (ports.Approval, error) {
	action := string(privilege)
	if strings.TrimSpace(pin) == "" {
		return ports.Approval{}, errs.NewNotAuthorizedErrorWithCause(action, errs.NewValueIsRequiredError("managerPin"))
	}

	var employees []EmployeeDTO
	if err := a.db.WithContext(ctx).Preload("Privileges").Find(&employees, "active = ?", true).Error; err != nil {
		return ports.Approval{}, err
	}

	for _, e := range employees {
		if bcrypt.CompareHashAndPassword([]byte(e.PinHash), []byte(pin)) != nil {
			continue
		}
		if !hasPrivilege(e, privilege) {
			return ports.Approval{}, errs.NewNotAuthorizedErrorWithCause(action, errMissingPrivilege)
		}
		id, err := kernel.UUIDFromBytes(e.ID[:])
		if err != nil {
			return ports.Approval{}, err
		}
		return ports.Approval{EmployeeID: id}, nil
	}

	return ports.Approval{}, errs.NewNotAuthorizedErrorWithCause(action, errUnknownPIN)
}

func hasPrivilege(e EmployeeDTO, privilege ports.Privilege) bool {
	for _, p := range e.Privileges {
		if p.Privilege == string(privilege) {
			return true
		}
	}
	return false
}
