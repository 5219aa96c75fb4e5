// Package employeerepo verifies manager PINs against bcrypt hashes and the
// privileges granted to each employee.
package employeerepo

import (
	"github.com/google/uuid"
)

type EmployeeDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PropertyID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name       string         `gorm:"type:varchar(255);not null"`
	PinHash    string         `gorm:"type:varchar(72);not null"`
	Active     bool           `gorm:"not null;default:true"`
	Privileges []PrivilegeDTO `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (EmployeeDTO) TableName() string {
	return "employees"
}

type PrivilegeDTO struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Privilege  string    `gorm:"type:varchar(32);primaryKey"`
}

func (PrivilegeDTO) TableName() string {
	return "employee_privileges"
}
