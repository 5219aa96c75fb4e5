// Package guard detects zero-value domain objects that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value objects, entities and commands.
// Only NewConstructorGuard produces a guard that passes Validate, so a struct
// literal such as `check.Check{}` or `commands.SendCheckCommand{}` is rejected
// the first time it reaches a repository or handler.
//
//	type Discount struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func (d *Discount) Validate() error {
//	    return d.guard.Validate(ErrDiscountIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
