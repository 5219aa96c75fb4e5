package check

import (
	"fmt"

	"checkcore/internal/pkg/errs"
)

// OrderType describes how the guest is served.
type OrderType string

const (
	DineIn   OrderType = "dine_in"
	TakeOut  OrderType = "take_out"
	Delivery OrderType = "delivery"
	Pickup   OrderType = "pickup"
)

func (t OrderType) Validate() error {
	switch t {
	case DineIn, TakeOut, Delivery, Pickup:
		return nil
	case "":
		return errs.NewValueIsRequiredError("orderType")
	default:
		return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not a known order type", string(t)))
	}
}
