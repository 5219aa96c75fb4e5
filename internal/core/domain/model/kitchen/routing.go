package kitchen

import (
	"fmt"
	"strings"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
)

// RoutingTarget is one KDS station a menu item prints or displays on.
type RoutingTarget struct {
	kdsDeviceID   kernel.UUID
	stationType   string
	orderDeviceID *kernel.UUID
}

func NewRoutingTarget(kdsDeviceID kernel.UUID, stationType string, orderDeviceID *kernel.UUID) (RoutingTarget, error) {
	if err := kdsDeviceID.Validate(); err != nil {
		return RoutingTarget{}, errs.NewValueIsRequiredErrorWithCause("kdsDeviceId", err)
	}
	return RoutingTarget{
		kdsDeviceID:   kdsDeviceID,
		stationType:   strings.TrimSpace(stationType),
		orderDeviceID: orderDeviceID,
	}, nil
}

func (t RoutingTarget) KdsDeviceID() kernel.UUID { return t.kdsDeviceID }
func (t RoutingTarget) StationType() string      { return t.stationType }

func (t RoutingTarget) OrderDeviceID() *kernel.UUID {
	if t.orderDeviceID == nil {
		return nil
	}
	id := *t.orderDeviceID
	return &id
}

// SendMode is the Dynamic Order Mode policy of a revenue center.
type SendMode string

const (
	// FireOnFly shows each item on the preview ticket as soon as it is rung.
	FireOnFly SendMode = "fire_on_fly"

	// FireOnNext shows an item once the next item is rung.
	FireOnNext SendMode = "fire_on_next"

	// FireOnTender shows nothing until send or payment.
	FireOnTender SendMode = "fire_on_tender"
)

func (m SendMode) Validate() error {
	switch m {
	case FireOnFly, FireOnNext, FireOnTender:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("domSendMode", fmt.Errorf("%q is not a known send mode", string(m)))
	}
}

// OrderModeSettings is the revenue-center policy consulted on every item ring.
type OrderModeSettings struct {
	DynamicEnabled bool
	SendMode       SendMode
}

// IsDynamic reports whether Dynamic Order Mode applies.
func (s OrderModeSettings) IsDynamic() bool {
	return s.DynamicEnabled && s.SendMode.Validate() == nil
}
