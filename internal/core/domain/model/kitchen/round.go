package kitchen

import (
	"errors"
	"fmt"
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"
)

var ErrRoundIsNotConstructed = errors.New("Round must be created via NewRound constructor")

// Round is one send-to-kitchen event on a check. Round numbers start at 1,
// grow by one per send and are never reused, even after a reopen.
type Round struct {
	id               kernel.UUID
	checkID          kernel.UUID
	number           int
	sentByEmployeeID kernel.UUID
	sentAt           time.Time
	guard            guard.ConstructorGuard
}

func NewRound(id, checkID kernel.UUID, number int, sentByEmployeeID kernel.UUID, sentAt time.Time) (*Round, error) {
	if err := errors.Join(id.Validate(), checkID.Validate(), sentByEmployeeID.Validate()); err != nil {
		return nil, err
	}
	if number < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("roundNumber", fmt.Errorf("%d is not greater than 0", number))
	}
	return &Round{
		id:               id,
		checkID:          checkID,
		number:           number,
		sentByEmployeeID: sentByEmployeeID,
		sentAt:           sentAt.UTC(),
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// RestoreRound rehydrates a persisted round.
func RestoreRound(id, checkID kernel.UUID, number int, sentByEmployeeID kernel.UUID, sentAt time.Time) (*Round, error) {
	return NewRound(id, checkID, number, sentByEmployeeID, sentAt)
}

func (r *Round) Validate() error {
	if r == nil {
		return ErrRoundIsNotConstructed
	}
	return r.guard.Validate(ErrRoundIsNotConstructed)
}

func (r *Round) ID() kernel.UUID               { return r.id }
func (r *Round) CheckID() kernel.UUID          { return r.checkID }
func (r *Round) Number() int                   { return r.number }
func (r *Round) SentByEmployeeID() kernel.UUID { return r.sentByEmployeeID }
func (r *Round) SentAt() time.Time             { return r.sentAt }
