package kernel

import (
	"fmt"
	"time"

	"checkcore/internal/pkg/errs"
)

const businessDateLayout = "2006-01-02"

// BusinessDate is the operating day a check belongs to, formatted YYYY-MM-DD.
// It is decided by the revenue center's day-close schedule, not the wall clock,
// so a check closed at 01:30 may still belong to the previous business date.
type BusinessDate string

// NewBusinessDate validates the YYYY-MM-DD form.
func NewBusinessDate(s string) (BusinessDate, error) {
	d := BusinessDate(s)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// BusinessDateFromTime truncates a timestamp to its calendar date in the timestamp's location.
func BusinessDateFromTime(t time.Time) BusinessDate {
	return BusinessDate(t.Format(businessDateLayout))
}

func (d BusinessDate) Validate() error {
	if d == "" {
		return errs.NewValueIsRequiredError("businessDate")
	}
	if _, err := time.Parse(businessDateLayout, string(d)); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("businessDate", fmt.Errorf("%q is not YYYY-MM-DD", string(d)))
	}
	return nil
}

func (d BusinessDate) String() string {
	return string(d)
}
