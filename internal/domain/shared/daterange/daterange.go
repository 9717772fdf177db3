package daterange

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("daterange: until must not be before from")

// DateRange represents a half-open interval [From, Until). A stay that
// ends on the day another begins does not overlap it.
type DateRange struct {
	From  time.Time
	Until time.Time
}

func New(from, until time.Time) (DateRange, error) {
	dr := DateRange{From: from.UTC(), Until: until.UTC()}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.From.IsZero() || dr.Until.IsZero() {
		return ErrInvalidRange
	}
	if dr.From.After(dr.Until) {
		return ErrInvalidRange
	}
	return nil
}

// Zero reports whether either bound is unset.
func (dr DateRange) Zero() bool {
	return dr.From.IsZero() || dr.Until.IsZero()
}

func (dr DateRange) Nights() int {
	return int(dr.Until.Sub(dr.From).Hours() / 24)
}

// Conflicts reports whether the candidate range collides with an
// existing one: either it starts at or before the existing start and
// runs into it, or it starts strictly inside the existing range. A
// candidate that ends exactly at the existing start, or begins exactly
// at its end, does not conflict.
func (dr DateRange) Conflicts(existing DateRange) bool {
	if !dr.From.After(existing.From) {
		return dr.Until.After(existing.From)
	}
	return dr.From.Before(existing.Until)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return !t.Before(dr.From) && t.Before(dr.Until)
}

func (dr DateRange) Equal(other DateRange) bool {
	return dr.From.Equal(other.From) && dr.Until.Equal(other.Until)
}
