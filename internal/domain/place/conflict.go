package place

import (
	"time"

	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
)

// IsBookingValid decides whether a proposed stay may be booked against
// this place. It inspects only the supplied state and never mutates
// anything; callers must pass the live set of confirmed booking ranges
// so the answer reflects the booking set at invocation time.
//
// Checks run in order and stop at the first failure:
// party size positive, party size within capacity, both dates present,
// from not in the past, from not after until, and finally no overlap
// with an existing booking under the half-open [from, until) rule.
func (p *Place) IsBookingValid(persons int, from, until time.Time, now time.Time, existing []daterange.DateRange) error {
	if persons < 1 {
		return fault.InvalidArgument("party size must be positive")
	}
	if persons > p.MaxPersons {
		return fault.InvalidArgument("exceeds capacity")
	}
	if from.IsZero() || until.IsZero() {
		return fault.InvalidArgument("malformed date")
	}
	if from.Before(now) {
		return fault.InvalidArgument("from date has passed")
	}
	if from.After(until) {
		return fault.InvalidArgument("from after until")
	}

	candidate := daterange.DateRange{From: from.UTC(), Until: until.UTC()}
	for _, booked := range existing {
		if candidate.Conflicts(booked) {
			return fault.Conflict("overlaps existing booking")
		}
	}
	return nil
}
