package booking

import (
	"time"

	"stayhub/internal/domain/place"
	"stayhub/internal/domain/shared/daterange"
)

type BookingCreated struct {
	BookingID BookingID
	PlaceID   place.PlaceID
	TenantID  string
	Range     daterange.DateRange
	Persons   int
	At        time.Time
}

func (e BookingCreated) EventName() string     { return "booking.created" }
func (e BookingCreated) AggregateID() string   { return string(e.BookingID) }
func (e BookingCreated) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID BookingID
	PlaceID   place.PlaceID
	TenantID  string
	At        time.Time
}

func (e BookingCancelled) EventName() string     { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }
