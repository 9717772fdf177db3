package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayhub/internal/domain/place"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/events"
)

var (
	ErrIDRequired      = errors.New("booking: id is required")
	ErrTenantRequired  = errors.New("booking: tenant is required")
	ErrPlaceRequired   = errors.New("booking: place is required")
	ErrInvalidPersons  = errors.New("booking: persons count must be positive")
	ErrBookingNotFound = errors.New("booking: not found")
)

type BookingID string

// Booking is a reserved, non overlapping stay against a place. It is
// created once the conflict check passes and never mutated afterwards;
// it disappears either with its place (cascade) or when the tenant
// cancels it.
type Booking struct {
	ID        BookingID
	TenantID  string
	PlaceID   place.PlaceID
	Range     daterange.DateRange
	Persons   int
	CreatedAt time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	ByPlace(ctx context.Context, placeID place.PlaceID) ([]*Booking, error)
	ByTenant(ctx context.Context, tenantID string) ([]*Booking, error)
	Create(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id BookingID) error
}

type CreateParams struct {
	ID       BookingID
	TenantID string
	PlaceID  place.PlaceID
	Range    daterange.DateRange
	Persons  int
	Now      time.Time
}

func New(params CreateParams) (*Booking, error) {
	if strings.TrimSpace(params.TenantID) == "" {
		return nil, ErrTenantRequired
	}
	if strings.TrimSpace(string(params.PlaceID)) == "" {
		return nil, ErrPlaceRequired
	}
	if params.Persons < 1 {
		return nil, ErrInvalidPersons
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}

	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	b := &Booking{
		ID:        params.ID,
		TenantID:  params.TenantID,
		PlaceID:   params.PlaceID,
		Range:     params.Range,
		Persons:   params.Persons,
		CreatedAt: now,
	}
	b.Record(BookingCreated{BookingID: b.ID, PlaceID: b.PlaceID, TenantID: b.TenantID, Range: b.Range, Persons: b.Persons, At: now})
	return b, nil
}

// Ranges projects the stay intervals out of a booking set, in input
// order, for the conflict checker.
func Ranges(bookings []*Booking) []daterange.DateRange {
	out := make([]daterange.DateRange, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Range)
	}
	return out
}
