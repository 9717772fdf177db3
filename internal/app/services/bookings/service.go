// Package bookings implements the booking creation workflow: validate
// the proposed stay against the live booking set, persist the booking
// and append its back reference to the place, all under a per-place
// lock so concurrent requests cannot double-book.
package bookings

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/app/idempotency"
	"stayhub/internal/app/locks"
	"stayhub/internal/app/outbox"
	domainbooking "stayhub/internal/domain/booking"
	domainplace "stayhub/internal/domain/place"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/fault"
)

type Service struct {
	Places      domainplace.Repository
	Bookings    domainbooking.Repository
	Locks       *locks.Keyed
	Outbox      outbox.Outbox
	Idempotency idempotency.Store
	Logger      *slog.Logger
	Now         func() time.Time
}

type RequestParams struct {
	PlaceID        string
	TenantID       string
	From           time.Time
	Until          time.Time
	Persons        int
	IdempotencyKey string
}

type RequestResult struct {
	BookingID string `json:"booking_id"`
}

// Request reserves a stay. The conflict check always runs against the
// booking set read inside the lock, never against cached results.
func (s *Service) Request(ctx context.Context, params RequestParams) (RequestResult, error) {
	var result RequestResult
	err := idempotency.Execute(ctx, s.Idempotency, params.IdempotencyKey, &result, func(ctx context.Context) (any, error) {
		return s.request(ctx, params)
	})
	return result, err
}

func (s *Service) request(ctx context.Context, params RequestParams) (RequestResult, error) {
	// The place snapshot must be read under the lock. A snapshot taken
	// earlier would be written back without the references a concurrent
	// request attached in between.
	s.Locks.Lock(params.PlaceID)
	defer s.Locks.Unlock(params.PlaceID)

	p, err := s.Places.ByID(ctx, domainplace.PlaceID(params.PlaceID))
	if err != nil {
		if errors.Is(err, domainplace.ErrNotFound) {
			return RequestResult{}, fault.NotFound("place does not exist")
		}
		return RequestResult{}, err
	}

	existing, err := s.Bookings.ByPlace(ctx, p.ID)
	if err != nil {
		return RequestResult{}, err
	}

	now := s.now()
	if err := p.IsBookingValid(params.Persons, params.From, params.Until, now, domainbooking.Ranges(existing)); err != nil {
		return RequestResult{}, err
	}

	stay, err := daterange.New(params.From, params.Until)
	if err != nil {
		return RequestResult{}, fault.InvalidArgument("malformed date")
	}
	b, err := domainbooking.New(domainbooking.CreateParams{
		ID:       domainbooking.BookingID(uuid.NewString()),
		TenantID: params.TenantID,
		PlaceID:  p.ID,
		Range:    stay,
		Persons:  params.Persons,
		Now:      now,
	})
	if err != nil {
		return RequestResult{}, err
	}

	if err := s.Bookings.Create(ctx, b); err != nil {
		return RequestResult{}, err
	}
	p.AttachBooking(string(b.ID), now)
	if err := s.Places.Save(ctx, p); err != nil {
		return RequestResult{}, fault.Internal("attach booking to place", err)
	}

	if err := s.drainEvents(ctx, b.PendingEvents()); err != nil {
		return RequestResult{}, err
	}
	b.ClearEvents()

	if s.Logger != nil {
		s.Logger.Info("booking created", "booking_id", b.ID, "place_id", p.ID, "tenant_id", b.TenantID, "from", b.Range.From, "until", b.Range.Until)
	}
	return RequestResult{BookingID: string(b.ID)}, nil
}

// ListByTenant returns the caller's bookings.
func (s *Service) ListByTenant(ctx context.Context, tenantID string) ([]*domainbooking.Booking, error) {
	return s.Bookings.ByTenant(ctx, tenantID)
}

// Cancel removes one of the tenant's own bookings and detaches it from
// its place. A booking owned by someone else reports not found, the
// same way an owner-scoped lookup would.
func (s *Service) Cancel(ctx context.Context, bookingID, tenantID string) error {
	b, err := s.Bookings.ByID(ctx, domainbooking.BookingID(bookingID))
	if err != nil {
		if errors.Is(err, domainbooking.ErrBookingNotFound) {
			return fault.NotFound("booking does not exist")
		}
		return err
	}
	if b.TenantID != tenantID {
		return fault.NotFound("booking does not exist")
	}

	s.Locks.Lock(string(b.PlaceID))
	defer s.Locks.Unlock(string(b.PlaceID))

	if err := s.Bookings.Delete(ctx, b.ID); err != nil {
		return fault.Internal("delete booking", err)
	}

	now := s.now()
	p, err := s.Places.ByID(ctx, b.PlaceID)
	if err == nil {
		p.DetachBooking(string(b.ID), now)
		if err := s.Places.Save(ctx, p); err != nil {
			return fault.Internal("detach booking from place", err)
		}
	} else if !errors.Is(err, domainplace.ErrNotFound) {
		return err
	}

	cancelled := domainbooking.BookingCancelled{BookingID: b.ID, PlaceID: b.PlaceID, TenantID: b.TenantID, At: now}
	if err := s.drainEvents(ctx, []events.DomainEvent{cancelled}); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("booking cancelled", "booking_id", b.ID, "place_id", b.PlaceID, "tenant_id", b.TenantID)
	}
	return nil
}

func (s *Service) drainEvents(ctx context.Context, evs []events.DomainEvent) error {
	return outbox.RecordDomainEvents(ctx, s.Outbox, nil, evs)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
