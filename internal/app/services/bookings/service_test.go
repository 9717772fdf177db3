package bookings_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/app/locks"
	"stayhub/internal/app/services/bookings"
	"stayhub/internal/domain/place"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/infra/storage/memory"
)

func day(d int) time.Time {
	return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc      *bookings.Service
	places   *memory.PlaceRepository
	bookings *memory.BookingRepository
	outbox   *memory.Outbox
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	places := memory.NewPlaceRepository()
	bookingRepo := memory.NewBookingRepository()
	box := memory.NewOutbox()
	svc := &bookings.Service{
		Places:      places,
		Bookings:    bookingRepo,
		Locks:       locks.NewKeyed(),
		Outbox:      box,
		Idempotency: memory.NewIdempotencyStore(),
		Now:         func() time.Time { return day(1) },
	}

	p, err := place.New(place.CreateParams{
		ID:          "place-1",
		Owner:       "host-1",
		Name:        "Canal loft",
		Description: "Bright loft by the canal",
		CostPerDay:  120,
		Type:        place.TypeEntirePlace,
		BedAmount:   2,
		MaxPersons:  4,
		Now:         day(1),
	})
	require.NoError(t, err)
	p.ClearEvents()
	require.NoError(t, places.Save(context.Background(), p))

	return fixture{svc: svc, places: places, bookings: bookingRepo, outbox: box}
}

func TestRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("creates booking and attaches ref", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "place-1", TenantID: "tenant-1",
			From: day(10), Until: day(15), Persons: 2,
		})
		require.NoError(t, err)
		require.NotEmpty(t, res.BookingID)

		p, err := f.places.ByID(ctx, "place-1")
		require.NoError(t, err)
		assert.Equal(t, []string{res.BookingID}, p.BookingIDs)

		records := f.outbox.Records()
		require.Len(t, records, 1)
		assert.Equal(t, "booking.created", records[0].Name)
	})

	t.Run("rejects overlapping stay", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "place-1", TenantID: "tenant-1",
			From: day(10), Until: day(15), Persons: 2,
		})
		require.NoError(t, err)

		_, err = f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "place-1", TenantID: "tenant-2",
			From: day(12), Until: day(18), Persons: 2,
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindConflict))
		assert.Equal(t, "overlaps existing booking", fault.MessageOf(err))
	})

	t.Run("back to back stays do not conflict", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "place-1", TenantID: "tenant-1",
			From: day(10), Until: day(15), Persons: 2,
		})
		require.NoError(t, err)

		_, err = f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "place-1", TenantID: "tenant-2",
			From: day(15), Until: day(20), Persons: 2,
		})
		require.NoError(t, err)
	})

	t.Run("unknown place reports not found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "ghost", TenantID: "tenant-1",
			From: day(10), Until: day(15), Persons: 2,
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))
	})

	t.Run("idempotency key replays first outcome", func(t *testing.T) {
		f := newFixture(t)
		first, err := f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "place-1", TenantID: "tenant-1",
			From: day(10), Until: day(15), Persons: 2,
			IdempotencyKey: "req-1",
		})
		require.NoError(t, err)

		second, err := f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "place-1", TenantID: "tenant-1",
			From: day(10), Until: day(15), Persons: 2,
			IdempotencyKey: "req-1",
		})
		require.NoError(t, err)
		assert.Equal(t, first.BookingID, second.BookingID)

		stored, err := f.bookings.ByTenant(ctx, "tenant-1")
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("idempotency key replays a rejection with its kind", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "place-1", TenantID: "tenant-1",
			From: day(10), Until: day(15), Persons: 0,
			IdempotencyKey: "req-bad",
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))

		_, err = f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "place-1", TenantID: "tenant-1",
			From: day(10), Until: day(15), Persons: 0,
			IdempotencyKey: "req-bad",
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))
		assert.Equal(t, "party size must be positive", fault.MessageOf(err))
	})

	t.Run("concurrent disjoint requests keep both back references", func(t *testing.T) {
		f := newFixture(t)

		start := make(chan struct{})
		results := make([]bookings.RequestResult, 2)
		errs := make([]error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				results[i], errs[i] = f.svc.Request(ctx, bookings.RequestParams{
					PlaceID: "place-1", TenantID: fmt.Sprintf("tenant-%d", i+1),
					From: day(10 + 5*i), Until: day(15 + 5*i), Persons: 2,
				})
			}(i)
		}
		close(start)
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		p, err := f.places.ByID(ctx, "place-1")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{results[0].BookingID, results[1].BookingID}, p.BookingIDs)
	})

	t.Run("place writes under a held lock are not overwritten", func(t *testing.T) {
		f := newFixture(t)

		f.svc.Locks.Lock("place-1")
		done := make(chan struct{})
		var res bookings.RequestResult
		var reqErr error
		go func() {
			defer close(done)
			res, reqErr = f.svc.Request(ctx, bookings.RequestParams{
				PlaceID: "place-1", TenantID: "tenant-1",
				From: day(10), Until: day(15), Persons: 2,
			})
		}()

		// While the request waits on the lock, another booking gets
		// attached. The request must read the place after that write.
		time.Sleep(50 * time.Millisecond)
		p, err := f.places.ByID(ctx, "place-1")
		require.NoError(t, err)
		p.AttachBooking("booking-held", day(1))
		require.NoError(t, f.places.Save(ctx, p))
		f.svc.Locks.Unlock("place-1")
		<-done

		require.NoError(t, reqErr)
		p, err = f.places.ByID(ctx, "place-1")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"booking-held", res.BookingID}, p.BookingIDs)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("removes booking and detaches ref", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "place-1", TenantID: "tenant-1",
			From: day(10), Until: day(15), Persons: 2,
		})
		require.NoError(t, err)

		require.NoError(t, f.svc.Cancel(ctx, res.BookingID, "tenant-1"))

		p, err := f.places.ByID(ctx, "place-1")
		require.NoError(t, err)
		assert.Empty(t, p.BookingIDs)

		stored, err := f.bookings.ByTenant(ctx, "tenant-1")
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("someone else's booking reports not found", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.Request(ctx, bookings.RequestParams{
			PlaceID: "place-1", TenantID: "tenant-1",
			From: day(10), Until: day(15), Persons: 2,
		})
		require.NoError(t, err)

		err = f.svc.Cancel(ctx, res.BookingID, "tenant-2")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))
	})
}
