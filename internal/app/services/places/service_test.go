package places_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/app/locks"
	"stayhub/internal/app/services/bookings"
	"stayhub/internal/app/services/places"
	"stayhub/internal/app/services/reviews"
	domainbooking "stayhub/internal/domain/booking"
	domainphoto "stayhub/internal/domain/photo"
	domainplace "stayhub/internal/domain/place"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/infra/storage/memory"
)

func day(d int) time.Time {
	return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc      *places.Service
	bookings *bookings.Service
	reviews  *reviews.Service

	placeRepo   *memory.PlaceRepository
	bookingRepo *memory.BookingRepository
	reviewRepo  *memory.ReviewRepository
	photoRepo   *memory.PhotoRepository
	blobs       *memory.BlobStore
	outbox      *memory.Outbox
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	keyed := locks.NewKeyed()
	box := memory.NewOutbox()
	placeRepo := memory.NewPlaceRepository()
	bookingRepo := memory.NewBookingRepository()
	reviewRepo := memory.NewReviewRepository()
	photoRepo := memory.NewPhotoRepository()
	blobs := memory.NewBlobStore()
	now := func() time.Time { return day(1) }

	return fixture{
		svc: &places.Service{
			Places:   placeRepo,
			Bookings: bookingRepo,
			Reviews:  reviewRepo,
			Photos:   photoRepo,
			Blobs:    blobs,
			Locks:    keyed,
			Outbox:   box,
			Now:      now,
		},
		bookings: &bookings.Service{
			Places: placeRepo, Bookings: bookingRepo, Locks: keyed, Outbox: box, Now: now,
		},
		reviews: &reviews.Service{
			Places: placeRepo, Reviews: reviewRepo, Locks: keyed, Outbox: box, Now: now,
		},
		placeRepo:   placeRepo,
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		photoRepo:   photoRepo,
		blobs:       blobs,
		outbox:      box,
	}
}

func (f fixture) createPlace(t *testing.T) string {
	t.Helper()
	p, err := f.svc.Create(context.Background(), places.CreateParams{
		OwnerID:     "host-1",
		Name:        "Canal loft",
		Description: "Bright loft by the canal",
		CostPerDay:  120,
		Type:        "entire_place",
		BedAmount:   2,
		MaxPersons:  4,
	})
	require.NoError(t, err)
	return string(p.ID)
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	id := f.createPlace(t)
	got, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Canal loft", got.Name)

	t.Run("invalid type is rejected", func(t *testing.T) {
		_, err := f.svc.Create(context.Background(), places.CreateParams{
			OwnerID: "host-1", Name: "x", Description: "y",
			CostPerDay: 1, Type: "cave", BedAmount: 1, MaxPersons: 1,
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalidArgument))
	})
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	id := f.createPlace(t)

	t.Run("owner updates attributes", func(t *testing.T) {
		got, err := f.svc.Update(context.Background(), places.UpdateParams{
			PlaceID: id, OwnerID: "host-1",
			Name: "Harbour loft", Description: "Renovated loft",
			CostPerDay: 150, Type: "entire_place", BedAmount: 3, MaxPersons: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, "Harbour loft", got.Name)
		assert.Equal(t, 5, got.MaxPersons)
	})

	t.Run("non owner reports not found", func(t *testing.T) {
		_, err := f.svc.Update(context.Background(), places.UpdateParams{
			PlaceID: id, OwnerID: "host-2",
			Name: "Stolen loft", Description: "x",
			CostPerDay: 1, Type: "entire_place", BedAmount: 1, MaxPersons: 1,
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))
	})
}

func TestDeleteCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.createPlace(t)

	// two photos, three reviews, one booking hang off the place
	_, err := f.svc.UploadPhoto(ctx, places.UploadPhotoParams{
		PlaceID: id, OwnerID: "host-1", FileName: "front.png",
		ContentType: "image/png", Content: strings.NewReader("png-bytes"), Main: true,
	})
	require.NoError(t, err)
	_, err = f.svc.UploadPhoto(ctx, places.UploadPhotoParams{
		PlaceID: id, OwnerID: "host-1", FileName: "kitchen.png",
		ContentType: "image/png", Content: strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)

	for i, author := range []string{"tenant-1", "tenant-2", "tenant-3"} {
		_, err := f.reviews.Create(ctx, reviews.CreateParams{
			PlaceID: id, AuthorID: author, Text: "stay " + author, Rating: float64(i + 3),
		})
		require.NoError(t, err)
	}
	booked, err := f.bookings.Request(ctx, bookings.RequestParams{
		PlaceID: id, TenantID: "tenant-1", From: day(10), Until: day(15), Persons: 2,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, id, "host-1"))

	_, err = f.svc.Get(ctx, id)
	assert.True(t, fault.IsKind(err, fault.KindNotFound))

	remainingReviews, err := f.reviewRepo.ByPlace(ctx, domainplace.PlaceID(id))
	require.NoError(t, err)
	assert.Empty(t, remainingReviews)

	_, err = f.bookingRepo.ByID(ctx, domainbooking.BookingID(booked.BookingID))
	assert.ErrorIs(t, err, domainbooking.ErrBookingNotFound)

	assert.Zero(t, f.blobs.Len())

	t.Run("non owner cannot delete", func(t *testing.T) {
		f := newFixture(t)
		id := f.createPlace(t)
		err := f.svc.Delete(ctx, id, "host-2")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))

		_, err = f.svc.Get(ctx, id)
		assert.NoError(t, err)
	})
}

func TestDeleteCascadeIncludesLateAttachments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.createPlace(t)

	f.svc.Locks.Lock(id)
	done := make(chan error, 1)
	go func() { done <- f.svc.Delete(ctx, id, "host-1") }()

	// A booking commits while the delete waits on the lock. The cascade
	// must pick it up from the snapshot read after acquisition.
	time.Sleep(50 * time.Millisecond)
	stay, err := daterange.New(day(10), day(15))
	require.NoError(t, err)
	b, err := domainbooking.New(domainbooking.CreateParams{
		ID: "booking-late", TenantID: "tenant-1", PlaceID: domainplace.PlaceID(id),
		Range: stay, Persons: 2, Now: day(1),
	})
	require.NoError(t, err)
	require.NoError(t, f.bookingRepo.Create(ctx, b))
	p, err := f.placeRepo.ByID(ctx, domainplace.PlaceID(id))
	require.NoError(t, err)
	p.AttachBooking(string(b.ID), day(1))
	require.NoError(t, f.placeRepo.Save(ctx, p))
	f.svc.Locks.Unlock(id)

	require.NoError(t, <-done)
	_, err = f.bookingRepo.ByID(ctx, b.ID)
	assert.ErrorIs(t, err, domainbooking.ErrBookingNotFound)
}

func TestDeleteByOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.createPlace(t)
	second := f.createPlace(t)

	require.NoError(t, f.svc.DeleteByOwner(ctx, "host-1"))

	for _, id := range []string{first, second} {
		_, err := f.svc.Get(ctx, id)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))
	}
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.createPlace(t)

	first, err := f.svc.UploadPhoto(ctx, places.UploadPhotoParams{
		PlaceID: id, OwnerID: "host-1", FileName: "a.png",
		ContentType: "image/png", Content: strings.NewReader("one"), Main: true,
	})
	require.NoError(t, err)

	second, err := f.svc.UploadPhoto(ctx, places.UploadPhotoParams{
		PlaceID: id, OwnerID: "host-1", FileName: "b.png",
		ContentType: "image/png", Content: strings.NewReader("two"), Main: true,
	})
	require.NoError(t, err)

	p, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(second.ID), p.Photos.MainID)
	assert.Equal(t, []string{string(first.ID)}, p.Photos.SecondaryIDs)

	t.Run("remove main photo", func(t *testing.T) {
		require.NoError(t, f.svc.RemovePhoto(ctx, id, "host-1", string(second.ID)))
		p, err := f.svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, p.Photos.MainID)

		_, err = f.photoRepo.ByID(ctx, second.ID)
		assert.ErrorIs(t, err, domainphoto.ErrNotFound)
	})
}
