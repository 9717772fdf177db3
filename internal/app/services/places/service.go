// Package places implements place management, photo handling and the
// cascade that removes a place together with its dependent records.
package places

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/app/locks"
	"stayhub/internal/app/outbox"
	domainbooking "stayhub/internal/domain/booking"
	domainphoto "stayhub/internal/domain/photo"
	domainplace "stayhub/internal/domain/place"
	domainreview "stayhub/internal/domain/review"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/fault"
)

// BlobStore is the object-storage surface the photo workflows need.
type BlobStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

type Service struct {
	Places   domainplace.Repository
	Bookings domainbooking.Repository
	Reviews  domainreview.Repository
	Photos   domainphoto.Repository
	Blobs    BlobStore
	Locks    *locks.Keyed
	Outbox   outbox.Outbox
	Logger   *slog.Logger
	Now      func() time.Time
}

type CreateParams struct {
	OwnerID     string
	Name        string
	Description string
	Area        float64
	CostPerDay  int64
	Type        string
	BedAmount   int
	MaxPersons  int
	Rooms       domainplace.Rooms
	Amenities   domainplace.Amenities
	Rules       domainplace.Rules
	Location    domainplace.Location
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*domainplace.Place, error) {
	placeType, err := domainplace.ParseType(params.Type)
	if err != nil {
		return nil, fault.InvalidArgument(err.Error())
	}
	p, err := domainplace.New(domainplace.CreateParams{
		ID:          domainplace.PlaceID(uuid.NewString()),
		Owner:       domainplace.OwnerID(params.OwnerID),
		Name:        params.Name,
		Description: params.Description,
		Area:        params.Area,
		CostPerDay:  params.CostPerDay,
		Type:        placeType,
		BedAmount:   params.BedAmount,
		MaxPersons:  params.MaxPersons,
		Rooms:       params.Rooms,
		Amenities:   params.Amenities,
		Rules:       params.Rules,
		Location:    params.Location,
		Now:         s.now(),
	})
	if err != nil {
		return nil, fault.InvalidArgument(err.Error())
	}
	if err := s.Places.Save(ctx, p); err != nil {
		return nil, fault.Internal("save place", err)
	}
	if err := s.drainEvents(ctx, p); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("place created", "place_id", p.ID, "owner_id", p.Owner)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, placeID string) (*domainplace.Place, error) {
	return s.load(ctx, placeID)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*domainplace.Place, error) {
	return s.Places.ByOwner(ctx, domainplace.OwnerID(ownerID))
}

type UpdateParams struct {
	PlaceID     string
	OwnerID     string
	Name        string
	Description string
	Area        float64
	CostPerDay  int64
	Type        string
	BedAmount   int
	MaxPersons  int
	Rooms       domainplace.Rooms
	Amenities   domainplace.Amenities
	Rules       domainplace.Rules
	Location    domainplace.Location
}

func (s *Service) Update(ctx context.Context, params UpdateParams) (*domainplace.Place, error) {
	s.Locks.Lock(params.PlaceID)
	defer s.Locks.Unlock(params.PlaceID)

	p, err := s.ownedPlace(ctx, params.PlaceID, params.OwnerID)
	if err != nil {
		return nil, err
	}
	placeType, err := domainplace.ParseType(params.Type)
	if err != nil {
		return nil, fault.InvalidArgument(err.Error())
	}
	if err := p.UpdateAttributes(domainplace.UpdateParams{
		Name:        params.Name,
		Description: params.Description,
		Area:        params.Area,
		CostPerDay:  params.CostPerDay,
		Type:        placeType,
		BedAmount:   params.BedAmount,
		MaxPersons:  params.MaxPersons,
		Rooms:       params.Rooms,
		Amenities:   params.Amenities,
		Rules:       params.Rules,
		Location:    params.Location,
		Now:         s.now(),
	}); err != nil {
		return nil, fault.InvalidArgument(err.Error())
	}
	if err := s.Places.Save(ctx, p); err != nil {
		return nil, fault.Internal("save place", err)
	}
	if err := s.drainEvents(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a place and everything hanging off it. Dependents go
// first so a crash mid-way never leaves orphans pointing at a place
// that no longer exists: photos (main, then secondary), then reviews,
// then bookings, then the place document itself. The first dependent
// failure aborts the cascade.
func (s *Service) Delete(ctx context.Context, placeID, ownerID string) error {
	// The dependent id sets are read from a snapshot taken under the
	// lock, so every booking or review attached by a concurrent writer
	// is part of the cascade.
	s.Locks.Lock(placeID)
	defer s.Locks.Unlock(placeID)

	p, err := s.ownedPlace(ctx, placeID, ownerID)
	if err != nil {
		return err
	}

	if err := s.deleteDependents(ctx, p); err != nil {
		return err
	}
	if err := s.Places.Delete(ctx, p.ID); err != nil {
		return fault.Internal("delete place", err)
	}

	now := s.now()
	deleted := domainplace.PlaceDeleted{
		PlaceID:  p.ID,
		Owner:    p.Owner,
		Photos:   len(p.Photos.All()),
		Reviews:  len(p.ReviewIDs),
		Bookings: len(p.BookingIDs),
		At:       now,
	}
	if err := outbox.RecordDomainEvents(ctx, s.Outbox, nil, []events.DomainEvent{deleted}); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("place deleted", "place_id", p.ID, "owner_id", p.Owner,
			"photos", deleted.Photos, "reviews", deleted.Reviews, "bookings", deleted.Bookings)
	}
	return nil
}

// DeleteByOwner cascades over every place the owner has. Used when an
// account is removed.
func (s *Service) DeleteByOwner(ctx context.Context, ownerID string) error {
	owned, err := s.Places.ByOwner(ctx, domainplace.OwnerID(ownerID))
	if err != nil {
		return fault.Internal("list places for owner", err)
	}
	for _, p := range owned {
		if err := s.Delete(ctx, string(p.ID), ownerID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) deleteDependents(ctx context.Context, p *domainplace.Place) error {
	for _, photoID := range p.Photos.All() {
		if err := s.deletePhoto(ctx, photoID); err != nil {
			return fault.Internal("delete place photo", err)
		}
	}
	for _, reviewID := range p.ReviewIDs {
		if err := s.Reviews.Delete(ctx, domainreview.ReviewID(reviewID)); err != nil {
			return fault.Internal("delete place review", err)
		}
	}
	for _, bookingID := range p.BookingIDs {
		if err := s.Bookings.Delete(ctx, domainbooking.BookingID(bookingID)); err != nil {
			return fault.Internal("delete place booking", err)
		}
	}
	return nil
}

// deletePhoto drops the document and then the stored object. A photo
// document that is already gone is not an error.
func (s *Service) deletePhoto(ctx context.Context, photoID string) error {
	ph, err := s.Photos.ByID(ctx, domainphoto.PhotoID(photoID))
	if err != nil {
		if errors.Is(err, domainphoto.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.Photos.Delete(ctx, ph.ID); err != nil {
		return err
	}
	if s.Blobs != nil && ph.ObjectKey != "" {
		if err := s.Blobs.Remove(ctx, ph.ObjectKey); err != nil && s.Logger != nil {
			s.Logger.Warn("remove photo object", "key", ph.ObjectKey, "error", err)
		}
	}
	return nil
}

type UploadPhotoParams struct {
	PlaceID     string
	OwnerID     string
	FileName    string
	ContentType string
	Content     io.Reader
	Main        bool
}

// UploadPhoto stores the image and attaches it to the place. When Main
// is set the current main photo is demoted to the secondary set.
func (s *Service) UploadPhoto(ctx context.Context, params UploadPhotoParams) (*domainphoto.Photo, error) {
	p, err := s.ownedPlace(ctx, params.PlaceID, params.OwnerID)
	if err != nil {
		return nil, err
	}
	if s.Blobs == nil {
		return nil, fault.Internal("photo storage is not configured", nil)
	}

	id := domainphoto.PhotoID(uuid.NewString())
	key := path.Join("places", string(p.ID), string(id)+path.Ext(params.FileName))
	url, err := s.Blobs.Upload(ctx, key, params.Content, params.ContentType)
	if err != nil {
		return nil, fault.Internal("upload photo", err)
	}

	ph, err := domainphoto.New(domainphoto.CreateParams{
		ID:          id,
		OwnerID:     params.OwnerID,
		PlaceID:     string(p.ID),
		ObjectKey:   key,
		URL:         url,
		ContentType: params.ContentType,
		Now:         s.now(),
	})
	if err != nil {
		return nil, fault.InvalidArgument(err.Error())
	}
	if err := s.Photos.Save(ctx, ph); err != nil {
		return nil, fault.Internal("save photo", err)
	}

	// The pre-upload load only gates ownership and is never written
	// back. The snapshot that gets the photo attached is read under the
	// lock, after the slow upload.
	s.Locks.Lock(params.PlaceID)
	defer s.Locks.Unlock(params.PlaceID)

	p, err = s.ownedPlace(ctx, params.PlaceID, params.OwnerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if params.Main {
		p.SetMainPhoto(string(ph.ID), now)
	} else {
		p.AddSecondaryPhoto(string(ph.ID), now)
	}
	if err := s.Places.Save(ctx, p); err != nil {
		return nil, fault.Internal("save place", err)
	}
	if s.Logger != nil {
		s.Logger.Info("photo uploaded", "place_id", p.ID, "photo_id", ph.ID, "main", params.Main)
	}
	return ph, nil
}

// GetPhoto resolves a photo document by id.
func (s *Service) GetPhoto(ctx context.Context, photoID string) (*domainphoto.Photo, error) {
	ph, err := s.Photos.ByID(ctx, domainphoto.PhotoID(photoID))
	if err != nil {
		if errors.Is(err, domainphoto.ErrNotFound) {
			return nil, fault.NotFound("photo does not exist")
		}
		return nil, err
	}
	return ph, nil
}

// RemovePhoto detaches a photo from the place and deletes it.
func (s *Service) RemovePhoto(ctx context.Context, placeID, ownerID, photoID string) error {
	s.Locks.Lock(placeID)
	defer s.Locks.Unlock(placeID)

	p, err := s.ownedPlace(ctx, placeID, ownerID)
	if err != nil {
		return err
	}
	now := s.now()
	if p.Photos.MainID == photoID {
		p.ClearMainPhoto(now)
	} else {
		p.RemoveSecondaryPhoto(photoID, now)
	}
	if err := s.deletePhoto(ctx, photoID); err != nil {
		return fault.Internal("delete photo", err)
	}
	if err := s.Places.Save(ctx, p); err != nil {
		return fault.Internal("save place", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, placeID string) (*domainplace.Place, error) {
	p, err := s.Places.ByID(ctx, domainplace.PlaceID(placeID))
	if err != nil {
		if errors.Is(err, domainplace.ErrNotFound) {
			return nil, fault.NotFound("place does not exist")
		}
		return nil, err
	}
	return p, nil
}

// ownedPlace resolves a place scoped to its owner. A place owned by
// someone else reports not found, never forbidden.
func (s *Service) ownedPlace(ctx context.Context, placeID, ownerID string) (*domainplace.Place, error) {
	p, err := s.load(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if string(p.Owner) != ownerID {
		return nil, fault.NotFound("place does not exist")
	}
	return p, nil
}

func (s *Service) drainEvents(ctx context.Context, p *domainplace.Place) error {
	if err := outbox.RecordDomainEvents(ctx, s.Outbox, nil, p.PendingEvents()); err != nil {
		return err
	}
	p.ClearEvents()
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
