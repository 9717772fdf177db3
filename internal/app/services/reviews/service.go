// Package reviews implements review creation, editing and deletion.
// Every mutation recomputes the owning place's review summary from the
// live review set before the place is saved.
package reviews

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/app/locks"
	"stayhub/internal/app/outbox"
	domainplace "stayhub/internal/domain/place"
	domainreview "stayhub/internal/domain/review"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/fault"
)

type Service struct {
	Places  domainplace.Repository
	Reviews domainreview.Repository
	Locks   *locks.Keyed
	Outbox  outbox.Outbox
	Logger  *slog.Logger
	Now     func() time.Time
}

type CreateParams struct {
	PlaceID  string
	AuthorID string
	Text     string
	Rating   float64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*domainreview.Review, error) {
	// Load the place under the lock so the saved snapshot carries every
	// review reference attached by concurrent writers.
	s.Locks.Lock(params.PlaceID)
	defer s.Locks.Unlock(params.PlaceID)

	p, err := s.Places.ByID(ctx, domainplace.PlaceID(params.PlaceID))
	if err != nil {
		if errors.Is(err, domainplace.ErrNotFound) {
			return nil, fault.NotFound("place does not exist")
		}
		return nil, err
	}
	if string(p.Owner) == params.AuthorID {
		return nil, fault.InvalidArgument("cannot review your own place")
	}

	now := s.now()
	r, err := domainreview.New(domainreview.CreateParams{
		ID:       domainreview.ReviewID(uuid.NewString()),
		AuthorID: params.AuthorID,
		PlaceID:  p.ID,
		Text:     params.Text,
		Rating:   params.Rating,
		Now:      now,
	})
	if err != nil {
		return nil, fault.InvalidArgument(err.Error())
	}

	if err := s.Reviews.Save(ctx, r); err != nil {
		return nil, fault.Internal("save review", err)
	}
	p.AttachReview(string(r.ID), now)
	if err := s.refreshSummary(ctx, p); err != nil {
		return nil, err
	}

	if err := s.drainEvents(ctx, r.PendingEvents()); err != nil {
		return nil, err
	}
	r.ClearEvents()

	if s.Logger != nil {
		s.Logger.Info("review submitted", "review_id", r.ID, "place_id", p.ID, "author_id", r.AuthorID, "rating", r.Rating)
	}
	return r, nil
}

type UpdateParams struct {
	ReviewID string
	AuthorID string
	Text     *string
	Rating   *float64
}

// Update applies the allow-listed review fields (text, rating). A
// review owned by someone else reports not found.
func (s *Service) Update(ctx context.Context, params UpdateParams) (*domainreview.Review, error) {
	r, err := s.authorReview(ctx, params.ReviewID, params.AuthorID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if params.Text != nil {
		if err := r.UpdateText(*params.Text, now); err != nil {
			return nil, fault.InvalidArgument(err.Error())
		}
	}
	if params.Rating != nil {
		if err := r.UpdateRating(*params.Rating, now); err != nil {
			return nil, fault.InvalidArgument(err.Error())
		}
	}

	s.Locks.Lock(string(r.PlaceID))
	defer s.Locks.Unlock(string(r.PlaceID))

	if err := s.Reviews.Save(ctx, r); err != nil {
		return nil, fault.Internal("save review", err)
	}
	if err := s.refreshPlace(ctx, r.PlaceID); err != nil {
		return nil, err
	}

	if err := s.drainEvents(ctx, r.PendingEvents()); err != nil {
		return nil, err
	}
	r.ClearEvents()
	return r, nil
}

func (s *Service) Delete(ctx context.Context, reviewID, authorID string) error {
	r, err := s.authorReview(ctx, reviewID, authorID)
	if err != nil {
		return err
	}

	s.Locks.Lock(string(r.PlaceID))
	defer s.Locks.Unlock(string(r.PlaceID))

	if err := s.Reviews.Delete(ctx, r.ID); err != nil {
		return fault.Internal("delete review", err)
	}

	now := s.now()
	p, err := s.Places.ByID(ctx, r.PlaceID)
	if err == nil {
		p.DetachReview(string(r.ID), now)
		if err := s.refreshSummary(ctx, p); err != nil {
			return err
		}
	} else if !errors.Is(err, domainplace.ErrNotFound) {
		return err
	}

	deleted := domainreview.ReviewDeleted{ReviewID: r.ID, PlaceID: r.PlaceID, At: now}
	if err := s.drainEvents(ctx, []events.DomainEvent{deleted}); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("review deleted", "review_id", r.ID, "place_id", r.PlaceID, "author_id", authorID)
	}
	return nil
}

// ListByPlace returns the live review set for a place.
func (s *Service) ListByPlace(ctx context.Context, placeID string) ([]*domainreview.Review, error) {
	return s.Reviews.ByPlace(ctx, domainplace.PlaceID(placeID))
}

func (s *Service) authorReview(ctx context.Context, reviewID, authorID string) (*domainreview.Review, error) {
	r, err := s.Reviews.ByID(ctx, domainreview.ReviewID(reviewID))
	if err != nil {
		if errors.Is(err, domainreview.ErrNotFound) {
			return nil, fault.NotFound("review does not exist")
		}
		return nil, err
	}
	if r.AuthorID != authorID {
		return nil, fault.NotFound("review does not exist")
	}
	return r, nil
}

// refreshPlace loads the place and rebuilds its summary. Used when the
// caller has only the place id.
func (s *Service) refreshPlace(ctx context.Context, placeID domainplace.PlaceID) error {
	p, err := s.Places.ByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, domainplace.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.refreshSummary(ctx, p)
}

// refreshSummary recomputes the summary from the review set as stored
// right now, then persists the place.
func (s *Service) refreshSummary(ctx context.Context, p *domainplace.Place) error {
	live, err := s.Reviews.ByPlace(ctx, p.ID)
	if err != nil {
		return fault.Internal("load reviews for summary", err)
	}
	p.SetReviewSummary(domainplace.RecomputeReviewSummary(domainreview.Ratings(live)))
	if err := s.Places.Save(ctx, p); err != nil {
		return fault.Internal("save place summary", err)
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
