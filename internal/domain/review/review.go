package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayhub/internal/domain/place"
	"stayhub/internal/domain/shared/events"
)

var (
	ErrIDRequired     = errors.New("review: id is required")
	ErrAuthorRequired = errors.New("review: author is required")
	ErrPlaceRequired  = errors.New("review: place is required")
	ErrTextRequired   = errors.New("review: text is required")
	ErrInvalidRating  = errors.New("review: rating must be between 0 and 5")
	ErrNotFound       = errors.New("review: not found")
)

type ReviewID string

// Review is a rating with free text attached to a place by a user.
// Ratings live on the closed range [0, 5].
type Review struct {
	ID        ReviewID
	AuthorID  string
	PlaceID   place.PlaceID
	Text      string
	Rating    float64
	CreatedAt time.Time
	UpdatedAt time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReviewID) (*Review, error)
	ByPlace(ctx context.Context, placeID place.PlaceID) ([]*Review, error)
	Save(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id ReviewID) error
}

type CreateParams struct {
	ID       ReviewID
	AuthorID string
	PlaceID  place.PlaceID
	Text     string
	Rating   float64
	Now      time.Time
}

func New(params CreateParams) (*Review, error) {
	if strings.TrimSpace(params.AuthorID) == "" {
		return nil, ErrAuthorRequired
	}
	if strings.TrimSpace(string(params.PlaceID)) == "" {
		return nil, ErrPlaceRequired
	}
	text := strings.TrimSpace(params.Text)
	if text == "" {
		return nil, ErrTextRequired
	}
	if !validRating(params.Rating) {
		return nil, ErrInvalidRating
	}

	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	r := &Review{
		ID:        params.ID,
		AuthorID:  params.AuthorID,
		PlaceID:   params.PlaceID,
		Text:      text,
		Rating:    params.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.Record(ReviewSubmitted{ReviewID: r.ID, PlaceID: r.PlaceID, AuthorID: r.AuthorID, Rating: r.Rating, At: now})
	return r, nil
}

// UpdateText and UpdateRating are the only permitted mutations; author
// and place references are immutable.
func (r *Review) UpdateText(text string, now time.Time) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrTextRequired
	}
	r.Text = text
	r.touch(now)
	r.Record(ReviewUpdated{ReviewID: r.ID, PlaceID: r.PlaceID, At: r.UpdatedAt})
	return nil
}

func (r *Review) UpdateRating(rating float64, now time.Time) error {
	if !validRating(rating) {
		return ErrInvalidRating
	}
	r.Rating = rating
	r.touch(now)
	r.Record(ReviewUpdated{ReviewID: r.ID, PlaceID: r.PlaceID, At: r.UpdatedAt})
	return nil
}

func (r *Review) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	r.UpdatedAt = now.UTC()
}

func validRating(rating float64) bool {
	return rating >= 0 && rating <= 5
}

// Ratings projects the rating values out of a review set, in input
// order, for summary recomputation.
func Ratings(reviews []*Review) []float64 {
	out := make([]float64, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, r.Rating)
	}
	return out
}
