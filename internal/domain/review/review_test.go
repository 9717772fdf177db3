package review_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/review"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	base := review.CreateParams{
		ID:       "r-1",
		AuthorID: "tenant-1",
		PlaceID:  "place-1",
		Text:     "  Great stay  ",
		Rating:   4,
		Now:      day(1),
	}

	t.Run("valid review trims text", func(t *testing.T) {
		r, err := review.New(base)
		require.NoError(t, err)
		assert.Equal(t, "Great stay", r.Text)
		assert.Equal(t, 4.0, r.Rating)
		events := r.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "review.submitted", events[0].EventName())
	})

	t.Run("rating bounds are closed", func(t *testing.T) {
		for _, rating := range []float64{0, 2.5, 5} {
			params := base
			params.Rating = rating
			_, err := review.New(params)
			assert.NoError(t, err, "rating %v", rating)
		}
		for _, rating := range []float64{-0.1, 5.1, 6} {
			params := base
			params.Rating = rating
			_, err := review.New(params)
			assert.ErrorIs(t, err, review.ErrInvalidRating, "rating %v", rating)
		}
	})

	cases := []struct {
		name   string
		mutate func(*review.CreateParams)
		errIs  error
	}{
		{"missing author", func(p *review.CreateParams) { p.AuthorID = "" }, review.ErrAuthorRequired},
		{"missing place", func(p *review.CreateParams) { p.PlaceID = "" }, review.ErrPlaceRequired},
		{"blank text", func(p *review.CreateParams) { p.Text = "   " }, review.ErrTextRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := base
			tc.mutate(&params)
			_, err := review.New(params)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestUpdates(t *testing.T) {
	r, err := review.New(review.CreateParams{
		ID: "r-1", AuthorID: "tenant-1", PlaceID: "place-1", Text: "ok", Rating: 3, Now: day(1),
	})
	require.NoError(t, err)
	r.ClearEvents()

	require.NoError(t, r.UpdateText("much better", day(2)))
	assert.Equal(t, "much better", r.Text)
	assert.Equal(t, day(2), r.UpdatedAt)

	require.NoError(t, r.UpdateRating(5, day(3)))
	assert.Equal(t, 5.0, r.Rating)

	assert.ErrorIs(t, r.UpdateText(" ", day(4)), review.ErrTextRequired)
	assert.ErrorIs(t, r.UpdateRating(7, day(4)), review.ErrInvalidRating)

	events := r.PendingEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "review.updated", events[0].EventName())
}

func TestRatings(t *testing.T) {
	reviews := []*review.Review{{Rating: 3}, {Rating: 5}, {Rating: 4}}
	assert.Equal(t, []float64{3, 5, 4}, review.Ratings(reviews))
}
