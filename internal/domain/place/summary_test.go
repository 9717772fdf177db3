package place_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/internal/domain/place"
)

func TestRecomputeReviewSummary(t *testing.T) {
	t.Run("mean of all ratings", func(t *testing.T) {
		summary := place.RecomputeReviewSummary([]float64{3, 5, 4})
		assert.Equal(t, 3, summary.Count)
		assert.InDelta(t, 4.0, summary.Average, 1e-9)
	})

	t.Run("removing a rating changes the mean", func(t *testing.T) {
		summary := place.RecomputeReviewSummary([]float64{3, 4})
		assert.Equal(t, 2, summary.Count)
		assert.InDelta(t, 3.5, summary.Average, 1e-9)
	})

	t.Run("empty set yields zero average", func(t *testing.T) {
		summary := place.RecomputeReviewSummary(nil)
		assert.Equal(t, 0, summary.Count)
		assert.Zero(t, summary.Average)
	})

	t.Run("recomputation is idempotent", func(t *testing.T) {
		ratings := []float64{0, 2.5, 5}
		first := place.RecomputeReviewSummary(ratings)
		second := place.RecomputeReviewSummary(ratings)
		assert.Equal(t, first, second)
	})
}
