package place

// ReviewSummary is the derived rating cache kept on the place for fast
// catalog reads. It must stay consistent with the referenced review set
// after every review mutation.
type ReviewSummary struct {
	Count   int
	Average float64
}

// RecomputeReviewSummary derives the summary from the live set of
// ratings. An empty set yields a zero average, not NaN. The computation
// is a plain floating-point mean with no rounding applied, so repeated
// recomputation over an unchanged set is stable.
func RecomputeReviewSummary(ratings []float64) ReviewSummary {
	if len(ratings) == 0 {
		return ReviewSummary{}
	}
	var sum float64
	for _, rating := range ratings {
		sum += rating
	}
	return ReviewSummary{
		Count:   len(ratings),
		Average: sum / float64(len(ratings)),
	}
}

// SetReviewSummary persists a freshly recomputed summary on the
// aggregate.
func (p *Place) SetReviewSummary(summary ReviewSummary) {
	p.Reviews = summary
}
