package daterange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/shared/daterange"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		dr, err := daterange.New(day(10), day(15))
		require.NoError(t, err)
		assert.Equal(t, day(10), dr.From)
		assert.Equal(t, day(15), dr.Until)
		assert.Equal(t, 5, dr.Nights())
	})

	t.Run("zero length stay is allowed", func(t *testing.T) {
		dr, err := daterange.New(day(10), day(10))
		require.NoError(t, err)
		assert.Equal(t, 0, dr.Nights())
	})

	t.Run("from after until is rejected", func(t *testing.T) {
		_, err := daterange.New(day(15), day(10))
		assert.ErrorIs(t, err, daterange.ErrInvalidRange)
	})

	t.Run("missing bounds are rejected", func(t *testing.T) {
		_, err := daterange.New(time.Time{}, day(10))
		assert.ErrorIs(t, err, daterange.ErrInvalidRange)
	})
}

func TestConflicts(t *testing.T) {
	booked := daterange.DateRange{From: day(10), Until: day(15)}

	cases := []struct {
		name      string
		candidate daterange.DateRange
		conflicts bool
	}{
		{"entirely before", daterange.DateRange{From: day(1), Until: day(5)}, false},
		{"ends exactly at booked start", daterange.DateRange{From: day(5), Until: day(10)}, false},
		{"runs into booked start", daterange.DateRange{From: day(5), Until: day(11)}, true},
		{"same start", daterange.DateRange{From: day(10), Until: day(12)}, true},
		{"starts inside", daterange.DateRange{From: day(12), Until: day(20)}, true},
		{"fully inside", daterange.DateRange{From: day(11), Until: day(14)}, true},
		{"covers booked range", daterange.DateRange{From: day(8), Until: day(20)}, true},
		{"starts exactly at booked end", daterange.DateRange{From: day(15), Until: day(20)}, false},
		{"entirely after", daterange.DateRange{From: day(20), Until: day(25)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.conflicts, tc.candidate.Conflicts(booked))
		})
	}
}

func TestContainsDate(t *testing.T) {
	dr := daterange.DateRange{From: day(10), Until: day(15)}
	assert.True(t, dr.ContainsDate(day(10)))
	assert.True(t, dr.ContainsDate(day(14)))
	assert.False(t, dr.ContainsDate(day(15)))
	assert.False(t, dr.ContainsDate(day(9)))
}
