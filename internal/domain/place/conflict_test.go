package place_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/place"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func testPlace(t *testing.T) *place.Place {
	t.Helper()
	p, err := place.New(place.CreateParams{
		ID:          "place-1",
		Owner:       "host-1",
		Name:        "Canal loft",
		Description: "Bright loft by the canal",
		CostPerDay:  120,
		Type:        place.TypeEntirePlace,
		BedAmount:   2,
		MaxPersons:  4,
		Rooms:       place.Rooms{Bedrooms: 2, Bathrooms: 1},
		Now:         day(1),
	})
	require.NoError(t, err)
	return p
}

func TestIsBookingValidPreconditions(t *testing.T) {
	p := testPlace(t)
	now := day(2)

	cases := []struct {
		name    string
		persons int
		from    time.Time
		until   time.Time
		kind    fault.Kind
		message string
	}{
		{"zero persons", 0, day(10), day(12), fault.KindInvalidArgument, "party size must be positive"},
		{"negative persons", -3, day(10), day(12), fault.KindInvalidArgument, "party size must be positive"},
		{"over capacity", 5, day(10), day(12), fault.KindInvalidArgument, "exceeds capacity"},
		{"missing from", 2, time.Time{}, day(12), fault.KindInvalidArgument, "malformed date"},
		{"missing until", 2, day(10), time.Time{}, fault.KindInvalidArgument, "malformed date"},
		{"from in the past", 2, day(1), day(12), fault.KindInvalidArgument, "from date has passed"},
		{"from after until", 2, day(12), day(10), fault.KindInvalidArgument, "from after until"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := p.IsBookingValid(tc.persons, tc.from, tc.until, now, nil)
			require.Error(t, err)
			assert.True(t, fault.IsKind(err, tc.kind), "got %v", err)
			assert.Equal(t, tc.message, fault.MessageOf(err))
		})
	}

	t.Run("persons checked before dates", func(t *testing.T) {
		// Short-circuit order: a bad party size wins over a bad date.
		err := p.IsBookingValid(0, day(1), day(12), now, nil)
		assert.Equal(t, "party size must be positive", fault.MessageOf(err))
	})

	t.Run("from equal to now is accepted", func(t *testing.T) {
		assert.NoError(t, p.IsBookingValid(2, now, day(12), now, nil))
	})

	t.Run("zero length stay is accepted", func(t *testing.T) {
		assert.NoError(t, p.IsBookingValid(2, day(10), day(10), now, nil))
	})
}

func TestIsBookingValidOverlap(t *testing.T) {
	p := testPlace(t)
	now := day(2)
	booked := []daterange.DateRange{{From: day(10), Until: day(15)}}

	cases := []struct {
		name     string
		from     time.Time
		until    time.Time
		conflict bool
	}{
		{"before existing stay", day(5), day(10), false},
		{"touches existing start", day(10), day(12), true},
		{"starts at existing end", day(15), day(20), false},
		{"runs into existing stay", day(8), day(11), true},
		{"inside existing stay", day(11), day(13), true},
		{"covers existing stay", day(9), day(16), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := p.IsBookingValid(2, tc.from, tc.until, now, booked)
			if tc.conflict {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, fault.KindConflict), "got %v", err)
				assert.Equal(t, "overlaps existing booking", fault.MessageOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("any overlapping booking in the set rejects", func(t *testing.T) {
		many := []daterange.DateRange{
			{From: day(3), Until: day(5)},
			{From: day(20), Until: day(25)},
		}
		assert.NoError(t, p.IsBookingValid(2, day(6), day(9), now, many))
		err := p.IsBookingValid(2, day(6), day(21), now, many)
		assert.True(t, fault.IsKind(err, fault.KindConflict))
	})
}
