package place_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/place"
)

func TestNew(t *testing.T) {
	base := place.CreateParams{
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
	}

	t.Run("valid place records creation event", func(t *testing.T) {
		p, err := place.New(base)
		require.NoError(t, err)
		assert.Equal(t, place.PlaceID("place-1"), p.ID)
		events := p.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "place.created", events[0].EventName())
	})

	cases := []struct {
		name   string
		mutate func(*place.CreateParams)
		errIs  error
	}{
		{"missing owner", func(p *place.CreateParams) { p.Owner = "" }, place.ErrOwnerRequired},
		{"missing name", func(p *place.CreateParams) { p.Name = "  " }, place.ErrNameRequired},
		{"missing description", func(p *place.CreateParams) { p.Description = "" }, place.ErrDescriptionRequired},
		{"free place", func(p *place.CreateParams) { p.CostPerDay = 0 }, place.ErrCostPerDay},
		{"unknown type", func(p *place.CreateParams) { p.Type = "castle" }, place.ErrInvalidType},
		{"no beds", func(p *place.CreateParams) { p.BedAmount = 0 }, place.ErrBedAmount},
		{"zero capacity", func(p *place.CreateParams) { p.MaxPersons = 0 }, place.ErrMaxPersons},
		{"fractional area below one", func(p *place.CreateParams) { p.Area = 0.5 }, place.ErrInvalidArea},
		{"negative bathrooms", func(p *place.CreateParams) { p.Rooms.Bathrooms = -1 }, place.ErrNegativeRooms},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := base
			tc.mutate(&params)
			_, err := place.New(params)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestParseType(t *testing.T) {
	for raw, want := range map[string]place.PlaceType{
		"Private Room": place.TypePrivateRoom,
		"shared_room":  place.TypeSharedRoom,
		"Entire Place": place.TypeEntirePlace,
	} {
		got, err := place.ParseType(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := place.ParseType("boat")
	assert.ErrorIs(t, err, place.ErrInvalidType)
}

func TestPhotoSet(t *testing.T) {
	p := testPlace(t)

	t.Run("new main photo demotes the previous one", func(t *testing.T) {
		p.SetMainPhoto("photo-1", day(2))
		p.SetMainPhoto("photo-2", day(3))
		assert.Equal(t, "photo-2", p.Photos.MainID)
		assert.Equal(t, []string{"photo-1"}, p.Photos.SecondaryIDs)
	})

	t.Run("all lists main first", func(t *testing.T) {
		p.AddSecondaryPhoto("photo-3", day(4))
		assert.Equal(t, []string{"photo-2", "photo-1", "photo-3"}, p.Photos.All())
	})

	t.Run("clear main returns the removed id", func(t *testing.T) {
		removed := p.ClearMainPhoto(day(5))
		assert.Equal(t, "photo-2", removed)
		assert.Empty(t, p.Photos.MainID)
	})

	t.Run("remove secondary", func(t *testing.T) {
		p.RemoveSecondaryPhoto("photo-1", day(6))
		assert.Equal(t, []string{"photo-3"}, p.Photos.SecondaryIDs)
	})
}

func TestBookingAndReviewRefs(t *testing.T) {
	p := testPlace(t)

	p.AttachBooking("b-1", day(2))
	p.AttachBooking("b-2", day(2))
	p.DetachBooking("b-1", day(3))
	assert.Equal(t, []string{"b-2"}, p.BookingIDs)

	// Detaching an unknown id is a no-op.
	p.DetachBooking("b-404", day(3))
	assert.Equal(t, []string{"b-2"}, p.BookingIDs)

	p.AttachReview("r-1", day(4))
	p.AttachReview("r-2", day(4))
	p.DetachReview("r-2", day(5))
	assert.Equal(t, []string{"r-1"}, p.ReviewIDs)
}

func TestUpdateAttributes(t *testing.T) {
	p := testPlace(t)
	err := p.UpdateAttributes(place.UpdateParams{
		Name:        "Quiet canal loft",
		Description: "Now with a workspace",
		Area:        42,
		CostPerDay:  140,
		Type:        place.TypePrivateRoom,
		BedAmount:   1,
		MaxPersons:  2,
		Rooms:       place.Rooms{Bedrooms: 1, Bathrooms: 1},
		Amenities:   place.Amenities{Wifi: true, Heating: true},
		Rules:       place.Rules{Pets: true},
		Now:         day(7),
	})
	require.NoError(t, err)
	assert.Equal(t, "Quiet canal loft", p.Name)
	assert.Equal(t, int64(140), p.CostPerDay)
	assert.True(t, p.Amenities.Wifi)
	assert.True(t, p.Rules.Pets)

	err = p.UpdateAttributes(place.UpdateParams{Name: "", Description: "x", CostPerDay: 1, Type: place.TypeSharedRoom, BedAmount: 1, MaxPersons: 1})
	assert.ErrorIs(t, err, place.ErrNameRequired)
}
