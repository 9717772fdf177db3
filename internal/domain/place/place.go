package place

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayhub/internal/domain/shared/events"
)

var (
	ErrIDRequired          = errors.New("place: id is required")
	ErrOwnerRequired       = errors.New("place: owner is required")
	ErrNameRequired        = errors.New("place: name is required")
	ErrDescriptionRequired = errors.New("place: description is required")
	ErrInvalidType         = errors.New("place: unknown place type")
	ErrCostPerDay          = errors.New("place: cost per day must be at least 1")
	ErrBedAmount           = errors.New("place: bed amount must be at least 1")
	ErrMaxPersons          = errors.New("place: max persons must be at least 1")
	ErrInvalidArea         = errors.New("place: area must be at least 1")
	ErrNegativeRooms       = errors.New("place: room counts must be non-negative")
	ErrNotFound            = errors.New("place: not found")
)

type PlaceID string
type OwnerID string

type PlaceType string

const (
	TypePrivateRoom PlaceType = "private_room"
	TypeSharedRoom  PlaceType = "shared_room"
	TypeEntirePlace PlaceType = "entire_place"
)

func ParseType(raw string) (PlaceType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "private_room", "private room":
		return TypePrivateRoom, nil
	case "shared_room", "shared room":
		return TypeSharedRoom, nil
	case "entire_place", "entire place":
		return TypeEntirePlace, nil
	default:
		return "", ErrInvalidType
	}
}

type Rooms struct {
	Bedrooms  int
	Bathrooms int
}

type Amenities struct {
	Wifi            bool
	AirConditioning bool
	Heating         bool
	Kitchen         bool
	Television      bool
	Parking         bool
	Elevator        bool
	SittingPlace    bool
}

type Rules struct {
	Smoking bool
	Pets    bool
	Events  bool
}

type Location struct {
	Lat           float64
	Lon           float64
	Address       string
	Neighbourhood string
	Transport     string
}

// PhotoSet keeps references to stored photos. The main photo is served
// on catalog pages; secondary photos back the gallery.
type PhotoSet struct {
	MainID       string
	SecondaryIDs []string
}

func (ps PhotoSet) All() []string {
	out := make([]string, 0, len(ps.SecondaryIDs)+1)
	if ps.MainID != "" {
		out = append(out, ps.MainID)
	}
	out = append(out, ps.SecondaryIDs...)
	return out
}

// Place is the aggregate root of the marketplace. Bookings, reviews and
// photos are related by id rather than embedded, so dependent records
// live in their own collections and the aggregate carries back
// references for conflict checks, aggregation and cascade deletes.
type Place struct {
	ID          PlaceID
	Owner       OwnerID
	Name        string
	Description string
	Area        float64
	CostPerDay  int64
	Type        PlaceType
	BedAmount   int
	MaxPersons  int
	Rooms       Rooms
	Amenities   Amenities
	Rules       Rules
	Location    Location
	Reviews     ReviewSummary
	ReviewIDs   []string
	BookingIDs  []string
	Photos      PhotoSet
	CreatedAt   time.Time
	UpdatedAt   time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id PlaceID) (*Place, error)
	ByOwner(ctx context.Context, owner OwnerID) ([]*Place, error)
	Save(ctx context.Context, p *Place) error
	Delete(ctx context.Context, id PlaceID) error
}

type CreateParams struct {
	ID          PlaceID
	Owner       OwnerID
	Name        string
	Description string
	Area        float64
	CostPerDay  int64
	Type        PlaceType
	BedAmount   int
	MaxPersons  int
	Rooms       Rooms
	Amenities   Amenities
	Rules       Rules
	Location    Location
	Now         time.Time
}

func New(params CreateParams) (*Place, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.Owner)) == "" {
		return nil, ErrOwnerRequired
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(params.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if err := validateAttributes(params.Area, params.CostPerDay, params.Type, params.BedAmount, params.MaxPersons, params.Rooms); err != nil {
		return nil, err
	}

	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	p := &Place{
		ID:          params.ID,
		Owner:       params.Owner,
		Name:        strings.TrimSpace(params.Name),
		Description: strings.TrimSpace(params.Description),
		Area:        params.Area,
		CostPerDay:  params.CostPerDay,
		Type:        params.Type,
		BedAmount:   params.BedAmount,
		MaxPersons:  params.MaxPersons,
		Rooms:       params.Rooms,
		Amenities:   params.Amenities,
		Rules:       params.Rules,
		Location:    params.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.Record(PlaceCreated{PlaceID: p.ID, Owner: p.Owner, At: now})
	return p, nil
}

type UpdateParams struct {
	Name        string
	Description string
	Area        float64
	CostPerDay  int64
	Type        PlaceType
	BedAmount   int
	MaxPersons  int
	Rooms       Rooms
	Amenities   Amenities
	Rules       Rules
	Location    Location
	Now         time.Time
}

// UpdateAttributes replaces the descriptive fields of the place. Review
// summary, photo and booking references are never touched here.
func (p *Place) UpdateAttributes(params UpdateParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(params.Description) == "" {
		return ErrDescriptionRequired
	}
	if err := validateAttributes(params.Area, params.CostPerDay, params.Type, params.BedAmount, params.MaxPersons, params.Rooms); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(params.Name)
	p.Description = strings.TrimSpace(params.Description)
	p.Area = params.Area
	p.CostPerDay = params.CostPerDay
	p.Type = params.Type
	p.BedAmount = params.BedAmount
	p.MaxPersons = params.MaxPersons
	p.Rooms = params.Rooms
	p.Amenities = params.Amenities
	p.Rules = params.Rules
	p.Location = params.Location
	p.touch(params.Now)
	p.Record(PlaceUpdated{PlaceID: p.ID, At: p.UpdatedAt})
	return nil
}

func validateAttributes(area float64, costPerDay int64, placeType PlaceType, bedAmount, maxPersons int, rooms Rooms) error {
	if area != 0 && area < 1 {
		return ErrInvalidArea
	}
	if costPerDay < 1 {
		return ErrCostPerDay
	}
	switch placeType {
	case TypePrivateRoom, TypeSharedRoom, TypeEntirePlace:
	default:
		return ErrInvalidType
	}
	if bedAmount < 1 {
		return ErrBedAmount
	}
	if maxPersons < 1 {
		return ErrMaxPersons
	}
	if rooms.Bedrooms < 0 || rooms.Bathrooms < 0 {
		return ErrNegativeRooms
	}
	return nil
}

// AttachBooking appends a booking back reference after a successful
// conflict check.
func (p *Place) AttachBooking(bookingID string, now time.Time) {
	p.BookingIDs = append(p.BookingIDs, bookingID)
	p.touch(now)
}

// DetachBooking removes a booking back reference. Missing ids are
// ignored so cancellation stays idempotent.
func (p *Place) DetachBooking(bookingID string, now time.Time) {
	p.BookingIDs = removeID(p.BookingIDs, bookingID)
	p.touch(now)
}

func (p *Place) AttachReview(reviewID string, now time.Time) {
	p.ReviewIDs = append(p.ReviewIDs, reviewID)
	p.touch(now)
}

func (p *Place) DetachReview(reviewID string, now time.Time) {
	p.ReviewIDs = removeID(p.ReviewIDs, reviewID)
	p.touch(now)
}

// SetMainPhoto installs a new main photo. The previous main photo is
// demoted to the secondary set rather than dropped.
func (p *Place) SetMainPhoto(photoID string, now time.Time) {
	if p.Photos.MainID != "" {
		p.Photos.SecondaryIDs = append(p.Photos.SecondaryIDs, p.Photos.MainID)
	}
	p.Photos.MainID = photoID
	p.touch(now)
}

func (p *Place) ClearMainPhoto(now time.Time) string {
	removed := p.Photos.MainID
	p.Photos.MainID = ""
	p.touch(now)
	return removed
}

func (p *Place) AddSecondaryPhoto(photoID string, now time.Time) {
	p.Photos.SecondaryIDs = append(p.Photos.SecondaryIDs, photoID)
	p.touch(now)
}

func (p *Place) RemoveSecondaryPhoto(photoID string, now time.Time) {
	p.Photos.SecondaryIDs = removeID(p.Photos.SecondaryIDs, photoID)
	p.touch(now)
}

func (p *Place) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	p.UpdatedAt = now.UTC()
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
