// Package dto holds the wire representations returned by the HTTP
// layer. Every response body is wrapped in the same envelope: success
// plus either data or a message.
package dto

import (
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/chat"
	"stayhub/internal/domain/photo"
	"stayhub/internal/domain/place"
	"stayhub/internal/domain/review"
	"stayhub/internal/domain/user"
)

type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

type Place struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"owner_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Area        float64       `json:"area,omitempty"`
	CostPerDay  int64         `json:"cost_per_day"`
	Type        string        `json:"type"`
	BedAmount   int           `json:"bed_amount"`
	MaxPersons  int           `json:"max_persons"`
	Rooms       Rooms         `json:"rooms"`
	Amenities   Amenities     `json:"amenities"`
	Rules       Rules         `json:"rules"`
	Location    Location      `json:"location"`
	Reviews     ReviewSummary `json:"reviews"`
	MainPhoto   string        `json:"main_photo,omitempty"`
	Photos      []string      `json:"photos,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Rooms struct {
	Bedrooms  int `json:"bedrooms"`
	Bathrooms int `json:"bathrooms"`
}

type Amenities struct {
	Wifi            bool `json:"wifi"`
	AirConditioning bool `json:"air_conditioning"`
	Heating         bool `json:"heating"`
	Kitchen         bool `json:"kitchen"`
	Television      bool `json:"television"`
	Parking         bool `json:"parking"`
	Elevator        bool `json:"elevator"`
	SittingPlace    bool `json:"sitting_place"`
}

type Rules struct {
	Smoking bool `json:"smoking"`
	Pets    bool `json:"pets"`
	Events  bool `json:"events"`
}

type Location struct {
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Address       string  `json:"address"`
	Neighbourhood string  `json:"neighbourhood,omitempty"`
	Transport     string  `json:"transport,omitempty"`
}

type ReviewSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

func NewPlace(p *place.Place) Place {
	return Place{
		ID:          string(p.ID),
		OwnerID:     string(p.Owner),
		Name:        p.Name,
		Description: p.Description,
		Area:        p.Area,
		CostPerDay:  p.CostPerDay,
		Type:        string(p.Type),
		BedAmount:   p.BedAmount,
		MaxPersons:  p.MaxPersons,
		Rooms:       Rooms(p.Rooms),
		Amenities:   Amenities(p.Amenities),
		Rules:       Rules(p.Rules),
		Location:    Location(p.Location),
		Reviews:     ReviewSummary(p.Reviews),
		MainPhoto:   p.Photos.MainID,
		Photos:      p.Photos.SecondaryIDs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewPlaces(items []*place.Place) []Place {
	out := make([]Place, 0, len(items))
	for _, p := range items {
		out = append(out, NewPlace(p))
	}
	return out
}

type Booking struct {
	ID        string    `json:"id"`
	PlaceID   string    `json:"place_id"`
	TenantID  string    `json:"tenant_id"`
	From      time.Time `json:"from"`
	Until     time.Time `json:"until"`
	Persons   int       `json:"persons"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBooking(b *booking.Booking) Booking {
	return Booking{
		ID:        string(b.ID),
		PlaceID:   string(b.PlaceID),
		TenantID:  b.TenantID,
		From:      b.Range.From,
		Until:     b.Range.Until,
		Persons:   b.Persons,
		CreatedAt: b.CreatedAt,
	}
}

func NewBookings(items []*booking.Booking) []Booking {
	out := make([]Booking, 0, len(items))
	for _, b := range items {
		out = append(out, NewBooking(b))
	}
	return out
}

type Review struct {
	ID        string    `json:"id"`
	PlaceID   string    `json:"place_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewReview(r *review.Review) Review {
	return Review{
		ID:        string(r.ID),
		PlaceID:   string(r.PlaceID),
		AuthorID:  r.AuthorID,
		Text:      r.Text,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewReviews(items []*review.Review) []Review {
	out := make([]Review, 0, len(items))
	for _, r := range items {
		out = append(out, NewReview(r))
	}
	return out
}

type User struct {
	ID          string    `json:"id"`
	UserName    string    `json:"user_name"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Tel         string    `json:"tel"`
	DateOfBirth time.Time `json:"date_of_birth,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	Approved    bool      `json:"approved"`
	Blocked     bool      `json:"blocked"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUser(u *user.User) User {
	return User{
		ID:          string(u.ID),
		UserName:    u.UserName,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Role:        string(u.Role),
		Tel:         u.Tel,
		DateOfBirth: u.DateOfBirth,
		Avatar:      u.AvatarPhotoID,
		Approved:    u.ApprovedByAdmin,
		Blocked:     u.Blocked,
		CreatedAt:   u.CreatedAt,
	}
}

func NewUsers(items []*user.User) []User {
	out := make([]User, 0, len(items))
	for _, u := range items {
		out = append(out, NewUser(u))
	}
	return out
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Photo struct {
	ID          string    `json:"id"`
	PlaceID     string    `json:"place_id"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewPhoto(p *photo.Photo) Photo {
	return Photo{
		ID:          string(p.ID),
		PlaceID:     p.PlaceID,
		URL:         p.URL,
		ContentType: p.ContentType,
		CreatedAt:   p.CreatedAt,
	}
}

type Message struct {
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Conversation struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	Messages     []Message `json:"messages"`
	StartedAt    time.Time `json:"started_at"`
}

func NewConversation(c *chat.Conversation) Conversation {
	msgs := make([]Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		msgs = append(msgs, Message{SenderID: m.SenderID, Text: m.Text, CreatedAt: m.CreatedAt})
	}
	return Conversation{
		ID:           string(c.ID),
		Participants: []string{c.UserA, c.UserB},
		Messages:     msgs,
		StartedAt:    c.StartedAt,
	}
}

func NewConversations(items []*chat.Conversation) []Conversation {
	out := make([]Conversation, 0, len(items))
	for _, c := range items {
		out = append(out, NewConversation(c))
	}
	return out
}
