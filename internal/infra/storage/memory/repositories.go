// Package memory provides in-memory implementations of every
// repository and store. They back the test suites and the demo wiring
// when no external services are reachable.
package memory

import (
	"context"
	"sort"
	"sync"

	domainbooking "stayhub/internal/domain/booking"
	domainchat "stayhub/internal/domain/chat"
	domainphoto "stayhub/internal/domain/photo"
	domainplace "stayhub/internal/domain/place"
	domainreview "stayhub/internal/domain/review"
)

// PlaceRepository stores places in memory. Not suitable for production.
type PlaceRepository struct {
	mu    sync.RWMutex
	items map[domainplace.PlaceID]*domainplace.Place
}

func NewPlaceRepository() *PlaceRepository {
	return &PlaceRepository{items: make(map[domainplace.PlaceID]*domainplace.Place)}
}

func (r *PlaceRepository) ByID(ctx context.Context, id domainplace.PlaceID) (*domainplace.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domainplace.ErrNotFound
	}
	return clonePlace(p), nil
}

func (r *PlaceRepository) ByOwner(ctx context.Context, owner domainplace.OwnerID) ([]*domainplace.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainplace.Place, 0)
	for _, p := range r.items {
		if p.Owner == owner {
			out = append(out, clonePlace(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *PlaceRepository) Save(ctx context.Context, p *domainplace.Place) error {
	if p == nil || p.ID == "" {
		return domainplace.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = clonePlace(p)
	return nil
}

func (r *PlaceRepository) Delete(ctx context.Context, id domainplace.PlaceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainplace.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func clonePlace(p *domainplace.Place) *domainplace.Place {
	if p == nil {
		return nil
	}
	out := *p
	out.ReviewIDs = append([]string(nil), p.ReviewIDs...)
	out.BookingIDs = append([]string(nil), p.BookingIDs...)
	out.Photos.SecondaryIDs = append([]string(nil), p.Photos.SecondaryIDs...)
	return &out
}

// BookingRepository stores bookings in memory.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepository) ByPlace(ctx context.Context, placeID domainplace.PlaceID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.PlaceID == placeID {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Range.From.Before(out[j].Range.From) })
	return out, nil
}

func (r *BookingRepository) ByTenant(ctx context.Context, tenantID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.TenantID == tenantID {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domainbooking.Booking) error {
	if b == nil || b.ID == "" {
		return domainbooking.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id domainbooking.BookingID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainbooking.ErrBookingNotFound
	}
	delete(r.items, id)
	return nil
}

func cloneBooking(b *domainbooking.Booking) *domainbooking.Booking {
	if b == nil {
		return nil
	}
	out := *b
	return &out
}

// ReviewRepository stores reviews in memory.
type ReviewRepository struct {
	mu    sync.RWMutex
	items map[domainreview.ReviewID]*domainreview.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{items: make(map[domainreview.ReviewID]*domainreview.Review)}
}

func (r *ReviewRepository) ByID(ctx context.Context, id domainreview.ReviewID) (*domainreview.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rev, ok := r.items[id]
	if !ok {
		return nil, domainreview.ErrNotFound
	}
	return cloneReview(rev), nil
}

func (r *ReviewRepository) ByPlace(ctx context.Context, placeID domainplace.PlaceID) ([]*domainreview.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainreview.Review, 0)
	for _, rev := range r.items {
		if rev.PlaceID == placeID {
			out = append(out, cloneReview(rev))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ReviewRepository) Save(ctx context.Context, rev *domainreview.Review) error {
	if rev == nil || rev.ID == "" {
		return domainreview.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[rev.ID] = cloneReview(rev)
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id domainreview.ReviewID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainreview.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func cloneReview(rev *domainreview.Review) *domainreview.Review {
	if rev == nil {
		return nil
	}
	out := *rev
	return &out
}

// PhotoRepository stores photo documents in memory.
type PhotoRepository struct {
	mu    sync.RWMutex
	items map[domainphoto.PhotoID]*domainphoto.Photo
}

func NewPhotoRepository() *PhotoRepository {
	return &PhotoRepository{items: make(map[domainphoto.PhotoID]*domainphoto.Photo)}
}

func (r *PhotoRepository) ByID(ctx context.Context, id domainphoto.PhotoID) (*domainphoto.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ph, ok := r.items[id]
	if !ok {
		return nil, domainphoto.ErrNotFound
	}
	out := *ph
	return &out, nil
}

func (r *PhotoRepository) Save(ctx context.Context, ph *domainphoto.Photo) error {
	if ph == nil || ph.ID == "" {
		return domainphoto.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *ph
	r.items[ph.ID] = &stored
	return nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id domainphoto.PhotoID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainphoto.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// ConversationRepository stores message threads in memory.
type ConversationRepository struct {
	mu    sync.RWMutex
	items map[domainchat.ConversationID]*domainchat.Conversation
}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{items: make(map[domainchat.ConversationID]*domainchat.Conversation)}
}

func (r *ConversationRepository) ByID(ctx context.Context, id domainchat.ConversationID) (*domainchat.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, domainchat.ErrNotFound
	}
	return cloneConversation(c), nil
}

func (r *ConversationRepository) Between(ctx context.Context, userA, userB string) (*domainchat.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if (c.UserA == userA && c.UserB == userB) || (c.UserA == userB && c.UserB == userA) {
			return cloneConversation(c), nil
		}
	}
	return nil, domainchat.ErrNotFound
}

func (r *ConversationRepository) ByUser(ctx context.Context, userID string) ([]*domainchat.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainchat.Conversation, 0)
	for _, c := range r.items {
		if c.Involves(userID) {
			out = append(out, cloneConversation(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

func (r *ConversationRepository) Save(ctx context.Context, c *domainchat.Conversation) error {
	if c == nil || c.ID == "" {
		return domainchat.ErrParticipantsRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = cloneConversation(c)
	return nil
}

func cloneConversation(c *domainchat.Conversation) *domainchat.Conversation {
	if c == nil {
		return nil
	}
	out := *c
	out.Messages = append([]domainchat.Message(nil), c.Messages...)
	return &out
}

var (
	_ domainplace.Repository   = (*PlaceRepository)(nil)
	_ domainbooking.Repository = (*BookingRepository)(nil)
	_ domainreview.Repository  = (*ReviewRepository)(nil)
	_ domainphoto.Repository   = (*PhotoRepository)(nil)
	_ domainchat.Repository    = (*ConversationRepository)(nil)
)
