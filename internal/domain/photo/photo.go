package photo

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrIDRequired  = errors.New("photo: id is required")
	ErrKeyRequired = errors.New("photo: object key is required")
	ErrNotFound    = errors.New("photo: not found")
)

type PhotoID string

// Photo is a stored image reference. The binary lives in object
// storage; the document only carries the key and the public URL.
type Photo struct {
	ID          PhotoID
	OwnerID     string
	PlaceID     string
	ObjectKey   string
	URL         string
	ContentType string
	CreatedAt   time.Time
}

type Repository interface {
	ByID(ctx context.Context, id PhotoID) (*Photo, error)
	Save(ctx context.Context, p *Photo) error
	Delete(ctx context.Context, id PhotoID) error
}

type CreateParams struct {
	ID          PhotoID
	OwnerID     string
	PlaceID     string
	ObjectKey   string
	URL         string
	ContentType string
	Now         time.Time
}

func New(params CreateParams) (*Photo, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(params.ObjectKey) == "" {
		return nil, ErrKeyRequired
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	return &Photo{
		ID:          params.ID,
		OwnerID:     params.OwnerID,
		PlaceID:     params.PlaceID,
		ObjectKey:   strings.TrimSpace(params.ObjectKey),
		URL:         strings.TrimSpace(params.URL),
		ContentType: params.ContentType,
		CreatedAt:   now.UTC(),
	}, nil
}
