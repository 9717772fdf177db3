package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainphoto "stayhub/internal/domain/photo"
)

type PhotoRepository struct {
	col *mongo.Collection
}

func NewPhotoRepository(db *mongo.Database) *PhotoRepository {
	return &PhotoRepository{col: db.Collection("photos")}
}

func (r *PhotoRepository) ByID(ctx context.Context, id domainphoto.PhotoID) (*domainphoto.Photo, error) {
	var doc photoDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainphoto.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PhotoRepository) Save(ctx context.Context, p *domainphoto.Photo) error {
	doc := newPhotoDocument(p)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *PhotoRepository) Delete(ctx context.Context, id domainphoto.PhotoID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainphoto.ErrNotFound
	}
	return nil
}

type photoDocument struct {
	ID          string `bson:"_id"`
	OwnerID     string `bson:"owner_id"`
	PlaceID     string `bson:"place_id"`
	ObjectKey   string `bson:"object_key"`
	URL         string `bson:"url"`
	ContentType string `bson:"content_type"`
	CreatedAt   int64  `bson:"created_at"`
}

func newPhotoDocument(p *domainphoto.Photo) photoDocument {
	return photoDocument{
		ID:          string(p.ID),
		OwnerID:     p.OwnerID,
		PlaceID:     p.PlaceID,
		ObjectKey:   p.ObjectKey,
		URL:         p.URL,
		ContentType: p.ContentType,
		CreatedAt:   p.CreatedAt.UnixMilli(),
	}
}

func (d photoDocument) toAggregate() *domainphoto.Photo {
	return &domainphoto.Photo{
		ID:          domainphoto.PhotoID(d.ID),
		OwnerID:     d.OwnerID,
		PlaceID:     d.PlaceID,
		ObjectKey:   d.ObjectKey,
		URL:         d.URL,
		ContentType: d.ContentType,
		CreatedAt:   timestampToTime(d.CreatedAt),
	}
}

var _ domainphoto.Repository = (*PhotoRepository)(nil)
