package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainplace "stayhub/internal/domain/place"
	domainreview "stayhub/internal/domain/review"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	col := db.Collection("reviews")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "place_id", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &ReviewRepository{col: col}
}

func (r *ReviewRepository) ByID(ctx context.Context, id domainreview.ReviewID) (*domainreview.Review, error) {
	var doc reviewDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreview.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReviewRepository) ByPlace(ctx context.Context, placeID domainplace.PlaceID) ([]*domainreview.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"place_id": string(placeID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainreview.Review
	for cursor.Next(ctx) {
		var doc reviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *ReviewRepository) Save(ctx context.Context, rev *domainreview.Review) error {
	doc := newReviewDocument(rev)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *ReviewRepository) Delete(ctx context.Context, id domainreview.ReviewID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainreview.ErrNotFound
	}
	return nil
}

type reviewDocument struct {
	ID        string  `bson:"_id"`
	AuthorID  string  `bson:"author_id"`
	PlaceID   string  `bson:"place_id"`
	Text      string  `bson:"text"`
	Rating    float64 `bson:"rating"`
	CreatedAt int64   `bson:"created_at"`
	UpdatedAt int64   `bson:"updated_at"`
}

func newReviewDocument(rev *domainreview.Review) reviewDocument {
	return reviewDocument{
		ID:        string(rev.ID),
		AuthorID:  rev.AuthorID,
		PlaceID:   string(rev.PlaceID),
		Text:      rev.Text,
		Rating:    rev.Rating,
		CreatedAt: rev.CreatedAt.UnixMilli(),
		UpdatedAt: rev.UpdatedAt.UnixMilli(),
	}
}

func (d reviewDocument) toAggregate() *domainreview.Review {
	return &domainreview.Review{
		ID:        domainreview.ReviewID(d.ID),
		AuthorID:  d.AuthorID,
		PlaceID:   domainplace.PlaceID(d.PlaceID),
		Text:      d.Text,
		Rating:    d.Rating,
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
	}
}

var _ domainreview.Repository = (*ReviewRepository)(nil)
