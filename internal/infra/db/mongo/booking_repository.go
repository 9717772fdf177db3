package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "stayhub/internal/domain/booking"
	domainplace "stayhub/internal/domain/place"
	"stayhub/internal/domain/shared/daterange"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	col := db.Collection("bookings")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "place_id", Value: 1}, {Key: "from", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &BookingRepository{col: col}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) ByPlace(ctx context.Context, placeID domainplace.PlaceID) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{"place_id": string(placeID)}, bson.D{{Key: "from", Value: 1}})
}

func (r *BookingRepository) ByTenant(ctx context.Context, tenantID string) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{"tenant_id": tenantID}, bson.D{{Key: "created_at", Value: 1}})
}

func (r *BookingRepository) Create(ctx context.Context, b *domainbooking.Booking) error {
	_, err := r.col.InsertOne(ctx, newBookingDocument(b))
	return err
}

func (r *BookingRepository) Delete(ctx context.Context, id domainbooking.BookingID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainbooking.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]*domainbooking.Booking, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type bookingDocument struct {
	ID        string `bson:"_id"`
	TenantID  string `bson:"tenant_id"`
	PlaceID   string `bson:"place_id"`
	From      int64  `bson:"from"`
	Until     int64  `bson:"until"`
	Persons   int    `bson:"persons"`
	CreatedAt int64  `bson:"created_at"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:        string(b.ID),
		TenantID:  b.TenantID,
		PlaceID:   string(b.PlaceID),
		From:      b.Range.From.UnixMilli(),
		Until:     b.Range.Until.UnixMilli(),
		Persons:   b.Persons,
		CreatedAt: b.CreatedAt.UnixMilli(),
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:        domainbooking.BookingID(d.ID),
		TenantID:  d.TenantID,
		PlaceID:   domainplace.PlaceID(d.PlaceID),
		Range:     daterange.DateRange{From: timestampToTime(d.From), Until: timestampToTime(d.Until)},
		Persons:   d.Persons,
		CreatedAt: timestampToTime(d.CreatedAt),
	}
}

var _ domainbooking.Repository = (*BookingRepository)(nil)
