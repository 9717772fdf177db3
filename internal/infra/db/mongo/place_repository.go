package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainplace "stayhub/internal/domain/place"
)

type PlaceRepository struct {
	col *mongo.Collection
}

func NewPlaceRepository(db *mongo.Database) *PlaceRepository {
	col := db.Collection("places")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "owner_id", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &PlaceRepository{col: col}
}

func (r *PlaceRepository) ByID(ctx context.Context, id domainplace.PlaceID) (*domainplace.Place, error) {
	var doc placeDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainplace.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PlaceRepository) ByOwner(ctx context.Context, owner domainplace.OwnerID) ([]*domainplace.Place, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"owner_id": string(owner)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainplace.Place
	for cursor.Next(ctx) {
		var doc placeDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *PlaceRepository) Save(ctx context.Context, p *domainplace.Place) error {
	doc := newPlaceDocument(p)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *PlaceRepository) Delete(ctx context.Context, id domainplace.PlaceID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainplace.ErrNotFound
	}
	return nil
}

type placeDocument struct {
	ID          string           `bson:"_id"`
	OwnerID     string           `bson:"owner_id"`
	Name        string           `bson:"name"`
	Description string           `bson:"description"`
	Area        float64          `bson:"area"`
	CostPerDay  int64            `bson:"cost_per_day"`
	Type        string           `bson:"type"`
	BedAmount   int              `bson:"bed_amount"`
	MaxPersons  int              `bson:"max_persons"`
	Rooms       roomsDocument    `bson:"rooms"`
	Amenities   amenityDocument  `bson:"amenities"`
	Rules       rulesDocument    `bson:"rules"`
	Location    locationDocument `bson:"location"`
	ReviewCount int              `bson:"review_count"`
	ReviewAvg   float64          `bson:"review_avg"`
	ReviewIDs   []string         `bson:"review_ids"`
	BookingIDs  []string         `bson:"booking_ids"`
	MainPhoto   string           `bson:"main_photo"`
	Photos      []string         `bson:"photos"`
	CreatedAt   int64            `bson:"created_at"`
	UpdatedAt   int64            `bson:"updated_at"`
}

type roomsDocument struct {
	Bedrooms  int `bson:"bedrooms"`
	Bathrooms int `bson:"bathrooms"`
}

type amenityDocument struct {
	Wifi            bool `bson:"wifi"`
	AirConditioning bool `bson:"air_conditioning"`
	Heating         bool `bson:"heating"`
	Kitchen         bool `bson:"kitchen"`
	Television      bool `bson:"television"`
	Parking         bool `bson:"parking"`
	Elevator        bool `bson:"elevator"`
	SittingPlace    bool `bson:"sitting_place"`
}

type rulesDocument struct {
	Smoking bool `bson:"smoking"`
	Pets    bool `bson:"pets"`
	Events  bool `bson:"events"`
}

type locationDocument struct {
	Lat           float64 `bson:"lat"`
	Lon           float64 `bson:"lon"`
	Address       string  `bson:"address"`
	Neighbourhood string  `bson:"neighbourhood"`
	Transport     string  `bson:"transport"`
}

func newPlaceDocument(p *domainplace.Place) placeDocument {
	return placeDocument{
		ID:          string(p.ID),
		OwnerID:     string(p.Owner),
		Name:        p.Name,
		Description: p.Description,
		Area:        p.Area,
		CostPerDay:  p.CostPerDay,
		Type:        string(p.Type),
		BedAmount:   p.BedAmount,
		MaxPersons:  p.MaxPersons,
		Rooms:       roomsDocument(p.Rooms),
		Amenities:   amenityDocument(p.Amenities),
		Rules:       rulesDocument(p.Rules),
		Location:    locationDocument(p.Location),
		ReviewCount: p.Reviews.Count,
		ReviewAvg:   p.Reviews.Average,
		ReviewIDs:   p.ReviewIDs,
		BookingIDs:  p.BookingIDs,
		MainPhoto:   p.Photos.MainID,
		Photos:      p.Photos.SecondaryIDs,
		CreatedAt:   p.CreatedAt.UnixMilli(),
		UpdatedAt:   p.UpdatedAt.UnixMilli(),
	}
}

func (d placeDocument) toAggregate() *domainplace.Place {
	return &domainplace.Place{
		ID:          domainplace.PlaceID(d.ID),
		Owner:       domainplace.OwnerID(d.OwnerID),
		Name:        d.Name,
		Description: d.Description,
		Area:        d.Area,
		CostPerDay:  d.CostPerDay,
		Type:        domainplace.PlaceType(d.Type),
		BedAmount:   d.BedAmount,
		MaxPersons:  d.MaxPersons,
		Rooms:       domainplace.Rooms(d.Rooms),
		Amenities:   domainplace.Amenities(d.Amenities),
		Rules:       domainplace.Rules(d.Rules),
		Location:    domainplace.Location(d.Location),
		Reviews:     domainplace.ReviewSummary{Count: d.ReviewCount, Average: d.ReviewAvg},
		ReviewIDs:   d.ReviewIDs,
		BookingIDs:  d.BookingIDs,
		Photos:      domainplace.PhotoSet{MainID: d.MainPhoto, SecondaryIDs: d.Photos},
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
	}
}

var _ domainplace.Repository = (*PlaceRepository)(nil)
