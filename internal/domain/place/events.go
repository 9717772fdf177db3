package place

import "time"

type PlaceCreated struct {
	PlaceID PlaceID
	Owner   OwnerID
	At      time.Time
}

func (e PlaceCreated) EventName() string     { return "place.created" }
func (e PlaceCreated) AggregateID() string   { return string(e.PlaceID) }
func (e PlaceCreated) OccurredAt() time.Time { return e.At }

type PlaceUpdated struct {
	PlaceID PlaceID
	At      time.Time
}

func (e PlaceUpdated) EventName() string     { return "place.updated" }
func (e PlaceUpdated) AggregateID() string   { return string(e.PlaceID) }
func (e PlaceUpdated) OccurredAt() time.Time { return e.At }

type PlaceDeleted struct {
	PlaceID  PlaceID
	Owner    OwnerID
	Photos   int
	Reviews  int
	Bookings int
	At       time.Time
}

func (e PlaceDeleted) EventName() string     { return "place.deleted" }
func (e PlaceDeleted) AggregateID() string   { return string(e.PlaceID) }
func (e PlaceDeleted) OccurredAt() time.Time { return e.At }
