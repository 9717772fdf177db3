package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainchat "stayhub/internal/domain/chat"
)

type ConversationRepository struct {
	col *mongo.Collection
}

func NewConversationRepository(db *mongo.Database) *ConversationRepository {
	col := db.Collection("conversations")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "participants", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &ConversationRepository{col: col}
}

func (r *ConversationRepository) ByID(ctx context.Context, id domainchat.ConversationID) (*domainchat.Conversation, error) {
	var doc conversationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainchat.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ConversationRepository) Between(ctx context.Context, userA, userB string) (*domainchat.Conversation, error) {
	filter := bson.M{"participants": bson.M{"$all": []string{userA, userB}}}
	var doc conversationDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainchat.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ConversationRepository) ByUser(ctx context.Context, userID string) ([]*domainchat.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainchat.Conversation
	for cursor.Next(ctx) {
		var doc conversationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *ConversationRepository) Save(ctx context.Context, c *domainchat.Conversation) error {
	doc := newConversationDocument(c)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

type conversationDocument struct {
	ID           string            `bson:"_id"`
	Participants []string          `bson:"participants"`
	Messages     []messageDocument `bson:"messages"`
	StartedAt    int64             `bson:"started_at"`
}

type messageDocument struct {
	SenderID  string `bson:"sender_id"`
	Text      string `bson:"text"`
	CreatedAt int64  `bson:"created_at"`
}

func newConversationDocument(c *domainchat.Conversation) conversationDocument {
	msgs := make([]messageDocument, 0, len(c.Messages))
	for _, m := range c.Messages {
		msgs = append(msgs, messageDocument{SenderID: m.SenderID, Text: m.Text, CreatedAt: m.CreatedAt.UnixMilli()})
	}
	return conversationDocument{
		ID:           string(c.ID),
		Participants: []string{c.UserA, c.UserB},
		Messages:     msgs,
		StartedAt:    c.StartedAt.UnixMilli(),
	}
}

func (d conversationDocument) toAggregate() *domainchat.Conversation {
	c := &domainchat.Conversation{
		ID:        domainchat.ConversationID(d.ID),
		StartedAt: timestampToTime(d.StartedAt),
	}
	if len(d.Participants) > 0 {
		c.UserA = d.Participants[0]
	}
	if len(d.Participants) > 1 {
		c.UserB = d.Participants[1]
	}
	for _, m := range d.Messages {
		c.Messages = append(c.Messages, domainchat.Message{SenderID: m.SenderID, Text: m.Text, CreatedAt: timestampToTime(m.CreatedAt)})
	}
	return c
}

var _ domainchat.Repository = (*ConversationRepository)(nil)
