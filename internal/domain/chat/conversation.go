package chat

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrParticipantsRequired = errors.New("chat: both participants are required")
	ErrTextRequired         = errors.New("chat: message text is required")
	ErrNotParticipant       = errors.New("chat: user is not part of this conversation")
	ErrNotFound             = errors.New("chat: conversation not found")
)

type ConversationID string

type Message struct {
	SenderID  string
	Text      string
	CreatedAt time.Time
}

// Conversation is a direct message thread between two users. Messages
// are embedded in creation order.
type Conversation struct {
	ID       ConversationID
	UserA    string
	UserB    string
	Messages []Message
	StartedAt time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ConversationID) (*Conversation, error)
	Between(ctx context.Context, userA, userB string) (*Conversation, error)
	ByUser(ctx context.Context, userID string) ([]*Conversation, error)
	Save(ctx context.Context, c *Conversation) error
}

func New(id ConversationID, userA, userB string, now time.Time) (*Conversation, error) {
	if strings.TrimSpace(userA) == "" || strings.TrimSpace(userB) == "" {
		return nil, ErrParticipantsRequired
	}
	if now.IsZero() {
		now = time.Now()
	}
	return &Conversation{
		ID:        id,
		UserA:     userA,
		UserB:     userB,
		StartedAt: now.UTC(),
	}, nil
}

func (c *Conversation) Involves(userID string) bool {
	return c.UserA == userID || c.UserB == userID
}

func (c *Conversation) Append(senderID, text string, now time.Time) error {
	if !c.Involves(senderID) {
		return ErrNotParticipant
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrTextRequired
	}
	if now.IsZero() {
		now = time.Now()
	}
	c.Messages = append(c.Messages, Message{SenderID: senderID, Text: text, CreatedAt: now.UTC()})
	return nil
}
