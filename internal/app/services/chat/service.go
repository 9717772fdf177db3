// Package chat serves direct message threads between two users.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainchat "stayhub/internal/domain/chat"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
)

type Service struct {
	Conversations domainchat.Repository
	Users         domainuser.Repository
	Logger        *slog.Logger
	Now           func() time.Time
}

// StartOrGet returns the thread between the two users, creating it on
// first contact.
func (s *Service) StartOrGet(ctx context.Context, userID, otherID string) (*domainchat.Conversation, error) {
	if userID == otherID {
		return nil, fault.InvalidArgument("cannot message yourself")
	}
	if _, err := s.Users.ByID(ctx, domainuser.ID(otherID)); err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, fault.NotFound("user does not exist")
		}
		return nil, fault.Internal("look up user", err)
	}

	c, err := s.Conversations.Between(ctx, userID, otherID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, domainchat.ErrNotFound) {
		return nil, fault.Internal("load conversation", err)
	}

	c, err = domainchat.New(domainchat.ConversationID(uuid.NewString()), userID, otherID, s.now())
	if err != nil {
		return nil, fault.InvalidArgument(err.Error())
	}
	if err := s.Conversations.Save(ctx, c); err != nil {
		return nil, fault.Internal("save conversation", err)
	}
	if s.Logger != nil {
		s.Logger.Info("conversation started", "conversation_id", c.ID)
	}
	return c, nil
}

// Send appends a message. Senders outside the thread get not found so
// thread ids cannot be enumerated.
func (s *Service) Send(ctx context.Context, conversationID, senderID, text string) (*domainchat.Conversation, error) {
	c, err := s.Conversations.ByID(ctx, domainchat.ConversationID(conversationID))
	if err != nil {
		if errors.Is(err, domainchat.ErrNotFound) {
			return nil, fault.NotFound("conversation does not exist")
		}
		return nil, fault.Internal("load conversation", err)
	}
	if !c.Involves(senderID) {
		return nil, fault.NotFound("conversation does not exist")
	}
	if err := c.Append(senderID, text, s.now()); err != nil {
		return nil, fault.InvalidArgument(err.Error())
	}
	if err := s.Conversations.Save(ctx, c); err != nil {
		return nil, fault.Internal("save conversation", err)
	}
	return c, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]*domainchat.Conversation, error) {
	out, err := s.Conversations.ByUser(ctx, userID)
	if err != nil {
		return nil, fault.Internal("list conversations", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, conversationID, userID string) (*domainchat.Conversation, error) {
	c, err := s.Conversations.ByID(ctx, domainchat.ConversationID(conversationID))
	if err != nil {
		if errors.Is(err, domainchat.ErrNotFound) {
			return nil, fault.NotFound("conversation does not exist")
		}
		return nil, fault.Internal("load conversation", err)
	}
	if !c.Involves(userID) {
		return nil, fault.NotFound("conversation does not exist")
	}
	return c, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
