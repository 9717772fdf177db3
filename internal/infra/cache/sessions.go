package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "stayhub/internal/domain/auth"
	domainuser "stayhub/internal/domain/user"
)

const (
	sessionKeyPrefix = "session:"
	userSessionsKey  = "user_sessions:"
)

// SessionStore keeps sessions under session:<token> with a TTL, plus a
// per-user set so an account deletion or block can drop all of them.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(c *Client) *SessionStore {
	return &SessionStore{rdb: c.RDB}
}

type sessionRecord struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *SessionStore) Save(ctx context.Context, session *domainauth.Session) error {
	if session == nil {
		return domainauth.ErrTokenRequired
	}
	payload, err := json.Marshal(sessionRecord{
		Token:     string(session.Token),
		UserID:    string(session.UserID),
		Role:      string(session.Role),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domainauth.ErrTTLInvalid
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+string(session.Token), payload, ttl)
	pipe.SAdd(ctx, userSessionsKey+string(session.UserID), string(session.Token))
	pipe.Expire(ctx, userSessionsKey+string(session.UserID), ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, token domainauth.Token) (*domainauth.Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKeyPrefix+string(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainauth.ErrSessionNotFound
		}
		return nil, err
	}
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &domainauth.Session{
		Token:     domainauth.Token(rec.Token),
		UserID:    domainuser.ID(rec.UserID),
		Role:      domainuser.Role(rec.Role),
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, token domainauth.Token) error {
	session, err := s.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+string(token))
	pipe.SRem(ctx, userSessionsKey+string(session.UserID), string(token))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *SessionStore) DeleteByUser(ctx context.Context, userID domainuser.ID) error {
	setKey := userSessionsKey + string(userID)
	tokens, err := s.rdb.SMembers(ctx, setKey).Result()
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, sessionKeyPrefix+token)
	}
	pipe.Del(ctx, setKey)
	_, err = pipe.Exec(ctx)
	return err
}

var _ domainauth.SessionStore = (*SessionStore)(nil)
