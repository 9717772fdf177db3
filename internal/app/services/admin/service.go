// Package admin implements moderation: user listings with allow-listed
// filter and sort fields, account approval and blocking.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainauth "stayhub/internal/domain/auth"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
)

const defaultPageSize = 50

// sortFields is the allow list for user listings. Anything else is
// rejected before it reaches the repository.
var sortFields = map[string]struct{}{
	"created_at": {},
	"user_name":  {},
	"email":      {},
	"role":       {},
}

type Service struct {
	Users    domainuser.Repository
	Sessions domainauth.SessionStore
	Logger   *slog.Logger
	Now      func() time.Time
}

type ListParams struct {
	Role     string
	Approved *bool
	SortBy   string
	SortDesc bool
	Limit    int
	Skip     int
}

func (s *Service) ListUsers(ctx context.Context, params ListParams) ([]*domainuser.User, error) {
	filter := domainuser.ListFilter{
		Approved: params.Approved,
		SortDesc: params.SortDesc,
		Limit:    params.Limit,
		Skip:     params.Skip,
	}
	if params.Role != "" {
		role, err := domainuser.ParseRole(params.Role)
		if err != nil {
			return nil, fault.InvalidArgument(err.Error())
		}
		filter.Role = role
	}
	if params.SortBy != "" {
		if _, ok := sortFields[params.SortBy]; !ok {
			return nil, fault.InvalidArgument("unsupported sort field")
		}
		filter.SortBy = params.SortBy
	}
	if filter.Limit <= 0 || filter.Limit > defaultPageSize {
		filter.Limit = defaultPageSize
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	users, err := s.Users.List(ctx, filter)
	if err != nil {
		return nil, fault.Internal("list users", err)
	}
	return users, nil
}

func (s *Service) Approve(ctx context.Context, userID string) (*domainuser.User, error) {
	return s.setFlag(ctx, userID, func(u *domainuser.User, now time.Time) {
		u.SetApproved(true, now)
	})
}

// Block flips the block flag and kills every live session of the user.
func (s *Service) Block(ctx context.Context, userID string) (*domainuser.User, error) {
	u, err := s.setFlag(ctx, userID, func(u *domainuser.User, now time.Time) {
		u.SetBlocked(true, now)
	})
	if err != nil {
		return nil, err
	}
	if s.Sessions != nil {
		if err := s.Sessions.DeleteByUser(ctx, u.ID); err != nil {
			return nil, fault.Internal("terminate sessions", err)
		}
	}
	if s.Logger != nil {
		s.Logger.Info("user blocked", "user_id", u.ID)
	}
	return u, nil
}

func (s *Service) Unblock(ctx context.Context, userID string) (*domainuser.User, error) {
	return s.setFlag(ctx, userID, func(u *domainuser.User, now time.Time) {
		u.SetBlocked(false, now)
	})
}

func (s *Service) setFlag(ctx context.Context, userID string, mutate func(*domainuser.User, time.Time)) (*domainuser.User, error) {
	u, err := s.Users.ByID(ctx, domainuser.ID(userID))
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, fault.NotFound("user does not exist")
		}
		return nil, fault.Internal("look up user", err)
	}
	mutate(u, s.now())
	if err := s.Users.Save(ctx, u); err != nil {
		return nil, fault.Internal("save user", err)
	}
	return u, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
