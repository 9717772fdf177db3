// Package auth implements registration, login and session resolution.
// Credentials are opaque random tokens kept in the session store, so a
// logout or an admin block takes effect immediately.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainauth "stayhub/internal/domain/auth"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrPasswordTooShort   = errors.New("auth: password must be at least 8 characters")
	ErrPasswordTooWeak    = errors.New("auth: password must not contain the word password")
	ErrUserBlocked        = errors.New("auth: user blocked")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenGenerator interface {
	NewToken() (string, error)
}

// PlaceRemover cascades a departing host's places. Wired to the places
// service so account deletion reuses the same cascade as place deletion.
type PlaceRemover interface {
	DeleteByOwner(ctx context.Context, ownerID string) error
}

type Service struct {
	Users      domainuser.Repository
	Sessions   domainauth.SessionStore
	Passwords  PasswordHasher
	Tokens     TokenGenerator
	Places     PlaceRemover
	SessionTTL time.Duration
	Logger     *slog.Logger
	Now        func() time.Time
}

type RegisterParams struct {
	UserName    string
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Role        string
	Tel         string
	DateOfBirth time.Time
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  *domainuser.User
	Token string
}

type Principal struct {
	User    *domainuser.User
	Session *domainauth.Session
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	role, err := domainuser.ParseRole(params.Role)
	if err != nil {
		return nil, fault.InvalidArgument(err.Error())
	}
	if role == domainuser.RoleAdmin {
		return nil, fault.InvalidArgument("cannot self-register as admin")
	}
	if err := validatePassword(params.Password); err != nil {
		return nil, fault.InvalidArgument(err.Error())
	}
	email := strings.TrimSpace(strings.ToLower(params.Email))
	if existing, err := s.Users.ByEmail(ctx, email); err == nil && existing != nil {
		return nil, fault.Conflict(domainuser.ErrEmailAlreadyUsed.Error())
	} else if err != nil && !errors.Is(err, domainuser.ErrNotFound) {
		return nil, fault.Internal("look up email", err)
	}

	hash, err := s.Passwords.Hash(params.Password)
	if err != nil {
		return nil, fault.Internal("hash password", err)
	}
	u, err := domainuser.New(domainuser.CreateParams{
		ID:           domainuser.ID(uuid.NewString()),
		UserName:     params.UserName,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Tel:          params.Tel,
		DateOfBirth:  params.DateOfBirth,
		Now:          s.now(),
	})
	if err != nil {
		return nil, fault.InvalidArgument(err.Error())
	}
	if err := s.Users.Save(ctx, u); err != nil {
		if errors.Is(err, domainuser.ErrEmailAlreadyUsed) || errors.Is(err, domainuser.ErrUserNameTaken) {
			return nil, fault.Conflict(err.Error())
		}
		return nil, fault.Internal("save user", err)
	}

	token, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user registered", "user_id", u.ID, "user_name", u.UserName, "role", u.Role)
	}
	return &AuthResult{User: u, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(params.Email))
	if email == "" {
		return nil, fault.InvalidArgument(ErrInvalidCredentials.Error())
	}
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, fault.InvalidArgument(ErrInvalidCredentials.Error())
		}
		return nil, fault.Internal("look up user", err)
	}
	if u.Blocked {
		return nil, fault.InvalidArgument(ErrUserBlocked.Error())
	}
	if err := s.Passwords.Compare(u.PasswordHash, params.Password); err != nil {
		return nil, fault.InvalidArgument(ErrInvalidCredentials.Error())
	}
	token, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user authenticated", "user_id", u.ID)
	}
	return &AuthResult{User: u, Token: token}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, domainauth.Token(token))
}

// ResolveToken turns a bearer token into a principal. Expired sessions
// and sessions of blocked or deleted users are dropped on sight.
func (s *Service) ResolveToken(ctx context.Context, token string) (*Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainauth.ErrTokenRequired
	}
	session, err := s.Sessions.Get(ctx, domainauth.Token(token))
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.Sessions.Delete(ctx, session.Token)
		return nil, domainauth.ErrSessionNotFound
	}
	u, err := s.Users.ByID(ctx, session.UserID)
	if err != nil {
		_ = s.Sessions.Delete(ctx, session.Token)
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, domainauth.ErrSessionNotFound
		}
		return nil, err
	}
	if u.Blocked {
		_ = s.Sessions.DeleteByUser(ctx, u.ID)
		return nil, ErrUserBlocked
	}
	return &Principal{User: u, Session: session}, nil
}

type UpdateMeParams struct {
	UserID    string
	FirstName *string
	LastName  *string
	Tel       *string
	Email     *string
	Password  *string
}

// UpdateMe applies the allow-listed profile fields. Role, approval and
// the block flag are never writable here.
func (s *Service) UpdateMe(ctx context.Context, params UpdateMeParams) (*domainuser.User, error) {
	u, err := s.Users.ByID(ctx, domainuser.ID(params.UserID))
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, fault.NotFound("user does not exist")
		}
		return nil, fault.Internal("look up user", err)
	}

	now := s.now()
	first, last, tel := u.FirstName, u.LastName, u.Tel
	if params.FirstName != nil {
		first = *params.FirstName
	}
	if params.LastName != nil {
		last = *params.LastName
	}
	if params.Tel != nil {
		tel = *params.Tel
	}
	if params.FirstName != nil || params.LastName != nil || params.Tel != nil {
		if err := u.UpdateProfile(first, last, tel, now); err != nil {
			return nil, fault.InvalidArgument(err.Error())
		}
	}
	if params.Email != nil {
		if err := u.UpdateEmail(*params.Email, now); err != nil {
			return nil, fault.InvalidArgument(err.Error())
		}
	}
	if params.Password != nil {
		if err := validatePassword(*params.Password); err != nil {
			return nil, fault.InvalidArgument(err.Error())
		}
		hash, err := s.Passwords.Hash(*params.Password)
		if err != nil {
			return nil, fault.Internal("hash password", err)
		}
		if err := u.SetPasswordHash(hash, now); err != nil {
			return nil, fault.InvalidArgument(err.Error())
		}
	}

	if err := s.Users.Save(ctx, u); err != nil {
		if errors.Is(err, domainuser.ErrEmailAlreadyUsed) {
			return nil, fault.Conflict(err.Error())
		}
		return nil, fault.Internal("save user", err)
	}
	return u, nil
}

// DeleteMe removes the account, its sessions and every place it owns
// together with their dependents.
func (s *Service) DeleteMe(ctx context.Context, userID string) error {
	u, err := s.Users.ByID(ctx, domainuser.ID(userID))
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return fault.NotFound("user does not exist")
		}
		return fault.Internal("look up user", err)
	}
	if s.Places != nil {
		if err := s.Places.DeleteByOwner(ctx, string(u.ID)); err != nil {
			return err
		}
	}
	if err := s.Users.Delete(ctx, u.ID); err != nil {
		return fault.Internal("delete user", err)
	}
	if err := s.Sessions.DeleteByUser(ctx, u.ID); err != nil {
		return fault.Internal("delete sessions", err)
	}
	if s.Logger != nil {
		s.Logger.Info("account deleted", "user_id", u.ID)
	}
	return nil
}

func (s *Service) issueSession(ctx context.Context, u *domainuser.User) (string, error) {
	token, err := s.Tokens.NewToken()
	if err != nil {
		return "", fault.Internal("generate token", err)
	}
	session, err := domainauth.NewSession(domainauth.CreateSessionParams{
		Token:  domainauth.Token(token),
		UserID: u.ID,
		Role:   u.Role,
		TTL:    s.sessionTTL(),
		Now:    s.now(),
	})
	if err != nil {
		return "", fault.Internal("create session", err)
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return "", fault.Internal("save session", err)
	}
	return token, nil
}

func (s *Service) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return 24 * time.Hour
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return ErrPasswordTooShort
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return ErrPasswordTooWeak
	}
	return nil
}
