package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrIDRequired          = errors.New("user: id is required")
	ErrUserNameRequired    = errors.New("user: user name is required")
	ErrNameRequired        = errors.New("user: first and last name are required")
	ErrEmailRequired       = errors.New("user: email is required")
	ErrEmailInvalid        = errors.New("user: email is invalid")
	ErrPasswordHashMissing = errors.New("user: password hash is required")
	ErrTelRequired         = errors.New("user: telephone is required")
	ErrInvalidRole         = errors.New("user: invalid role")
	ErrEmailAlreadyUsed    = errors.New("user: email already used")
	ErrUserNameTaken       = errors.New("user: user name already used")
	ErrNotFound            = errors.New("user: not found")
)

type ID string

// Role determines what a user may do on the marketplace. Hosts publish
// places, tenants book them, "both" does either, admins moderate.
type Role string

const (
	RoleHost   Role = "host"
	RoleTenant Role = "tenant"
	RoleBoth   Role = "both"
	RoleAdmin  Role = "admin"
)

func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "host":
		return RoleHost, nil
	case "tenant":
		return RoleTenant, nil
	case "both":
		return RoleBoth, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

type User struct {
	ID              ID
	UserName        string
	FirstName       string
	LastName        string
	Email           string
	PasswordHash    string
	Role            Role
	Tel             string
	DateOfBirth     time.Time
	AvatarPhotoID   string
	ApprovedByAdmin bool
	Blocked         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, error)
	Save(ctx context.Context, u *User) error
	Delete(ctx context.Context, id ID) error
}

// ListFilter narrows and pages admin user listings. Field names must
// come from the allow list enforced by the admin service.
type ListFilter struct {
	Role     Role
	Approved *bool
	SortBy   string
	SortDesc bool
	Limit    int
	Skip     int
}

type CreateParams struct {
	ID           ID
	UserName     string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	Tel          string
	DateOfBirth  time.Time
	Now          time.Time
}

func New(params CreateParams) (*User, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	userName := strings.TrimSpace(params.UserName)
	if userName == "" {
		return nil, ErrUserNameRequired
	}
	first := strings.TrimSpace(params.FirstName)
	last := strings.TrimSpace(params.LastName)
	if first == "" || last == "" {
		return nil, ErrNameRequired
	}
	email := normalizeEmail(params.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !strings.Contains(email, "@") {
		return nil, ErrEmailInvalid
	}
	if strings.TrimSpace(params.PasswordHash) == "" {
		return nil, ErrPasswordHashMissing
	}
	if strings.TrimSpace(params.Tel) == "" {
		return nil, ErrTelRequired
	}
	switch params.Role {
	case RoleHost, RoleTenant, RoleBoth, RoleAdmin:
	default:
		return nil, ErrInvalidRole
	}

	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	return &User{
		ID:           params.ID,
		UserName:     userName,
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		Tel:          strings.TrimSpace(params.Tel),
		DateOfBirth:  params.DateOfBirth.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CanHost reports whether the user may publish and manage places.
func (u *User) CanHost() bool {
	return u.Role == RoleHost || u.Role == RoleBoth
}

// CanBook reports whether the user may reserve stays.
func (u *User) CanBook() bool {
	return u.Role == RoleTenant || u.Role == RoleBoth
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) UpdateProfile(firstName, lastName, tel string, now time.Time) error {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" || last == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(tel) == "" {
		return ErrTelRequired
	}
	u.FirstName = first
	u.LastName = last
	u.Tel = strings.TrimSpace(tel)
	u.touch(now)
	return nil
}

func (u *User) UpdateEmail(email string, now time.Time) error {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return ErrEmailRequired
	}
	if !strings.Contains(normalized, "@") {
		return ErrEmailInvalid
	}
	u.Email = normalized
	u.touch(now)
	return nil
}

func (u *User) SetPasswordHash(hash string, now time.Time) error {
	if strings.TrimSpace(hash) == "" {
		return ErrPasswordHashMissing
	}
	u.PasswordHash = hash
	u.touch(now)
	return nil
}

func (u *User) SetAvatar(photoID string, now time.Time) {
	u.AvatarPhotoID = photoID
	u.touch(now)
}

func (u *User) SetApproved(approved bool, now time.Time) {
	u.ApprovedByAdmin = approved
	u.touch(now)
}

func (u *User) SetBlocked(blocked bool, now time.Time) {
	u.Blocked = blocked
	u.touch(now)
}

func (u *User) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	u.UpdatedAt = now.UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
