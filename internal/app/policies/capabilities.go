// Package policies centralizes authorization decisions. Handlers call
// CanPerform once before invoking a service; the services themselves
// trust the principal they are handed.
package policies

import (
	"stayhub/internal/domain/user"
)

// Action names an operation a principal wants to perform.
type Action string

const (
	ActionPublishPlace Action = "place.publish"
	ActionManagePlace  Action = "place.manage"
	ActionBookStay     Action = "booking.create"
	ActionCancelStay   Action = "booking.cancel"
	ActionWriteReview  Action = "review.write"
	ActionEditReview   Action = "review.edit"
	ActionModerate     Action = "admin.moderate"
)

// Principal is the authenticated identity resolved by the HTTP layer.
type Principal struct {
	UserID user.ID
	Role   user.Role
}

// Resource describes what the action targets. OwnerID is the owner of
// the place or the author of the review, depending on the action.
type Resource struct {
	OwnerID string
}

// CanPerform is the single capability check used by the request layer.
// Hosts (and "both") publish and manage their own places; tenants (and
// "both") book, cancel their own bookings and write reviews; review
// edits are author-only; moderation is admin-only.
func CanPerform(p Principal, action Action, res Resource) bool {
	switch action {
	case ActionPublishPlace:
		return p.Role == user.RoleHost || p.Role == user.RoleBoth
	case ActionManagePlace:
		if p.Role != user.RoleHost && p.Role != user.RoleBoth {
			return false
		}
		return res.OwnerID == "" || res.OwnerID == string(p.UserID)
	case ActionBookStay:
		return p.Role == user.RoleTenant || p.Role == user.RoleBoth
	case ActionCancelStay, ActionEditReview:
		return res.OwnerID == string(p.UserID)
	case ActionWriteReview:
		if p.Role != user.RoleTenant && p.Role != user.RoleBoth {
			return false
		}
		// Reviewing your own place is never allowed.
		return res.OwnerID != string(p.UserID)
	case ActionModerate:
		return p.Role == user.RoleAdmin
	default:
		return false
	}
}
