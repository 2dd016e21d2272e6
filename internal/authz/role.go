package authz

import (
	"errors"
	"fmt"
)

// Role is one of the closed set of permission tiers a user can hold.
// The zero value (RoleNone) means the user has no role row and is
// evaluated exactly like RoleUser.
type Role string

const (
	RoleNone         Role = ""
	RoleUser         Role = "user"
	RoleFieldOfficer Role = "field_officer"
	RoleModerator    Role = "moderator"
	RoleAdmin        Role = "admin"
)

// ErrUnknownRole is returned by ParseRole for values outside the closed set.
var ErrUnknownRole = errors.New("authz: unknown role")

// ParseRole validates a role string at the boundary. Free-form input (query
// params, request bodies) must pass through here before reaching the store.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleFieldOfficer, RoleModerator, RoleAdmin:
		return Role(s), nil
	default:
		return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid reports whether r is a member of the closed role set.
// RoleNone is not a valid stored role; it only exists in evaluation.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleFieldOfficer, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}
