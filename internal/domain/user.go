package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/authz"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // argon2id
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile holds the farmer-facing details shown on listings and orders.
// Occupation is self-declared free text ("farmer", "trader", ...) and carries
// no permissions; system roles live in user_roles.
type Profile struct {
	UserID     uuid.UUID `json:"user_id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone,omitempty"`
	Village    string    `json:"village,omitempty"`
	District   string    `json:"district,omitempty"`
	Occupation string    `json:"occupation,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, u *User, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, p *Profile) error
	// ListProfiles returns profiles newest-first for the back office.
	ListProfiles(ctx context.Context, limit, offset int) ([]*Profile, error)
	// NamesByIDs batch-resolves display names, e.g. for audit rendering.
	NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// UserRoleRepository is the role assignment store: at most one role row per
// user, enforced by the user_id primary key. It never writes audit entries;
// callers audit in the same transaction.
type UserRoleRepository interface {
	// Get returns RoleNone (without error) when the user exists but has no
	// role row, and ErrNotFound when the user does not exist.
	Get(ctx context.Context, userID uuid.UUID) (authz.Role, error)
	// Set inserts or overwrites the role row (last-write-wins).
	Set(ctx context.Context, userID uuid.UUID, role authz.Role) error
	// Remove deletes the role row, reverting the user to implicit "user".
	Remove(ctx context.Context, userID uuid.UUID) error
	// List returns all current assignments keyed by user.
	List(ctx context.Context) (map[uuid.UUID]authz.Role, error)
}
