package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agrisetu/agrisetu/internal/authz"
	"github.com/agrisetu/agrisetu/internal/domain"
)

// UserRoleRepo is the role assignment store. The user_roles table keys on
// user_id, so "at most one role row per user" is a structural invariant, not
// a convention.
type UserRoleRepo struct {
	db DB
}

func NewUserRoleRepo(db DB) *UserRoleRepo {
	return &UserRoleRepo{db: db}
}

// Get returns the user's assigned role. An existing user without a role row
// yields RoleNone with no error; an unknown user yields ErrNotFound.
func (r *UserRoleRepo) Get(ctx context.Context, userID uuid.UUID) (authz.Role, error) {
	var role *string

	err := r.db.QueryRow(ctx,
		`SELECT ur.role
		 FROM users u LEFT JOIN user_roles ur ON ur.user_id = u.id
		 WHERE u.id = $1`,
		userID,
	).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return authz.RoleNone, fmt.Errorf("userRoleRepo.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return authz.RoleNone, fmt.Errorf("userRoleRepo.Get: %w", err)
	}

	if role == nil {
		return authz.RoleNone, nil
	}

	parsed, err := authz.ParseRole(*role)
	if err != nil {
		// A row outside the closed set should be impossible; deny rather
		// than guess.
		return authz.RoleNone, fmt.Errorf("userRoleRepo.Get: %w", err)
	}

	return parsed, nil
}

// Set inserts or overwrites the role row. The upsert is a single statement,
// so concurrent writers for the same user resolve last-write-wins.
func (r *UserRoleRepo) Set(ctx context.Context, userID uuid.UUID, role authz.Role) error {
	if !role.Valid() {
		return fmt.Errorf("userRoleRepo.Set: %w", authz.ErrUnknownRole)
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO user_roles (user_id, role, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, updated_at = now()`,
		userID, string(role),
	)
	if err != nil {
		if isFKViolation(err) {
			return fmt.Errorf("userRoleRepo.Set: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("userRoleRepo.Set: %w", err)
	}

	return nil
}

// Remove deletes the role row, reverting the user to implicit "user".
// Removing an absent row is not an error.
func (r *UserRoleRepo) Remove(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("userRoleRepo.Remove: %w", err)
	}

	return nil
}

func (r *UserRoleRepo) List(ctx context.Context) (map[uuid.UUID]authz.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id, role FROM user_roles`)
	if err != nil {
		return nil, fmt.Errorf("userRoleRepo.List: %w", err)
	}
	defer rows.Close()

	roles := make(map[uuid.UUID]authz.Role)
	for rows.Next() {
		var id uuid.UUID
		var role string
		if err := rows.Scan(&id, &role); err != nil {
			return nil, fmt.Errorf("userRoleRepo.List: scan: %w", err)
		}
		roles[id] = authz.Role(role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("userRoleRepo.List: rows: %w", err)
	}

	return roles, nil
}
