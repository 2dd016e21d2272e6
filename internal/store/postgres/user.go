package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agrisetu/agrisetu/internal/domain"
)

type UserRepo struct {
	db DB
}

func NewUserRepo(db DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts the user and their profile together; callers get both rows
// or neither when running inside InTx.
func (r *UserRepo) Create(ctx context.Context, u *domain.User, p *domain.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("userRepo.Create: %w", domain.ErrConflict)
		}
		return fmt.Errorf("userRepo.Create: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO profiles (user_id, full_name, phone, village, district, occupation, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.UserID, p.FullName, nilIfEmpty(p.Phone), nilIfEmpty(p.Village),
		nilIfEmpty(p.District), nilIfEmpty(p.Occupation), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Create: profile: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User

	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}

	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User

	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}

	return &u, nil
}

func (r *UserRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx,
		`SELECT user_id, full_name, phone, village, district, occupation, created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetProfile: %w", err)
	}

	return p, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE profiles SET full_name = $1, phone = $2, village = $3, district = $4, occupation = $5, updated_at = now()
		 WHERE user_id = $6`,
		p.FullName, nilIfEmpty(p.Phone), nilIfEmpty(p.Village),
		nilIfEmpty(p.District), nilIfEmpty(p.Occupation), p.UserID,
	)
	if err != nil {
		return fmt.Errorf("userRepo.UpdateProfile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.UpdateProfile: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepo) ListProfiles(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, full_name, phone, village, district, occupation, created_at, updated_at
		 FROM profiles ORDER BY created_at DESC, user_id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListProfiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, scanErr := scanProfile(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("userRepo.ListProfiles: %w", scanErr)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("userRepo.ListProfiles: rows: %w", err)
	}

	return profiles, nil
}

// NamesByIDs batch-resolves display names for a set of users, e.g. to label
// audit entries. Unknown ids are simply absent from the result.
func (r *UserRepo) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, full_name FROM profiles WHERE user_id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("userRepo.NamesByIDs: %w", err)
	}
	defer rows.Close()

	names := make(map[uuid.UUID]string, len(ids))
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("userRepo.NamesByIDs: scan: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("userRepo.NamesByIDs: rows: %w", err)
	}

	return names, nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var phone, village, district, occupation *string

	err := row.Scan(&p.UserID, &p.FullName, &phone, &village, &district, &occupation, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Phone = derefStr(phone)
	p.Village = derefStr(village)
	p.District = derefStr(district)
	p.Occupation = derefStr(occupation)

	return &p, nil
}
