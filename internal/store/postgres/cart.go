package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/domain"
)

type CartRepo struct {
	db DB
}

func NewCartRepo(db DB) *CartRepo {
	return &CartRepo{db: db}
}

// Upsert keeps one row per user+product; re-adding a product replaces the
// quantity rather than stacking a duplicate line.
func (r *CartRepo) Upsert(ctx context.Context, item *domain.CartItem) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, product_id)
		 DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
		item.ID, item.UserID, item.ProductID, item.Quantity, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isFKViolation(err) {
			return fmt.Errorf("cartRepo.Upsert: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("cartRepo.Upsert: %w", err)
	}

	return nil
}

func (r *CartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, product_id, quantity, created_at, updated_at
		 FROM cart_items WHERE user_id = $1 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("cartRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var items []*domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("cartRepo.ListByUser: scan: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cartRepo.ListByUser: rows: %w", err)
	}

	return items, nil
}

func (r *CartRepo) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("cartRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cartRepo.Remove: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *CartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("cartRepo.Clear: %w", err)
	}

	return nil
}
