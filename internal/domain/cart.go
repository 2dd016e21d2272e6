package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  float64   `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartRepository interface {
	// Upsert adds the product to the cart or replaces the quantity if it is
	// already there (one row per user+product).
	Upsert(ctx context.Context, item *CartItem) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*CartItem, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}
