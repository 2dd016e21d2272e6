package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ValidTransition checks if an order state transition is allowed for sellers.
// Allowed: pending->confirmed, confirmed->shipped, shipped->delivered, and
// cancellation from pending or confirmed. Moderators and admins bypass this
// check through the back office.
func (s OrderStatus) ValidTransition(to OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return to == OrderStatusConfirmed || to == OrderStatusCancelled
	case OrderStatusConfirmed:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	default:
		return false
	}
}

var ErrInvalidTransition = errors.New("order: invalid state transition")

type Order struct {
	ID              uuid.UUID   `json:"id"`
	BuyerID         uuid.UUID   `json:"buyer_id"`
	SellerID        uuid.UUID   `json:"seller_id"`
	ProductID       uuid.UUID   `json:"product_id"`
	ProductTitle    string      `json:"product_title"` // denormalized so history survives product deletion
	Quantity        float64     `json:"quantity"`
	UnitPrice       float64     `json:"unit_price"`
	TotalPrice      float64     `json:"total_price"`
	DeliveryAddress string      `json:"delivery_address"`
	Notes           string      `json:"notes,omitempty"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// ListByUser returns orders where the user is buyer or seller, newest-first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	// List returns all orders for the back office, optionally status-filtered.
	List(ctx context.Context, status OrderStatus, limit, offset int) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
