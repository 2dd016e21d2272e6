package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusSold     ProductStatus = "sold"
	ProductStatusInactive ProductStatus = "inactive"
)

// Valid reports whether s is a known product status.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusSold, ProductStatusInactive:
		return true
	default:
		return false
	}
}

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	NameLocal string    `json:"name_local,omitempty"` // vernacular name shown alongside the English one
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID                uuid.UUID     `json:"id"`
	SellerID          uuid.UUID     `json:"seller_id"`
	CategoryID        uuid.UUID     `json:"category_id"`
	Title             string        `json:"title"`
	Description       string        `json:"description,omitempty"`
	Price             float64       `json:"price"`
	Unit              string        `json:"unit"` // "kg", "quintal", "litre", ...
	QuantityAvailable float64       `json:"quantity_available"`
	Location          string        `json:"location,omitempty"`
	Images            []string      `json:"images,omitempty"`
	Status            ProductStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// ProductFilter narrows marketplace browsing. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID uuid.UUID
	Search     string
	MaxPrice   float64
	Status     ProductStatus
}

type CategoryRepository interface {
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// List applies the filter, newest-first.
	List(ctx context.Context, f ProductFilter, limit, offset int) ([]*Product, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status ProductStatus) error
	// AdjustQuantity decrements quantity_available by delta and marks the
	// product sold when it reaches zero. ErrConflict when stock is short.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta float64) error
	Delete(ctx context.Context, id uuid.UUID) error
}
