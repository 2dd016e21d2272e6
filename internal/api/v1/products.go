package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/domain"
	"github.com/agrisetu/agrisetu/internal/server/middleware"
)

// actorID extracts the authenticated user from the request context.
func actorID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, huma.Error401Unauthorized("authentication required")
	}
	return userID, nil
}

type ListProductsInput struct {
	CategoryID uuid.UUID `query:"category_id" doc:"Filter by category"`
	Search     string    `query:"search" maxLength:"255" doc:"Search in titles"`
	MaxPrice   float64   `query:"max_price" minimum:"0" doc:"Maximum price"`
	Limit      int       `query:"limit" minimum:"0" maximum:"100" doc:"Page size (default 20)"`
	Offset     int       `query:"offset" minimum:"0" doc:"Page offset"`
}

type ListProductsOutput struct {
	Body []*domain.Product
}

type GetProductInput struct {
	ID uuid.UUID `path:"id" doc:"Product ID"`
}

type GetProductOutput struct {
	Body *domain.Product
}

type CreateProductInput struct {
	Body struct {
		CategoryID        uuid.UUID `json:"category_id" doc:"Category ID"`
		Title             string    `json:"title" minLength:"1" maxLength:"255" doc:"Listing title"`
		Description       string    `json:"description,omitempty" doc:"Listing description"`
		Price             float64   `json:"price" minimum:"0" exclusiveMinimum:"0" doc:"Price per unit"`
		Unit              string    `json:"unit" minLength:"1" maxLength:"20" doc:"Sale unit (kg, quintal, ...)"`
		QuantityAvailable float64   `json:"quantity_available" minimum:"0" exclusiveMinimum:"0" doc:"Available quantity"`
		Location          string    `json:"location,omitempty" maxLength:"255" doc:"Pickup location"`
		Images            []string  `json:"images,omitempty" maxItems:"10" doc:"Image URLs"`
	}
}

type CreateProductOutput struct {
	Body *domain.Product
}

type ListMyProductsOutput struct {
	Body []*domain.Product
}

type UpdateProductInput struct {
	ID   uuid.UUID `path:"id" doc:"Product ID"`
	Body struct {
		Title             string   `json:"title,omitempty" maxLength:"255" doc:"Listing title"`
		Description       string   `json:"description,omitempty" doc:"Listing description"`
		Price             *float64 `json:"price,omitempty" doc:"Price per unit"`
		Unit              string   `json:"unit,omitempty" maxLength:"20" doc:"Sale unit"`
		QuantityAvailable *float64 `json:"quantity_available,omitempty" doc:"Available quantity"`
		Location          string   `json:"location,omitempty" maxLength:"255" doc:"Pickup location"`
		Images            []string `json:"images,omitempty" maxItems:"10" doc:"Image URLs"`
	}
}

type UpdateProductOutput struct {
	Body *domain.Product
}

type UpdateProductStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Product ID"`
	Body struct {
		Status string `json:"status" minLength:"1" doc:"Target status"`
	}
}

type UpdateProductStatusOutput struct {
	Body *domain.Product
}

type DeleteProductInput struct {
	ID uuid.UUID `path:"id" doc:"Product ID"`
}

// RegisterProductBrowseRoutes mounts the public marketplace browse
// endpoints. Only active listings are visible here; the back office view
// is registered separately.
func RegisterProductBrowseRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/products",
		Summary:     "Browse active product listings",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error) {
		limit := input.Limit
		if limit == 0 {
			limit = 20
		}

		filter := domain.ProductFilter{
			CategoryID: input.CategoryID,
			Search:     input.Search,
			MaxPrice:   input.MaxPrice,
			Status:     domain.ProductStatusActive,
		}
		products, err := store.Products().List(ctx, filter, limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list products", err)
		}
		return &ListProductsOutput{Body: products}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/products/{id}",
		Summary:     "Get a product by ID",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, input *GetProductInput) (*GetProductOutput, error) {
		product, err := store.Products().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("product not found")
			}
			return nil, huma.Error500InternalServerError("failed to get product", err)
		}
		return &GetProductOutput{Body: product}, nil
	})
}

// RegisterProductSellerRoutes mounts the authenticated listing management
// endpoints. Sellers may only touch their own listings.
func RegisterProductSellerRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-product",
		Method:      http.MethodPost,
		Path:        "/products",
		Summary:     "Create a product listing",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, input *CreateProductInput) (*CreateProductOutput, error) {
		sellerID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		if _, err := store.Categories().GetByID(ctx, input.Body.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("category not found")
			}
			return nil, huma.Error500InternalServerError("failed to validate category", err)
		}

		now := time.Now()
		p := &domain.Product{
			ID:                uuid.New(),
			SellerID:          sellerID,
			CategoryID:        input.Body.CategoryID,
			Title:             input.Body.Title,
			Description:       input.Body.Description,
			Price:             input.Body.Price,
			Unit:              input.Body.Unit,
			QuantityAvailable: input.Body.QuantityAvailable,
			Location:          input.Body.Location,
			Images:            input.Body.Images,
			Status:            domain.ProductStatusActive,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if err := store.Products().Create(ctx, p); err != nil {
			return nil, huma.Error500InternalServerError("failed to create product", err)
		}
		return &CreateProductOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-my-products",
		Method:      http.MethodGet,
		Path:        "/products/mine",
		Summary:     "List my product listings",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, _ *struct{}) (*ListMyProductsOutput, error) {
		sellerID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		products, err := store.Products().ListBySeller(ctx, sellerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list products", err)
		}
		return &ListMyProductsOutput{Body: products}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-product",
		Method:      http.MethodPut,
		Path:        "/products/{id}",
		Summary:     "Update my product listing",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, input *UpdateProductInput) (*UpdateProductOutput, error) {
		sellerID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		existing, err := store.Products().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("product not found")
			}
			return nil, huma.Error500InternalServerError("failed to get product", err)
		}
		if existing.SellerID != sellerID {
			return nil, huma.Error403Forbidden("not your listing")
		}

		if input.Body.Title != "" {
			existing.Title = input.Body.Title
		}
		if input.Body.Description != "" {
			existing.Description = input.Body.Description
		}
		if input.Body.Price != nil {
			if *input.Body.Price <= 0 {
				return nil, huma.Error400BadRequest("price must be positive")
			}
			existing.Price = *input.Body.Price
		}
		if input.Body.Unit != "" {
			existing.Unit = input.Body.Unit
		}
		if input.Body.QuantityAvailable != nil {
			if *input.Body.QuantityAvailable < 0 {
				return nil, huma.Error400BadRequest("quantity cannot be negative")
			}
			existing.QuantityAvailable = *input.Body.QuantityAvailable
		}
		if input.Body.Location != "" {
			existing.Location = input.Body.Location
		}
		if input.Body.Images != nil {
			existing.Images = input.Body.Images
		}
		existing.UpdatedAt = time.Now()

		if err := store.Products().Update(ctx, existing); err != nil {
			return nil, huma.Error500InternalServerError("failed to update product", err)
		}
		return &UpdateProductOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-my-product-status",
		Method:      http.MethodPatch,
		Path:        "/products/{id}/status",
		Summary:     "Change the status of my listing",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, input *UpdateProductStatusInput) (*UpdateProductStatusOutput, error) {
		sellerID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		target := domain.ProductStatus(input.Body.Status)
		if !target.Valid() {
			return nil, huma.Error400BadRequest("unknown product status: " + input.Body.Status)
		}

		existing, err := store.Products().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("product not found")
			}
			return nil, huma.Error500InternalServerError("failed to get product", err)
		}
		if existing.SellerID != sellerID {
			return nil, huma.Error403Forbidden("not your listing")
		}

		if err := store.Products().UpdateStatus(ctx, input.ID, target); err != nil {
			return nil, huma.Error500InternalServerError("failed to update product status", err)
		}

		existing.Status = target
		existing.UpdatedAt = time.Now()
		return &UpdateProductStatusOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-product",
		Method:      http.MethodDelete,
		Path:        "/products/{id}",
		Summary:     "Delete my product listing",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, input *DeleteProductInput) (*struct{}, error) {
		sellerID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		existing, err := store.Products().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("product not found")
			}
			return nil, huma.Error500InternalServerError("failed to get product", err)
		}
		if existing.SellerID != sellerID {
			return nil, huma.Error403Forbidden("not your listing")
		}

		if err := store.Products().Delete(ctx, input.ID); err != nil {
			return nil, huma.Error500InternalServerError("failed to delete product", err)
		}
		return nil, nil
	})
}
