package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/domain"
)

type ListCartOutput struct {
	Body []*domain.CartItem
}

type AddCartItemInput struct {
	Body struct {
		ProductID uuid.UUID `json:"product_id" doc:"Product ID"`
		Quantity  float64   `json:"quantity" minimum:"0" exclusiveMinimum:"0" doc:"Quantity in the product's unit"`
	}
}

type AddCartItemOutput struct {
	Body *domain.CartItem
}

type RemoveCartItemInput struct {
	ProductID uuid.UUID `path:"productID" doc:"Product ID"`
}

func RegisterCartRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-cart",
		Method:      http.MethodGet,
		Path:        "/cart",
		Summary:     "List my cart items",
		Tags:        []string{"Cart"},
	}, func(ctx context.Context, _ *struct{}) (*ListCartOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		items, err := store.Cart().ListByUser(ctx, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list cart", err)
		}
		return &ListCartOutput{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-cart-item",
		Method:      http.MethodPut,
		Path:        "/cart/items",
		Summary:     "Add a product to my cart or update its quantity",
		Tags:        []string{"Cart"},
	}, func(ctx context.Context, input *AddCartItemInput) (*AddCartItemOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		product, err := store.Products().GetByID(ctx, input.Body.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("product not found")
			}
			return nil, huma.Error500InternalServerError("failed to validate product", err)
		}
		if product.Status != domain.ProductStatusActive {
			return nil, huma.Error409Conflict("product is not available")
		}
		if product.SellerID == userID {
			return nil, huma.Error400BadRequest("cannot add your own listing to the cart")
		}

		now := time.Now()
		item := &domain.CartItem{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: input.Body.ProductID,
			Quantity:  input.Body.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := store.Cart().Upsert(ctx, item); err != nil {
			return nil, huma.Error500InternalServerError("failed to add cart item", err)
		}
		return &AddCartItemOutput{Body: item}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-cart-item",
		Method:      http.MethodDelete,
		Path:        "/cart/items/{productID}",
		Summary:     "Remove a product from my cart",
		Tags:        []string{"Cart"},
	}, func(ctx context.Context, input *RemoveCartItemInput) (*struct{}, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		if err := store.Cart().Remove(ctx, userID, input.ProductID); err != nil {
			return nil, huma.Error500InternalServerError("failed to remove cart item", err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "clear-cart",
		Method:      http.MethodDelete,
		Path:        "/cart",
		Summary:     "Empty my cart",
		Tags:        []string{"Cart"},
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		if err := store.Cart().Clear(ctx, userID); err != nil {
			return nil, huma.Error500InternalServerError("failed to clear cart", err)
		}
		return nil, nil
	})
}
