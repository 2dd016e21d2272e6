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

type CheckoutInput struct {
	Body struct {
		ProductID       uuid.UUID `json:"product_id" doc:"Product ID"`
		Quantity        float64   `json:"quantity" minimum:"0" exclusiveMinimum:"0" doc:"Quantity in the product's unit"`
		DeliveryAddress string    `json:"delivery_address" minLength:"1" maxLength:"500" doc:"Delivery address"`
		Notes           string    `json:"notes,omitempty" maxLength:"500" doc:"Notes for the seller"`
	}
}

type CheckoutOutput struct {
	Body *domain.Order
}

type ListOrdersOutput struct {
	Body []*domain.Order
}

type GetOrderInput struct {
	ID uuid.UUID `path:"id" doc:"Order ID"`
}

type GetOrderOutput struct {
	Body *domain.Order
}

type TransitionOrderInput struct {
	ID   uuid.UUID `path:"id" doc:"Order ID"`
	Body struct {
		Status string `json:"status" minLength:"1" doc:"Target status"`
	}
}

type TransitionOrderOutput struct {
	Body *domain.Order
}

func RegisterOrderRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "checkout",
		Method:      http.MethodPost,
		Path:        "/orders",
		Summary:     "Place an order for a product",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, input *CheckoutInput) (*CheckoutOutput, error) {
		buyerID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		var order *domain.Order
		// Stock decrement and order insert land in the same transaction
		// so two buyers cannot purchase the last unit twice.
		txErr := store.InTx(ctx, func(tx DataStore) error {
			product, err := tx.Products().GetByID(ctx, input.Body.ProductID)
			if err != nil {
				return err
			}
			if product.Status != domain.ProductStatusActive {
				return domain.ErrConflict
			}
			if product.SellerID == buyerID {
				return domain.ErrForbidden
			}

			if err := tx.Products().AdjustQuantity(ctx, product.ID, input.Body.Quantity); err != nil {
				return err
			}

			now := time.Now()
			order = &domain.Order{
				ID:              uuid.New(),
				BuyerID:         buyerID,
				SellerID:        product.SellerID,
				ProductID:       product.ID,
				ProductTitle:    product.Title,
				Quantity:        input.Body.Quantity,
				UnitPrice:       product.Price,
				TotalPrice:      product.Price * input.Body.Quantity,
				DeliveryAddress: input.Body.DeliveryAddress,
				Notes:           input.Body.Notes,
				Status:          domain.OrderStatusPending,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := tx.Orders().Create(ctx, order); err != nil {
				return err
			}

			// The purchased product leaves the buyer's cart with the
			// same commit.
			return tx.Cart().Remove(ctx, buyerID, product.ID)
		})
		if txErr != nil {
			switch {
			case errors.Is(txErr, domain.ErrNotFound):
				return nil, huma.Error404NotFound("product not found")
			case errors.Is(txErr, domain.ErrForbidden):
				return nil, huma.Error400BadRequest("cannot order your own listing")
			case errors.Is(txErr, domain.ErrConflict):
				return nil, huma.Error409Conflict("product unavailable or insufficient stock")
			default:
				return nil, huma.Error500InternalServerError("failed to place order", txErr)
			}
		}

		return &CheckoutOutput{Body: order}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-orders",
		Method:      http.MethodGet,
		Path:        "/orders",
		Summary:     "List orders where I am buyer or seller",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, _ *struct{}) (*ListOrdersOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		orders, err := store.Orders().ListByUser(ctx, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list orders", err)
		}
		return &ListOrdersOutput{Body: orders}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-order",
		Method:      http.MethodGet,
		Path:        "/orders/{id}",
		Summary:     "Get one of my orders",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, input *GetOrderInput) (*GetOrderOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		order, err := store.Orders().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("order not found")
			}
			return nil, huma.Error500InternalServerError("failed to get order", err)
		}
		if order.BuyerID != userID && order.SellerID != userID {
			return nil, huma.Error404NotFound("order not found")
		}
		return &GetOrderOutput{Body: order}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transition-order-status",
		Method:      http.MethodPatch,
		Path:        "/orders/{id}/status",
		Summary:     "Transition one of my orders",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, input *TransitionOrderInput) (*TransitionOrderOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		target := domain.OrderStatus(input.Body.Status)
		if !target.Valid() {
			return nil, huma.Error400BadRequest("unknown order status: " + input.Body.Status)
		}

		order, err := store.Orders().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("order not found")
			}
			return nil, huma.Error500InternalServerError("failed to get order", err)
		}

		switch userID {
		case order.SellerID:
			if !order.Status.ValidTransition(target) {
				return nil, huma.Error400BadRequest(
					"invalid status transition from "+string(order.Status)+" to "+string(target),
					domain.ErrInvalidTransition)
			}
		case order.BuyerID:
			// Buyers may only withdraw an order the seller has not
			// confirmed yet.
			if target != domain.OrderStatusCancelled || order.Status != domain.OrderStatusPending {
				return nil, huma.Error403Forbidden("buyers can only cancel pending orders")
			}
		default:
			return nil, huma.Error404NotFound("order not found")
		}

		if err := store.Orders().UpdateStatus(ctx, input.ID, target); err != nil {
			return nil, huma.Error500InternalServerError("failed to update order status", err)
		}

		order.Status = target
		order.UpdatedAt = time.Now()
		return &TransitionOrderOutput{Body: order}, nil
	})
}
