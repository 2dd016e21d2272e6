package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/audit"
	"github.com/agrisetu/agrisetu/internal/domain"
)

type AdminListOrdersInput struct {
	Status string `query:"status" doc:"Filter by status"`
	Limit  int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size (default 50)"`
	Offset int    `query:"offset" minimum:"0" doc:"Page offset"`
}

type AdminListOrdersOutput struct {
	Body []*domain.Order
}

type AdminUpdateOrderStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Order ID"`
	Body struct {
		Status string `json:"status" minLength:"1" doc:"Target status"`
	}
}

type AdminUpdateOrderStatusOutput struct {
	Body *domain.Order
}

type AdminDeleteOrderInput struct {
	ID uuid.UUID `path:"id" doc:"Order ID"`
}

// RegisterAdminOrderRoutes mounts the back-office order listing, gated on
// the view_all_orders capability in the router.
func RegisterAdminOrderRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-list-orders",
		Method:      http.MethodGet,
		Path:        "/admin/orders",
		Summary:     "List all orders",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *AdminListOrdersInput) (*AdminListOrdersOutput, error) {
		var status domain.OrderStatus
		if input.Status != "" {
			status = domain.OrderStatus(input.Status)
			if !status.Valid() {
				return nil, huma.Error400BadRequest("unknown order status: " + input.Status)
			}
		}

		limit := input.Limit
		if limit == 0 {
			limit = 50
		}

		orders, err := store.Orders().List(ctx, status, limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list orders", err)
		}
		return &AdminListOrdersOutput{Body: orders}, nil
	})
}

// RegisterOrderManagementRoutes mounts back-office order mutations, gated on
// the mutate_order_status capability in the router. The back office may set
// any valid status; the seller transition matrix does not apply here.
func RegisterOrderManagementRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-update-order-status",
		Method:      http.MethodPatch,
		Path:        "/admin/orders/{id}/status",
		Summary:     "Set an order's status",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *AdminUpdateOrderStatusInput) (*AdminUpdateOrderStatusOutput, error) {
		actor, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		target := domain.OrderStatus(input.Body.Status)
		if !target.Valid() {
			return nil, huma.Error400BadRequest("unknown order status: " + input.Body.Status)
		}

		var order *domain.Order
		txErr := store.InTx(ctx, func(tx DataStore) error {
			var err error
			order, err = tx.Orders().GetByID(ctx, input.ID)
			if err != nil {
				return err
			}

			if err := tx.Orders().UpdateStatus(ctx, input.ID, target); err != nil {
				return err
			}

			entityID := order.ID
			_, err = audit.NewRecorder(tx.Audit()).Record(ctx, actor,
				domain.AuditActionUpdateStatus, domain.AuditEntityOrder, &entityID,
				map[string]any{"status": string(order.Status)},
				map[string]any{"status": string(target)},
				fmt.Sprintf("set order for %q from %s to %s", order.ProductTitle, order.Status, target))
			return err
		})
		if txErr != nil {
			if errors.Is(txErr, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("order not found")
			}
			return nil, huma.Error500InternalServerError("failed to update order status", txErr)
		}

		order.Status = target
		order.UpdatedAt = time.Now()
		return &AdminUpdateOrderStatusOutput{Body: order}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-delete-order",
		Method:      http.MethodDelete,
		Path:        "/admin/orders/{id}",
		Summary:     "Delete an order",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *AdminDeleteOrderInput) (*struct{}, error) {
		actor, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		txErr := store.InTx(ctx, func(tx DataStore) error {
			order, err := tx.Orders().GetByID(ctx, input.ID)
			if err != nil {
				return err
			}

			if err := tx.Orders().Delete(ctx, input.ID); err != nil {
				return err
			}

			entityID := order.ID
			_, err = audit.NewRecorder(tx.Audit()).Record(ctx, actor,
				domain.AuditActionDeleteOrder, domain.AuditEntityOrder, &entityID,
				map[string]any{
					"product_title": order.ProductTitle,
					"buyer_id":      order.BuyerID.String(),
					"seller_id":     order.SellerID.String(),
					"status":        string(order.Status),
					"total_price":   order.TotalPrice,
				},
				nil,
				fmt.Sprintf("deleted order for %q", order.ProductTitle))
			return err
		})
		if txErr != nil {
			if errors.Is(txErr, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("order not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete order", txErr)
		}
		return nil, nil
	})
}
