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

type AdminListProductsInput struct {
	Status     string    `query:"status" doc:"Filter by status (active/sold/inactive)"`
	CategoryID uuid.UUID `query:"category_id" doc:"Filter by category"`
	Search     string    `query:"search" maxLength:"255" doc:"Search in titles"`
	Limit      int       `query:"limit" minimum:"0" maximum:"100" doc:"Page size (default 50)"`
	Offset     int       `query:"offset" minimum:"0" doc:"Page offset"`
}

type AdminListProductsOutput struct {
	Body []*domain.Product
}

type AdminModerateProductInput struct {
	ID   uuid.UUID `path:"id" doc:"Product ID"`
	Body struct {
		Status string `json:"status" minLength:"1" doc:"Target status"`
	}
}

type AdminModerateProductOutput struct {
	Body *domain.Product
}

type AdminDeleteProductInput struct {
	ID uuid.UUID `path:"id" doc:"Product ID"`
}

// RegisterAdminProductRoutes mounts the back-office product listing, gated
// on the view_all_products capability in the router.
func RegisterAdminProductRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-list-products",
		Method:      http.MethodGet,
		Path:        "/admin/products",
		Summary:     "List products regardless of status",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *AdminListProductsInput) (*AdminListProductsOutput, error) {
		var status domain.ProductStatus
		if input.Status != "" {
			status = domain.ProductStatus(input.Status)
			if !status.Valid() {
				return nil, huma.Error400BadRequest("unknown product status: " + input.Status)
			}
		}

		limit := input.Limit
		if limit == 0 {
			limit = 50
		}

		filter := domain.ProductFilter{
			CategoryID: input.CategoryID,
			Search:     input.Search,
			Status:     status,
		}
		products, err := store.Products().List(ctx, filter, limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list products", err)
		}
		return &AdminListProductsOutput{Body: products}, nil
	})
}

// RegisterProductModerationRoutes mounts product status moderation, gated on
// the moderate_products capability in the router.
func RegisterProductModerationRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-moderate-product",
		Method:      http.MethodPatch,
		Path:        "/admin/products/{id}/status",
		Summary:     "Change a product's status",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *AdminModerateProductInput) (*AdminModerateProductOutput, error) {
		actor, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		target := domain.ProductStatus(input.Body.Status)
		if !target.Valid() {
			return nil, huma.Error400BadRequest("unknown product status: " + input.Body.Status)
		}

		var product *domain.Product
		txErr := store.InTx(ctx, func(tx DataStore) error {
			var err error
			product, err = tx.Products().GetByID(ctx, input.ID)
			if err != nil {
				return err
			}

			if err := tx.Products().UpdateStatus(ctx, input.ID, target); err != nil {
				return err
			}

			entityID := product.ID
			_, err = audit.NewRecorder(tx.Audit()).Record(ctx, actor,
				domain.AuditActionUpdateStatus, domain.AuditEntityProduct, &entityID,
				map[string]any{"status": string(product.Status)},
				map[string]any{"status": string(target)},
				fmt.Sprintf("moderated product %q from %s to %s", product.Title, product.Status, target))
			return err
		})
		if txErr != nil {
			if errors.Is(txErr, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("product not found")
			}
			return nil, huma.Error500InternalServerError("failed to moderate product", txErr)
		}

		product.Status = target
		product.UpdatedAt = time.Now()
		return &AdminModerateProductOutput{Body: product}, nil
	})
}

// RegisterProductDeletionRoutes mounts product removal, gated on the
// delete_products capability in the router.
func RegisterProductDeletionRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-delete-product",
		Method:      http.MethodDelete,
		Path:        "/admin/products/{id}",
		Summary:     "Delete a product listing",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *AdminDeleteProductInput) (*struct{}, error) {
		actor, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		txErr := store.InTx(ctx, func(tx DataStore) error {
			product, err := tx.Products().GetByID(ctx, input.ID)
			if err != nil {
				return err
			}

			if err := tx.Products().Delete(ctx, input.ID); err != nil {
				return err
			}

			entityID := product.ID
			_, err = audit.NewRecorder(tx.Audit()).Record(ctx, actor,
				domain.AuditActionDeleteProduct, domain.AuditEntityProduct, &entityID,
				map[string]any{
					"title":     product.Title,
					"seller_id": product.SellerID.String(),
					"status":    string(product.Status),
					"price":     product.Price,
				},
				nil,
				fmt.Sprintf("deleted product %q", product.Title))
			return err
		})
		if txErr != nil {
			if errors.Is(txErr, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("product not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete product", txErr)
		}
		return nil, nil
	})
}
