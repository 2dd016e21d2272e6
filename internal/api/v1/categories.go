package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/domain"
)

type ListCategoriesOutput struct {
	Body []*domain.Category
}

type GetCategoryInput struct {
	ID uuid.UUID `path:"id" doc:"Category ID"`
}

type GetCategoryOutput struct {
	Body *domain.Category
}

func RegisterCategoryRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/categories",
		Summary:     "List product categories",
		Tags:        []string{"Categories"},
	}, func(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
		categories, err := store.Categories().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list categories", err)
		}
		return &ListCategoriesOutput{Body: categories}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-category",
		Method:      http.MethodGet,
		Path:        "/categories/{id}",
		Summary:     "Get a category by ID",
		Tags:        []string{"Categories"},
	}, func(ctx context.Context, input *GetCategoryInput) (*GetCategoryOutput, error) {
		category, err := store.Categories().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("category not found")
			}
			return nil, huma.Error500InternalServerError("failed to get category", err)
		}
		return &GetCategoryOutput{Body: category}, nil
	})
}
