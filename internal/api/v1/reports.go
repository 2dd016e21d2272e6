package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/domain"
)

type ListReportsInput struct {
	Kind   string `query:"kind" doc:"Filter by report kind (disease/soil/yield)"`
	Limit  int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size (default 20)"`
	Offset int    `query:"offset" minimum:"0" doc:"Page offset"`
}

type ListReportsOutput struct {
	Body []*domain.Report
}

type GetReportInput struct {
	ID uuid.UUID `path:"id" doc:"Report ID"`
}

type GetReportOutput struct {
	Body *domain.Report
}

type DeleteReportInput struct {
	ID uuid.UUID `path:"id" doc:"Report ID"`
}

func RegisterReportRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-reports",
		Method:      http.MethodGet,
		Path:        "/reports",
		Summary:     "List my advisory reports",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *ListReportsInput) (*ListReportsOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		var kind domain.ReportKind
		if input.Kind != "" {
			kind = domain.ReportKind(input.Kind)
			if !kind.Valid() {
				return nil, huma.Error400BadRequest("unknown report kind: " + input.Kind)
			}
		}

		limit := input.Limit
		if limit == 0 {
			limit = 20
		}

		reports, err := store.Reports().ListByUser(ctx, userID, kind, limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list reports", err)
		}
		return &ListReportsOutput{Body: reports}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-report",
		Method:      http.MethodGet,
		Path:        "/reports/{id}",
		Summary:     "Get one of my advisory reports",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *GetReportInput) (*GetReportOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		report, err := store.Reports().GetByID(ctx, userID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("report not found")
			}
			return nil, huma.Error500InternalServerError("failed to get report", err)
		}
		return &GetReportOutput{Body: report}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-report",
		Method:      http.MethodDelete,
		Path:        "/reports/{id}",
		Summary:     "Delete one of my advisory reports",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *DeleteReportInput) (*struct{}, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		if err := store.Reports().Delete(ctx, userID, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("report not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete report", err)
		}
		return nil, nil
	})
}
