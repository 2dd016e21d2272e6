package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/agrisetu/agrisetu/internal/domain"
)

type GetMyProfileOutput struct {
	Body *domain.Profile
}

type UpdateMyProfileInput struct {
	Body struct {
		FullName   string `json:"full_name,omitempty" maxLength:"255" doc:"Display name"`
		Phone      string `json:"phone,omitempty" maxLength:"20" doc:"Phone number"`
		Village    string `json:"village,omitempty" maxLength:"255" doc:"Village"`
		District   string `json:"district,omitempty" maxLength:"255" doc:"District"`
		Occupation string `json:"occupation,omitempty" maxLength:"100" doc:"Self-declared occupation"`
	}
}

type UpdateMyProfileOutput struct {
	Body *domain.Profile
}

func RegisterProfileRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-my-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get my profile",
		Tags:        []string{"Profiles"},
	}, func(ctx context.Context, _ *struct{}) (*GetMyProfileOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := store.Users().GetProfile(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("profile not found")
			}
			return nil, huma.Error500InternalServerError("failed to get profile", err)
		}
		return &GetMyProfileOutput{Body: profile}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-my-profile",
		Method:      http.MethodPut,
		Path:        "/profile",
		Summary:     "Update my profile",
		Tags:        []string{"Profiles"},
	}, func(ctx context.Context, input *UpdateMyProfileInput) (*UpdateMyProfileOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		existing, err := store.Users().GetProfile(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("profile not found")
			}
			return nil, huma.Error500InternalServerError("failed to get profile", err)
		}

		if input.Body.FullName != "" {
			existing.FullName = input.Body.FullName
		}
		if input.Body.Phone != "" {
			existing.Phone = input.Body.Phone
		}
		if input.Body.Village != "" {
			existing.Village = input.Body.Village
		}
		if input.Body.District != "" {
			existing.District = input.Body.District
		}
		if input.Body.Occupation != "" {
			existing.Occupation = input.Body.Occupation
		}
		existing.UpdatedAt = time.Now()

		if err := store.Users().UpdateProfile(ctx, existing); err != nil {
			return nil, huma.Error500InternalServerError("failed to update profile", err)
		}
		return &UpdateMyProfileOutput{Body: existing}, nil
	})
}
