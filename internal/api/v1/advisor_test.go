package v1_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisetu/agrisetu/internal/advisor"
	v1 "github.com/agrisetu/agrisetu/internal/api/v1"
	"github.com/agrisetu/agrisetu/internal/domain"
)

func TestDiagnoseCropRoute(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("saves_report", func(t *testing.T) {
		t.Parallel()

		var saved *domain.Report
		store := &mockDataStore{
			reports: &mockReportRepo{
				createFunc: func(_ context.Context, r *domain.Report) error {
					saved = r
					return nil
				},
			},
		}
		adv := &mockAdvisor{
			diagnoseCropFunc: func(_ context.Context, imageBase64, cropType string) (*advisor.DiseaseDiagnosis, error) {
				assert.Equal(t, "aW1hZ2U=", imageBase64)
				assert.Equal(t, "tomato", cropType)
				return &advisor.DiseaseDiagnosis{
					IsHealthy:   false,
					DiseaseName: "Early blight",
					Confidence:  0.91,
					Severity:    "moderate",
				}, nil
			},
		}

		_, api := humatest.New(t)
		v1.RegisterAdvisorRoutes(api, store, adv, "google/gemini-2.5-pro")

		resp := api.PostCtx(userCtx(userID), "/advisor/disease", map[string]any{
			"image_base64": "aW1hZ2U=",
			"crop_type":    "tomato",
		})

		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, saved)
		assert.Equal(t, userID, saved.UserID)
		assert.Equal(t, domain.ReportKindDisease, saved.Kind)
		assert.Equal(t, "Early blight", saved.Title)
		assert.Equal(t, "google/gemini-2.5-pro", saved.ModelUsed)
	})

	t.Run("healthy_crop_title", func(t *testing.T) {
		t.Parallel()

		var saved *domain.Report
		store := &mockDataStore{
			reports: &mockReportRepo{
				createFunc: func(_ context.Context, r *domain.Report) error {
					saved = r
					return nil
				},
			},
		}
		adv := &mockAdvisor{
			diagnoseCropFunc: func(_ context.Context, _, _ string) (*advisor.DiseaseDiagnosis, error) {
				return &advisor.DiseaseDiagnosis{IsHealthy: true}, nil
			},
		}

		_, api := humatest.New(t)
		v1.RegisterAdvisorRoutes(api, store, adv, "google/gemini-2.5-pro")

		resp := api.PostCtx(userCtx(userID), "/advisor/disease", map[string]any{
			"image_base64": "aW1hZ2U=",
		})
		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, saved)
		assert.Equal(t, "Healthy crop", saved.Title)
	})

	t.Run("report_failure_is_best_effort", func(t *testing.T) {
		t.Parallel()

		store := &mockDataStore{
			reports: &mockReportRepo{
				createFunc: func(_ context.Context, _ *domain.Report) error {
					return errors.New("db down")
				},
			},
		}
		adv := &mockAdvisor{
			diagnoseCropFunc: func(_ context.Context, _, _ string) (*advisor.DiseaseDiagnosis, error) {
				return &advisor.DiseaseDiagnosis{IsHealthy: true}, nil
			},
		}

		_, api := humatest.New(t)
		v1.RegisterAdvisorRoutes(api, store, adv, "google/gemini-2.5-pro")

		resp := api.PostCtx(userCtx(userID), "/advisor/disease", map[string]any{
			"image_base64": "aW1hZ2U=",
		})
		assert.Equal(t, http.StatusOK, resp.Code, "advice must still be returned")
	})
}

func TestAnalyzeSoilRoute(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var saved *domain.Report
	store := &mockDataStore{
		reports: &mockReportRepo{
			createFunc: func(_ context.Context, r *domain.Report) error {
				saved = r
				return nil
			},
		},
	}
	adv := &mockAdvisor{
		analyzeSoilFunc: func(_ context.Context, sample advisor.SoilSample) (*advisor.SoilAnalysis, error) {
			assert.Equal(t, "Nashik", sample.Location)
			return &advisor.SoilAnalysis{FertilityRating: "good"}, nil
		},
	}

	_, api := humatest.New(t)
	v1.RegisterAdvisorRoutes(api, store, adv, "google/gemini-2.5-pro")

	resp := api.PostCtx(userCtx(userID), "/advisor/soil", map[string]any{
		"ph":       6.8,
		"location": "Nashik",
	})

	require.Equal(t, http.StatusOK, resp.Code)
	require.NotNil(t, saved)
	assert.Equal(t, domain.ReportKindSoil, saved.Kind)
	assert.Equal(t, advisor.TextModel, saved.ModelUsed)
}

func TestPredictYieldRoute(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("requires_crop_and_size", func(t *testing.T) {
		t.Parallel()

		store := &mockDataStore{reports: &mockReportRepo{}}
		_, api := humatest.New(t)
		v1.RegisterAdvisorRoutes(api, store, &mockAdvisor{}, "google/gemini-2.5-pro")

		resp := api.PostCtx(userCtx(userID), "/advisor/yield", map[string]any{
			"cropType": "wheat",
		})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		var saved *domain.Report
		store := &mockDataStore{
			reports: &mockReportRepo{
				createFunc: func(_ context.Context, r *domain.Report) error {
					saved = r
					return nil
				},
			},
		}
		adv := &mockAdvisor{
			predictYieldFunc: func(_ context.Context, in advisor.YieldInput) (*advisor.YieldPrediction, error) {
				assert.Equal(t, "wheat", in.CropType)
				return &advisor.YieldPrediction{}, nil
			},
		}

		_, api := humatest.New(t)
		v1.RegisterAdvisorRoutes(api, store, adv, "google/gemini-2.5-pro")

		resp := api.PostCtx(userCtx(userID), "/advisor/yield", map[string]any{
			"cropType": "wheat",
			"farmSize": 2.5,
		})
		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, saved)
		assert.Equal(t, domain.ReportKindYield, saved.Kind)
	})
}

func TestGatewayErrorMapping(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"rate_limited", advisor.ErrRateLimited, http.StatusTooManyRequests},
		{"credits_exhausted", advisor.ErrCreditsExhausted, http.StatusPaymentRequired},
		{"not_configured", advisor.ErrNotConfigured, http.StatusServiceUnavailable},
		{"gateway_failure", errors.New("boom"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &mockDataStore{reports: &mockReportRepo{}}
			adv := &mockAdvisor{
				diagnoseCropFunc: func(_ context.Context, _, _ string) (*advisor.DiseaseDiagnosis, error) {
					return nil, tt.err
				},
			}

			_, api := humatest.New(t)
			v1.RegisterAdvisorRoutes(api, store, adv, "google/gemini-2.5-pro")

			resp := api.PostCtx(userCtx(userID), "/advisor/disease", map[string]any{
				"image_base64": "aW1hZ2U=",
			})
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}
