package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agrisetu/agrisetu/internal/advisor"
	"github.com/agrisetu/agrisetu/internal/domain"
)

type DiagnoseCropInput struct {
	Body struct {
		ImageBase64 string `json:"image_base64" minLength:"1" doc:"Base64-encoded JPEG of the crop"`
		CropType    string `json:"crop_type,omitempty" maxLength:"100" doc:"Crop name, if known"`
	}
}

type DiagnoseCropOutput struct {
	Body struct {
		ReportID  uuid.UUID                 `json:"report_id"`
		Diagnosis *advisor.DiseaseDiagnosis `json:"diagnosis"`
	}
}

type AnalyzeSoilInput struct {
	Body advisor.SoilSample
}

type AnalyzeSoilOutput struct {
	Body struct {
		ReportID uuid.UUID             `json:"report_id"`
		Analysis *advisor.SoilAnalysis `json:"analysis"`
	}
}

type PredictYieldInput struct {
	Body advisor.YieldInput
}

type PredictYieldOutput struct {
	Body struct {
		ReportID   uuid.UUID                `json:"report_id"`
		Prediction *advisor.YieldPrediction `json:"prediction"`
	}
}

// RegisterAdvisorRoutes mounts the three AI advisory tools. imageModel is
// the model used for image diagnosis; text analyses run on
// advisor.TextModel.
func RegisterAdvisorRoutes(api huma.API, store DataStore, adv Advisor, imageModel string) {
	huma.Register(api, huma.Operation{
		OperationID: "diagnose-crop",
		Method:      http.MethodPost,
		Path:        "/advisor/disease",
		Summary:     "Diagnose crop disease from an image",
		Tags:        []string{"Advisor"},
	}, func(ctx context.Context, input *DiagnoseCropInput) (*DiagnoseCropOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		diag, err := adv.DiagnoseCrop(ctx, input.Body.ImageBase64, input.Body.CropType)
		if err != nil {
			return nil, gatewayError(err)
		}

		title := diag.DiseaseName
		if diag.IsHealthy {
			title = "Healthy crop"
		}
		summary := "Crop image diagnosis"
		if input.Body.CropType != "" {
			summary = fmt.Sprintf("Image diagnosis for %s", input.Body.CropType)
		}
		reportID := saveReport(ctx, store, userID, domain.ReportKindDisease, title, summary, imageModel, diag)

		out := &DiagnoseCropOutput{}
		out.Body.ReportID = reportID
		out.Body.Diagnosis = diag
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "analyze-soil",
		Method:      http.MethodPost,
		Path:        "/advisor/soil",
		Summary:     "Analyze soil parameters",
		Tags:        []string{"Advisor"},
	}, func(ctx context.Context, input *AnalyzeSoilInput) (*AnalyzeSoilOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		analysis, err := adv.AnalyzeSoil(ctx, input.Body)
		if err != nil {
			return nil, gatewayError(err)
		}

		title := fmt.Sprintf("Soil analysis (%s)", analysis.FertilityRating)
		summary := "Soil parameter analysis"
		if input.Body.Location != "" {
			summary = fmt.Sprintf("Soil analysis for %s", input.Body.Location)
		}
		reportID := saveReport(ctx, store, userID, domain.ReportKindSoil, title, summary, advisor.TextModel, analysis)

		out := &AnalyzeSoilOutput{}
		out.Body.ReportID = reportID
		out.Body.Analysis = analysis
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "predict-yield",
		Method:      http.MethodPost,
		Path:        "/advisor/yield",
		Summary:     "Predict crop yield",
		Tags:        []string{"Advisor"},
	}, func(ctx context.Context, input *PredictYieldInput) (*PredictYieldOutput, error) {
		userID, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		if input.Body.CropType == "" || input.Body.FarmSize <= 0 {
			return nil, huma.Error400BadRequest("crop type and farm size are required")
		}

		pred, err := adv.PredictYield(ctx, input.Body)
		if err != nil {
			return nil, gatewayError(err)
		}

		title := fmt.Sprintf("%s yield prediction", input.Body.CropType)
		summary := fmt.Sprintf("Yield prediction for %.2f acres of %s", input.Body.FarmSize, input.Body.CropType)
		reportID := saveReport(ctx, store, userID, domain.ReportKindYield, title, summary, advisor.TextModel, pred)

		out := &PredictYieldOutput{}
		out.Body.ReportID = reportID
		out.Body.Prediction = pred
		return out, nil
	})
}

// gatewayError maps advisor failures to HTTP statuses. Quota conditions
// surface with their own statuses so clients can tell them apart from
// outages.
func gatewayError(err error) error {
	switch {
	case errors.Is(err, advisor.ErrRateLimited):
		return huma.Error429TooManyRequests("rate limit exceeded, please try again later")
	case errors.Is(err, advisor.ErrCreditsExhausted):
		return huma.NewError(http.StatusPaymentRequired, "AI credits exhausted")
	case errors.Is(err, advisor.ErrNotConfigured):
		return huma.Error503ServiceUnavailable("advisory service is not configured")
	default:
		return huma.Error502BadGateway("advisory service failed", err)
	}
}

// saveReport persists the advisory result for the history pages. Storage
// is best-effort: the advice itself is the response payload, so a failed
// insert logs and returns uuid.Nil instead of failing the request.
func saveReport(ctx context.Context, store DataStore, userID uuid.UUID, kind domain.ReportKind, title, summary, model string, result any) uuid.UUID {
	resultMap, err := toMap(result)
	if err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("advisor: failed to encode report result")
		return uuid.Nil
	}

	report := &domain.Report{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Summary:   summary,
		Result:    resultMap,
		ModelUsed: model,
		CreatedAt: time.Now(),
	}
	if err := store.Reports().Create(ctx, report); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("advisor: failed to store report")
		return uuid.Nil
	}
	return report.ID
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
