// Package advisor calls an OpenAI-compatible LLM gateway to produce
// structured agronomy advice. Every operation forces a function call so
// the model's answer arrives as JSON arguments rather than free text.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNotConfigured is returned when the gateway API key is missing.
	ErrNotConfigured = errors.New("advisor: gateway API key not configured")
	// ErrRateLimited is returned on gateway HTTP 429.
	ErrRateLimited = errors.New("advisor: rate limit exceeded")
	// ErrCreditsExhausted is returned on gateway HTTP 402.
	ErrCreditsExhausted = errors.New("advisor: credits exhausted")
)

// TextModel serves the text-only soil and yield operations. Image
// diagnosis uses the configured (larger) model.
const TextModel = "google/gemini-3-flash-preview"

// Client is a typed client for the LLM gateway's chat completions endpoint.
type Client struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

// New constructs a Client. An empty apiKey is allowed; calls will then
// return ErrNotConfigured instead of reaching the gateway.
func New(url, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type imagePart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

type toolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type toolDef struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type toolChoice struct {
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Tools      []toolDef     `json:"tools"`
	ToolChoice toolChoice    `json:"tool_choice"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

// DiagnoseCrop analyzes a base64-encoded JPEG of a crop and returns a
// structured disease diagnosis.
func (c *Client) DiagnoseCrop(ctx context.Context, imageBase64, cropType string) (*DiseaseDiagnosis, error) {
	if imageBase64 == "" {
		return nil, errors.New("advisor: image data is required")
	}

	crop := cropType
	if crop == "" {
		crop = "unknown crop"
	}
	userParts := []imagePart{
		{Type: "text", Text: fmt.Sprintf("Analyze this image of %s and diagnose any disease present. Provide a complete structured diagnosis.", crop)},
		{Type: "image_url", ImageURL: &struct {
			URL string `json:"url"`
		}{URL: "data:image/jpeg;base64," + imageBase64}},
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: diseaseSystemPrompt},
			{Role: "user", Content: userParts},
		},
		Tools:      []toolDef{diseaseTool},
		ToolChoice: forceTool(diseaseTool.Function.Name),
	}

	var out DiseaseDiagnosis
	if err := c.complete(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeSoil evaluates the given soil readings and returns fertility
// scoring plus fertilizer and crop recommendations.
func (c *Client) AnalyzeSoil(ctx context.Context, sample SoilSample) (*SoilAnalysis, error) {
	var b strings.Builder
	b.WriteString("Analyze the following soil parameters:\n")
	fmt.Fprintf(&b, "- pH Level: %s\n", optFloat(sample.PH))
	fmt.Fprintf(&b, "- Nitrogen (N): %s kg/ha\n", optFloat(sample.Nitrogen))
	fmt.Fprintf(&b, "- Phosphorus (P): %s kg/ha\n", optFloat(sample.Phosphorus))
	fmt.Fprintf(&b, "- Potassium (K): %s kg/ha\n", optFloat(sample.Potassium))
	fmt.Fprintf(&b, "- Moisture Content: %s%%\n", optFloat(sample.Moisture))
	fmt.Fprintf(&b, "- Organic Matter: %s%%\n", optFloat(sample.OrganicMatter))
	fmt.Fprintf(&b, "- Location/Region: %s\n", optStr(sample.Location, "Not specified"))
	fmt.Fprintf(&b, "- Intended Crop: %s\n", optStr(sample.CropType, "General farming"))
	b.WriteString("\nProvide a comprehensive soil analysis with actionable recommendations.")

	req := chatRequest{
		Model: TextModel,
		Messages: []chatMessage{
			{Role: "system", Content: soilSystemPrompt},
			{Role: "user", Content: b.String()},
		},
		Tools:      []toolDef{soilTool},
		ToolChoice: forceTool(soilTool.Function.Name),
	}

	var out SoilAnalysis
	if err := c.complete(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PredictYield forecasts the harvest for the described farm.
func (c *Client) PredictYield(ctx context.Context, in YieldInput) (*YieldPrediction, error) {
	if in.CropType == "" || in.FarmSize <= 0 {
		return nil, errors.New("advisor: crop type and farm size are required")
	}

	var b strings.Builder
	b.WriteString("Predict the yield for the following farm and provide optimization recommendations:\n")
	fmt.Fprintf(&b, "- Crop: %s\n", in.CropType)
	fmt.Fprintf(&b, "- Variety: %s\n", optStr(in.Variety, "Standard"))
	fmt.Fprintf(&b, "- Farm Size: %.2f acres\n", in.FarmSize)
	fmt.Fprintf(&b, "- Soil Type: %s\n", optStr(in.SoilType, "Not specified"))
	fmt.Fprintf(&b, "- Irrigation: %s\n", optStr(in.IrrigationType, "Not specified"))
	fmt.Fprintf(&b, "- Fertilizers Used: %s\n", optStr(in.FertilizersUsed, "Not specified"))
	fmt.Fprintf(&b, "- Sowing Date: %s\n", optStr(in.SowingDate, "Not specified"))
	fmt.Fprintf(&b, "- Location: %s\n", optStr(in.Location, "Not specified"))
	fmt.Fprintf(&b, "- Previous Yield: %s\n", optStr(in.PreviousYield, "Not available"))
	fmt.Fprintf(&b, "- Weather Conditions: %s\n", optStr(in.WeatherConditions, "Not specified"))

	req := chatRequest{
		Model: TextModel,
		Messages: []chatMessage{
			{Role: "system", Content: yieldSystemPrompt},
			{Role: "user", Content: b.String()},
		},
		Tools:      []toolDef{yieldTool},
		ToolChoice: forceTool(yieldTool.Function.Name),
	}

	var out YieldPrediction
	if err := c.complete(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// complete performs one chat completion round trip and unmarshals the
// forced tool call's arguments into out.
func (c *Client) complete(ctx context.Context, payload chatRequest, out any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("advisor: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("advisor: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("advisor: gateway call: %w", ctx.Err())
		}
		return fmt.Errorf("advisor: gateway call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("advisor: read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrCreditsExhausted
	default:
		log.Error().Int("status", resp.StatusCode).Str("body", string(raw)).Msg("LLM gateway error")
		return fmt.Errorf("advisor: gateway returned status %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return fmt.Errorf("advisor: decode response: %w", err)
	}
	if len(cr.Choices) == 0 || len(cr.Choices[0].Message.ToolCalls) == 0 {
		return errors.New("advisor: no tool call in model response")
	}

	args := cr.Choices[0].Message.ToolCalls[0].Function.Arguments
	if err := json.Unmarshal([]byte(args), out); err != nil {
		return fmt.Errorf("advisor: parse tool arguments: %w", err)
	}
	return nil
}

func forceTool(name string) toolChoice {
	var tc toolChoice
	tc.Type = "function"
	tc.Function.Name = name
	return tc
}

func optFloat(v *float64) string {
	if v == nil {
		return "Not provided"
	}
	return fmt.Sprintf("%g", *v)
}

func optStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
