package utils

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	aiMaxAttempts = 3
	aiBaseDelay   = time.Second
)

// PlanPromptInputs is the structured farm context a crop plan prompt is
// built from. Image bytes, when present, make the call multimodal.
type PlanPromptInputs struct {
	SoilType          string
	LandSize          float64
	Irrigation        string
	Season            string
	PreferredLanguage string
	AdditionalNotes   string

	ImageData []byte
	ImageMIME string
}

type AIClientInterface interface {
	GenerateCropPlan(ctx context.Context, inputs PlanPromptInputs) (string, error)
	GenerateFollowUp(ctx context.Context, originalText, question, languageCode string) (string, error)
	AnalyzeDisease(ctx context.Context, media []byte, mimeType, languageCode string) (string, error)
	TestConnection(ctx context.Context) error
	Configured() bool
	Close() error
}

// GeminiClient wraps the generative API with prompt construction and the
// bounded retry policy for transient upstream failures.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrAIServiceNotConfigured
	}
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Configured() bool { return true }

func (c *GeminiClient) Close() error { return c.client.Close() }

func (c *GeminiClient) GenerateCropPlan(ctx context.Context, inputs PlanPromptInputs) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.6)
	model.SetMaxOutputTokens(1200)
	model.SetTopP(0.9)
	model.SetTopK(40)

	notes := inputs.AdditionalNotes
	if notes == "" {
		notes = "None"
	}

	prompt := fmt.Sprintf(`You are an expert agricultural advisor helping farmers in India. Generate a comprehensive crop plan based on the following inputs:

Soil Type: %s
Land Size: %g acres
Irrigation: %s
Season: %s
Additional Notes: %s

Please provide a detailed crop plan in %s that includes:

1. **Recommended Crops**: Suggest 3-5 suitable crops for the given conditions
2. **Planting Schedule**: When to plant each crop
3. **Soil Preparation**: How to prepare the soil
4. **Fertilizer Requirements**: Organic and chemical fertilizer recommendations
5. **Irrigation Schedule**: Watering frequency and methods
6. **Pest Management**: Common pests and organic control methods
7. **Harvest Timeline**: Expected harvest periods
8. **Expected Yield**: Approximate yield per acre
9. **Cost Estimation**: Rough cost breakdown for inputs
10. **Tips**: Additional farming tips and best practices

Make the response practical, easy to understand, and suitable for Indian farming conditions. Use simple language that farmers can easily follow.

Format the response in clear sections with headings. Keep the total response under 2000 words.`,
		inputs.SoilType, inputs.LandSize, inputs.Irrigation, inputs.Season, notes,
		LanguageName(inputs.PreferredLanguage))

	parts := []genai.Part{genai.Text(prompt)}
	if len(inputs.ImageData) > 0 {
		parts = append(parts, genai.Blob{MIMEType: inputs.ImageMIME, Data: inputs.ImageData})
	}

	return c.generate(ctx, model, parts...)
}

func (c *GeminiClient) GenerateFollowUp(ctx context.Context, originalText, question, languageCode string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(500)
	model.SetTopP(0.9)
	model.SetTopK(40)

	prompt := fmt.Sprintf(`You are an expert agricultural advisor. A farmer has a follow-up question about their crop plan.

Original Crop Plan:
%s

Farmer's Question: %s

Please provide a detailed, helpful answer in %s. Make sure to:
1. Address the specific question directly
2. Provide practical, actionable advice
3. Reference the original plan when relevant
4. Use simple language suitable for farmers
5. Include specific recommendations if applicable

Keep the response concise but comprehensive (under 500 words).`,
		originalText, question, LanguageName(languageCode))

	return c.generate(ctx, model, genai.Text(prompt))
}

func (c *GeminiClient) AnalyzeDisease(ctx context.Context, media []byte, mimeType, languageCode string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(1000)
	model.SetTopP(0.9)
	model.SetTopK(40)

	kind := MediaKindImage
	if strings.HasPrefix(mimeType, "video/") {
		kind = MediaKindVideo
	}

	prompt := fmt.Sprintf(`You are an expert plant pathologist. Analyze this %s of a crop and provide a comprehensive disease diagnosis.

Please provide your analysis in %s with the following information:

1. **Disease Identification**: Name of the disease (if identifiable)
2. **Confidence Level**: Your confidence in the diagnosis (0-100%%)
3. **Symptoms**: Detailed description of visible symptoms
4. **Affected Area**: Which part of the plant is affected (leaves, stems, roots, fruits, etc.)
5. **Severity**: Rate the severity (low, medium, high, critical)
6. **Cause**: What causes this disease
7. **Treatment Options**:
   - Organic remedies (preferred)
   - Chemical treatments (if necessary)
   - Cultural practices
8. **Prevention**: How to prevent this disease in the future
9. **Timeline**: How long treatment might take
10. **Cost Estimation**: Rough cost of treatment per acre

Make the response practical and suitable for Indian farming conditions. Use simple language that farmers can understand.

If the image is unclear or you cannot identify a specific disease, please mention this and provide general plant health advice.`,
		kind, LanguageName(languageCode))

	return c.generate(ctx, model,
		genai.Text(prompt),
		genai.Blob{MIMEType: mimeType, Data: media})
}

func (c *GeminiClient) TestConnection(ctx context.Context) error {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(100)

	_, err := c.generate(ctx, model, genai.Text(`Hello, this is a test. Please respond with "API connection successful".`))
	return err
}

func (c *GeminiClient) generate(ctx context.Context, model *genai.GenerativeModel, parts ...genai.Part) (string, error) {
	resp, err := Retry(ctx, aiMaxAttempts, aiBaseDelay, IsRetryableAIError, func() (*genai.GenerateContentResponse, error) {
		return model.GenerateContent(ctx, parts...)
	})
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyAIResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyAIResponse
	}
	return b.String(), nil
}

// UnconfiguredAIClient is the explicit "no credential" variant: every
// operation fails with ErrAIServiceNotConfigured instead of producing
// fallback content that would mask the misconfiguration.
type UnconfiguredAIClient struct{}

func NewUnconfiguredAIClient() *UnconfiguredAIClient {
	log.Println("GEMINI_API_KEY not set, AI endpoints will report service unavailable")
	return &UnconfiguredAIClient{}
}

func (u *UnconfiguredAIClient) GenerateCropPlan(context.Context, PlanPromptInputs) (string, error) {
	return "", ErrAIServiceNotConfigured
}

func (u *UnconfiguredAIClient) GenerateFollowUp(context.Context, string, string, string) (string, error) {
	return "", ErrAIServiceNotConfigured
}

func (u *UnconfiguredAIClient) AnalyzeDisease(context.Context, []byte, string, string) (string, error) {
	return "", ErrAIServiceNotConfigured
}

func (u *UnconfiguredAIClient) TestConnection(context.Context) error {
	return ErrAIServiceNotConfigured
}

func (u *UnconfiguredAIClient) Configured() bool { return false }

func (u *UnconfiguredAIClient) Close() error { return nil }
