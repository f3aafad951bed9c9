package generativeAI

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

const DefaultModel = "gemini-2.5-flash"

// TextGenerator is the slice of the Gemini API the planner relies on.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
	Model() string
}

var _ TextGenerator = (*AIClient)(nil)

type AIClient struct {
	client *genai.Client
	model  string
}

// NewAIClient builds a Gemini client. An empty apiKey is a configuration
// error reported to the caller, not a fatal one: the rest of the service
// keeps working without plan generation.
func NewAIClient(ctx context.Context, apiKey, model string) (*AIClient, error) {
	if apiKey == "" {
		return nil, types.ErrMissingAICredential
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIClient{
		client: client,
		model:  model,
	}, nil
}

func (ai *AIClient) Model() string {
	return ai.model
}

// GenerateContent sends a single-turn prompt and returns the response text.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		if strings.Contains(err.Error(), "API key not valid") {
			return "", fmt.Errorf("%w: %v", types.ErrInvalidAICredential, err)
		}
		return "", fmt.Errorf("%w: %v", types.ErrGeneration, err)
	}
	txt := result.Text()
	if txt == "" {
		return "", fmt.Errorf("%w: empty response from model %s", types.ErrGeneration, ai.model)
	}
	return txt, nil
}

// StreamContent streams a single-turn response, calling onChunk with each
// partial text as it arrives, and returns the concatenated text.
func (ai *AIClient) StreamContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig, onChunk func(string)) (string, error) {
	var b strings.Builder
	for chunk, err := range ai.client.Models.GenerateContentStream(ctx, ai.model, genai.Text(prompt), config) {
		if err != nil {
			if strings.Contains(err.Error(), "API key not valid") {
				return b.String(), fmt.Errorf("%w: %v", types.ErrInvalidAICredential, err)
			}
			return b.String(), fmt.Errorf("%w: %v", types.ErrGeneration, err)
		}
		txt := chunk.Text()
		if txt == "" {
			continue
		}
		b.WriteString(txt)
		if onChunk != nil {
			onChunk(txt)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: empty response from model %s", types.ErrGeneration, ai.model)
	}
	return b.String(), nil
}

// JSONConfig builds the request config used for structured JSON output.
func JSONConfig(systemInstruction string, temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](temperature),
	}
}
