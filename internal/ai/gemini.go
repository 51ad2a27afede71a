package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiBackend implements Backend using Google's Gemini models.
type GeminiBackend struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiBackend initializes a new Gemini client. Extra options are
// appended after the API key.
func NewGeminiBackend(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.4)

	return &GeminiBackend{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiBackend) Name() string {
	return "gemini"
}

// Close cleans up the Gemini client resources.
func (g *GeminiBackend) Close() error {
	return g.client.Close()
}

// Analyze sends the instruction and route message as a single prompt.
func (g *GeminiBackend) Analyze(ctx context.Context, prompt Prompt) (Analysis, error) {
	// Combined prompt keeps instruction and route data in one turn.
	fullPrompt := fmt.Sprintf("%s\n\nUser Message: %s", prompt.System, prompt.User)

	resp, err := g.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return Analysis{}, &CallError{Backend: g.Name(), Kind: KindStatus, StatusCode: apiErr.Code, Err: err}
		}
		return Analysis{}, &CallError{Backend: g.Name(), Kind: KindTransport, Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Analysis{}, &CallError{Backend: g.Name(), Kind: KindDecode, Err: errors.New("no response candidates from Gemini")}
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	return decodeAnalysis(g.Name(), responseText.String())
}
