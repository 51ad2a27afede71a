package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
)

// ChatBackend talks to any OpenAI-compatible chat completions endpoint.
// Grok (api.x.ai) and OpenAI both go through it.
type ChatBackend struct {
	name   string
	client *goopenai.Client
	model  string
}

// NewChatBackend builds a backend for the given endpoint. An empty baseURL
// keeps the library default (api.openai.com).
func NewChatBackend(name, apiKey, baseURL, model string, httpClient *http.Client) *ChatBackend {
	config := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient != nil {
		config.HTTPClient = httpClient
	}
	return &ChatBackend{
		name:   name,
		client: goopenai.NewClientWithConfig(config),
		model:  model,
	}
}

func (b *ChatBackend) Name() string {
	return b.name
}

// Analyze sends the system and user messages and decodes the first choice.
func (b *ChatBackend) Analyze(ctx context.Context, prompt Prompt) (Analysis, error) {
	req := goopenai.ChatCompletionRequest{
		Model: b.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt.User},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.4,
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Analysis{}, b.classify(err)
	}
	if len(resp.Choices) == 0 {
		return Analysis{}, &CallError{Backend: b.name, Kind: KindDecode, Err: errors.New("no choices in response")}
	}
	return decodeAnalysis(b.name, resp.Choices[0].Message.Content)
}

func (b *ChatBackend) classify(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return &CallError{Backend: b.name, Kind: KindStatus, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return &CallError{Backend: b.name, Kind: KindStatus, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &CallError{Backend: b.name, Kind: KindTransport, Err: err}
}
