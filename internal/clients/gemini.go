package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"kindnessconnect-backend/internal/domain"
)

// ErrNotConfigured is returned by a client whose credentials are missing.
var ErrNotConfigured = errors.New("client not configured")

const geminiAPIVersion = "v1beta"

// GeminiClient generates text through the Gemini API.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewGeminiClient builds a client for the given model. An empty baseURL uses the SDK default.
func NewGeminiClient(apiKey, baseURL, model string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) Generate(ctx context.Context, prompt domain.StoryPrompt) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini: %w", ErrNotConfigured)
	}

	cfg := &genai.ClientConfig{
		APIKey:      c.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  c.httpClient,
		HTTPOptions: genai.HTTPOptions{APIVersion: geminiAPIVersion},
	}
	if c.baseURL != "" {
		cfg.HTTPOptions.BaseURL = c.baseURL + "/"
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt.UserContent), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.Instruction, genai.RoleUser),
		Temperature:       genai.Ptr(float32(prompt.Temperature)),
		MaxOutputTokens:   int32(prompt.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("no response from Gemini")
	}
	return text, nil
}
