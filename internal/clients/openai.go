package clients

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"kindnessconnect-backend/internal/domain"
)

// ChatCompletionClient talks to any OpenAI-compatible chat completions endpoint. It is
// used against the Hugging Face router.
type ChatCompletionClient struct {
	name   string
	token  string
	model  string
	client *openai.Client
}

func NewChatCompletionClient(name, token, baseURL, model string, timeout time.Duration) *ChatCompletionClient {
	cfg := openai.DefaultConfig(token)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &ChatCompletionClient{
		name:   name,
		token:  token,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (c *ChatCompletionClient) Name() string { return c.name }

func (c *ChatCompletionClient) Generate(ctx context.Context, prompt domain.StoryPrompt) (string, error) {
	if c.token == "" {
		return "", fmt.Errorf("%s: %w", c.name, ErrNotConfigured)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.Instruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt.UserContent},
		},
		MaxTokens:   prompt.MaxTokens,
		Temperature: float32(prompt.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", c.name)
	}
	return resp.Choices[0].Message.Content, nil
}
