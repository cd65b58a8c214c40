package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	DefaultClaudeModel = "claude-sonnet-4-20250514"
	claudeURL          = "https://api.anthropic.com/v1/messages"
)

type Claude struct {
	apiKey string
	client *http.Client
	model  string
	url    string
}

func NewClaude(apiKey string) *Claude {
	return NewClaudeWithModel(apiKey, DefaultClaudeModel)
}

func NewClaudeWithModel(apiKey, model string) *Claude {
	return &Claude{
		apiKey: apiKey,
		client: &http.Client{Timeout: requestTimeout},
		model:  model,
		url:    claudeURL,
	}
}

func (c *Claude) Name() string { return "claude:" + c.model }

func (c *Claude) Chat(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"model":       c.model,
		"messages":    userMessage(prompt),
		"max_tokens":  8000,
		"temperature": Temperature,
	}
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": "2023-06-01",
	}

	// Minimal struct to pull out the content text.
	var claudeResp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := postJSON(ctx, c.client, "Claude", c.url, headers, body, &claudeResp); err != nil {
		return "", err
	}
	if claudeResp.Error.Message != "" {
		return "", fmt.Errorf("Claude API error: %s", claudeResp.Error.Message)
	}
	if len(claudeResp.Content) == 0 {
		return "", ErrEmptyResponse
	}
	return claudeResp.Content[0].Text, nil
}
