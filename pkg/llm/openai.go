package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	DefaultOpenAIModel = "gpt-4o"
	openAIURL          = "https://api.openai.com/v1/chat/completions"
)

type OpenAI struct {
	apiKey string
	client *http.Client
	model  string
	url    string
}

func NewOpenAI(apiKey string) *OpenAI {
	return NewOpenAIWithModel(apiKey, DefaultOpenAIModel)
}

func NewOpenAIWithModel(apiKey, model string) *OpenAI {
	return &OpenAI{
		apiKey: apiKey,
		client: &http.Client{Timeout: requestTimeout},
		model:  model,
		url:    openAIURL,
	}
}

func (o *OpenAI) Name() string { return "openai:" + o.model }

func (o *OpenAI) Chat(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"model":           o.model,
		"messages":        userMessage(prompt),
		"max_tokens":      8000,
		"temperature":     Temperature,
		"response_format": map[string]string{"type": "json_object"},
	}
	headers := map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", o.apiKey),
	}

	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := postJSON(ctx, o.client, "OpenAI", o.url, headers, body, &openaiResp); err != nil {
		return "", err
	}
	if openaiResp.Error.Message != "" {
		return "", fmt.Errorf("OpenAI API error: %s", openaiResp.Error.Message)
	}
	if len(openaiResp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return openaiResp.Choices[0].Message.Content, nil
}
