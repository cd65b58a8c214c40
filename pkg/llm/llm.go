package llm

import (
	"context"
	"errors"
)

// Temperature keeps answers close to deterministic across providers.
const Temperature = 0.2

var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrEmptyResponse     = errors.New("empty response from model")
)

// LLM sends one prompt and returns the raw text answer.
type LLM interface {
	Chat(ctx context.Context, prompt string) (string, error)
	Name() string
}
