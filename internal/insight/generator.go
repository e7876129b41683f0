package insight

import (
	"context"
	"errors"
)

// Generator turns a prompt into prose.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

var (
	ErrEmptyPrompt   = errors.New("insight_empty_prompt")
	ErrEmptyResponse = errors.New("insight_empty_response")
	ErrUnavailable   = errors.New("insight_unavailable")
)
