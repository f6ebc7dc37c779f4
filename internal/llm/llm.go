// Package llm wraps the hosted generative text providers behind a single Completer capability.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	defaultTimeout     = 30 * time.Second
	defaultMaxTokens   = 1000
	defaultTemperature = 0.7
)

// ErrNotConfigured is returned by the factory when no provider is selected.
var ErrNotConfigured = errors.New("no language model provider configured")

// ErrEmptyCompletion is returned when the provider answered without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// Completer produces free text for a system instruction and a user prompt.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Config struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint.
	BaseURL string
	// Timeout applies when the caller's context has no deadline.
	Timeout time.Duration
}

// New returns the Completer for the configured provider.
func New(ctx context.Context, cfg Config) (Completer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	switch cfg.Provider {
	case "", ProviderNone:
		return nil, ErrNotConfigured
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s: API key is required", cfg.Provider)
		}
		return NewOpenAIClient(cfg), nil
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s: API key is required", cfg.Provider)
		}
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown language model provider %q", cfg.Provider)
	}
}

// withDefaultTimeout bounds ctx by timeout unless it already carries a deadline.
func withDefaultTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
