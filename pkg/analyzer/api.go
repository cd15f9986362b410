package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/santaclaude2025/ccretro/pkg/config"
	"github.com/santaclaude2025/ccretro/pkg/logger"
)

// APIError reports a failed Messages API call
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("anthropic API error (status %d): %s", e.StatusCode, e.Message)
	}
	return "anthropic API error: " + e.Message
}

// APIInvoker sends the prompt as a single user message through the
// Anthropic Messages API
type APIInvoker struct {
	client    anthropic.Client
	Model     string
	MaxTokens int64
	Timeout   time.Duration
}

// NewAPIInvoker creates an API invoker. Extra options are appended after
// the API key; retries are disabled.
func NewAPIInvoker(apiKey, model string, opts ...option.RequestOption) (*APIInvoker, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s is required for the api backend", config.APIKeyEnv)
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	all := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &APIInvoker{
		client:    anthropic.NewClient(all...),
		Model:     model,
		MaxTokens: config.APIMaxOutputTokens,
		Timeout:   config.ModelTimeout,
	}, nil
}

// Invoke implements Invoker
func (a *APIInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	logger.Info("Calling Messages API with model %s (prompt %d bytes)", a.Model, len(prompt))
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.Model),
		MaxTokens: a.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", ErrTimeout, a.Timeout)
		}
		var sdkErr *anthropic.Error
		if errors.As(err, &sdkErr) {
			return "", &APIError{StatusCode: sdkErr.StatusCode, Message: sdkErr.Error()}
		}
		return "", &APIError{Message: err.Error()}
	}

	var parts []string
	for _, block := range resp.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	logger.Info("Messages API usage: %d input, %d output tokens", resp.Usage.InputTokens, resp.Usage.OutputTokens)

	return strings.Join(parts, ""), nil
}
