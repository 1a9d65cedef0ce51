// Package completion issues single chat-completion calls against the
// OpenAI-compatible collaborator and normalizes failures into reply text.
package completion

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/shadowintel/shadowbot/internal/agent"
	"github.com/shadowintel/shadowbot/internal/clock/system"
	"github.com/shadowintel/shadowbot/internal/metrics"
)

// Config identifies the completion endpoint and model.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client implements agent.Completer over the OpenAI chat completions API.
// One call per run; never retried, never streamed.
type Client struct {
	api    openai.Client
	model  string
	clock  agent.Clock
	logger *zap.Logger
}

// New builds a Client. BaseURL is optional and supports OpenAI-compatible
// gateways; a nil clock falls back to the system clock.
func New(cfg Config, clock agent.Clock, logger *zap.Logger) *Client {
	if clock == nil {
		clock = system.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// A failed call resolves to an error reply; it is never retried.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{
		api:    openai.NewClient(opts...),
		model:  cfg.Model,
		clock:  clock,
		logger: logger,
	}
}

// Complete sends one system+user message pair and returns the completion
// text. Failures are wrapped as agent.CompletionError.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	start := c.clock.Now()
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	elapsed := c.clock.Now().Sub(start)
	if err != nil {
		metrics.ObserveCompletion("error", elapsed)
		c.logger.Warn("completion call failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return "", &agent.CompletionError{Err: err}
	}
	if len(resp.Choices) == 0 {
		metrics.ObserveCompletion("empty", elapsed)
		return "", &agent.CompletionError{Err: errors.New("no choices in response")}
	}

	metrics.ObserveCompletion("ok", elapsed)
	c.logger.Debug("completion call succeeded",
		zap.Duration("elapsed", elapsed),
		zap.Int64("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// FormatError renders a completion failure as the fixed user-facing reply.
func FormatError(err error) string {
	var ce *agent.CompletionError
	if errors.As(err, &ce) {
		return fmt.Sprintf("OpenAI Error: %v", ce.Err)
	}
	return fmt.Sprintf("OpenAI Error: %v", err)
}
