package llm

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(c *Client)

// Client sends single-turn prompts through a Provider with a per-call
// timeout and retry policy.
type Client struct {
	provider    Provider
	timeout     time.Duration
	retry       *RetryConfig
	temperature *float64
	maxTokens   int
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithRetry(retry *RetryConfig) Option {
	return func(c *Client) {
		if retry != nil {
			c.retry = retry
		}
	}
}

func WithSampling(temperature float64, maxTokens int) Option {
	return func(c *Client) {
		c.temperature = &temperature
		c.maxTokens = maxTokens
	}
}

func NewClient(provider Provider, options ...Option) *Client {
	if provider == nil {
		panic("nil provider")
	}
	c := &Client{
		provider: provider,
		timeout:  DefaultProviderConfig().Timeout,
		retry:    DefaultRetryConfig,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Ask sends a system instruction and a user prompt to model and returns the
// trimmed completion.
func (c *Client) Ask(ctx context.Context, model, system, user string) (string, error) {
	req := Request{
		Model:       model,
		Messages:    []Message{System(system), User(user)},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var content string
	attempts, err := c.retry.Do(ctx, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.provider.Complete(callCtx, req)
		if err != nil {
			log.Warn().Err(err).Str("model", model).Msg("model call failed")
			return err
		}
		content = strings.TrimSpace(resp.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", NewModelError(model, "complete", ErrEmptyResponse)
	}

	log.Debug().Str("model", model).Int("attempts", attempts).Str("prompt", user).Str("completion", content).Msg("model call completed")
	return content, nil
}

func (c *Client) Close() error {
	return c.provider.Close()
}
