package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/voocel/litellm"
)

// chatClient is the part of *litellm.Client the provider calls.
type chatClient interface {
	Chat(ctx context.Context, req *litellm.Request) (*litellm.Response, error)
}

var _ chatClient = (*litellm.Client)(nil)

// LiteLLMProvider implements Provider using the litellm library
type LiteLLMProvider struct {
	client   chatClient
	config   ProviderConfig
	provider string
}

// NewLiteLLMProvider creates a provider whose backend is chosen by the
// configured model name.
func NewLiteLLMProvider(config ProviderConfig) (*LiteLLMProvider, error) {
	if config.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	provider := providerFor(config.Model)
	defaults := litellm.WithDefaults(config.MaxTokens, config.Temperature)

	var client *litellm.Client
	switch provider {
	case "anthropic":
		if config.BaseURL != "" {
			client = litellm.New(litellm.WithAnthropic(config.APIKey, config.BaseURL), defaults)
		} else {
			client = litellm.New(litellm.WithAnthropic(config.APIKey), defaults)
		}
	case "gemini":
		if config.BaseURL != "" {
			client = litellm.New(litellm.WithGemini(config.APIKey, config.BaseURL), defaults)
		} else {
			client = litellm.New(litellm.WithGemini(config.APIKey), defaults)
		}
	default:
		if config.BaseURL != "" {
			client = litellm.New(litellm.WithOpenAI(config.APIKey, config.BaseURL), defaults)
		} else {
			client = litellm.New(litellm.WithOpenAI(config.APIKey), defaults)
		}
	}

	return &LiteLLMProvider{
		client:   client,
		config:   config,
		provider: provider,
	}, nil
}

// Complete implements the chat completion using litellm
func (p *LiteLLMProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	if req.Model == "" {
		req.Model = p.config.Model
	}
	if req.Temperature == nil {
		req.Temperature = litellm.Float64Ptr(p.config.Temperature)
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = p.config.MaxTokens
	}

	litellmReq := &litellm.Request{
		Model:       req.Model,
		Messages:    convertMessages(req.Messages),
		Temperature: litellm.Float64Ptr(*req.Temperature),
	}
	if req.MaxTokens != 0 {
		litellmReq.MaxTokens = litellm.IntPtr(req.MaxTokens)
	}

	resp, err := p.client.Chat(ctx, litellmReq)
	if err != nil {
		return nil, NewModelError(req.Model, "complete", classify(ctx, err))
	}

	return convertResponse(req.Model, resp), nil
}

// Provider returns the backend name the client talks to
func (p *LiteLLMProvider) Provider() string {
	return p.provider
}

// Close closes the provider connection
func (p *LiteLLMProvider) Close() error {
	return nil
}

func convertMessages(messages []Message) []litellm.Message {
	result := make([]litellm.Message, len(messages))
	for i, msg := range messages {
		result[i] = litellm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return result
}

func convertResponse(model string, resp *litellm.Response) *Response {
	out := &Response{
		Content:      resp.Content,
		Model:        resp.Model,
		FinishReason: resp.FinishReason,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.PromptTokens + resp.Usage.CompletionTokens,
		},
	}
	if out.Model == "" {
		out.Model = model
	}
	return out
}

// classify maps transport failures onto the package's sentinel errors so the
// retry loop can tell them apart.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded), ctx.Err() == context.DeadlineExceeded:
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	text := strings.ToLower(err.Error())
	if strings.Contains(text, "429") || strings.Contains(text, "rate limit") {
		return fmt.Errorf("%w: %w", ErrRateLimit, err)
	}
	return fmt.Errorf("%w: %w", ErrModelAPIError, err)
}

var _ Provider = (*LiteLLMProvider)(nil)
