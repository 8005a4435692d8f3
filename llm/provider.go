package llm

import (
	"strings"
	"time"
)

// DefaultProviderConfig returns a default provider configuration
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Model:       "gpt-3.5-turbo",
		Temperature: 0.7,
		MaxTokens:   256,
		Timeout:     30 * time.Second,
		Retries:     3,
	}
}

// NewProvider creates a provider for the configured model
func NewProvider(config ProviderConfig) (Provider, error) {
	p, err := NewLiteLLMProvider(config)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Fine-tuned OpenAI models are named "ft:<base>:<org>::<id>".
func isOpenAIModel(model string) bool {
	openaiModels := []string{
		"ft:", "gpt-3.5", "gpt-4", "o1", "o3", "o4-mini",
	}
	return hasAnyPrefix(model, openaiModels)
}

func isAnthropicModel(model string) bool {
	return hasAnyPrefix(model, []string{"claude-"})
}

func isGeminiModel(model string) bool {
	return hasAnyPrefix(model, []string{"gemini-"})
}

func hasAnyPrefix(model string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}

// providerFor names the backend a model is routed to.
func providerFor(model string) string {
	switch {
	case isOpenAIModel(model):
		return "openai"
	case isAnthropicModel(model):
		return "anthropic"
	case isGeminiModel(model):
		return "gemini"
	default:
		// OpenAI and OpenAI-compatible endpoints
		return "openai"
	}
}
