package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"HealthAssistant/pkg/gemini"
	"HealthAssistant/pkg/openai"
	"HealthAssistant/pkg/responder"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewGenerativeInitializer picks the completion backend from GENERATIVE_PROVIDER.
func NewGenerativeInitializer() (responder.Initializer, error) {
	provider := strings.ToLower(os.Getenv("GENERATIVE_PROVIDER"))

	switch provider {
	case "", ProviderGemini:
		return func(ctx context.Context) (responder.Generator, error) {
			return gemini.NewGeminiClient(ctx)
		}, nil
	case ProviderOpenAI:
		return func(context.Context) (responder.Generator, error) {
			return openai.NewChatGPT()
		}, nil
	default:
		return nil, fmt.Errorf("unsupported generative provider %q", provider)
	}
}

// GenerativeTimeout reads GENERATIVE_TIMEOUT as a Go duration.
func GenerativeTimeout() time.Duration {
	d, err := time.ParseDuration(os.Getenv("GENERATIVE_TIMEOUT"))
	if err != nil || d <= 0 {
		return responder.DefaultTimeout
	}
	return d
}
