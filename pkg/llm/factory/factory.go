package factory

import (
	"fmt"
	"strings"
	"time"

	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/llm/mock"
	"ai-tutor-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL string, timeout time.Duration) (llm.LLMProvider, error) {
	switch strings.ToLower(providerType) {
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName, timeout), nil
	case "mock", "":
		return mock.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
