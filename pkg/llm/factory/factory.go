package factory

import (
	"fmt"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/llm"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/llm/ollama"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/llm/openai"
)

// NewLLMProvider builds the configured completion-service backend.
func NewLLMProvider(provider, model, openAIKey, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch provider {
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("openai provider selected but OPENAI_API_KEY is empty")
		}
		return openai.NewOpenAIProvider(openAIKey, model), nil
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", provider)
	}
}
