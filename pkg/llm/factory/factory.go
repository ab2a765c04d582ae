package factory

import (
	"fmt"

	"ai-learndocs-be/pkg/llm"
	"ai-learndocs-be/pkg/llm/ollama"
)

// NewLLMProvider builds the chat backend used for metadata enrichment.
// An empty providerType disables the rich paths entirely: the analyzer
// falls back to its deterministic derivations.
func NewLLMProvider(providerType, modelName, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
