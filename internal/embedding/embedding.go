package embedding

import (
	"strings"

	"github.com/fewie27/ultimate/internal/config"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewEmbedder creates a new embedder backed by the OpenRouter embedding model.
// The returned embeddings.Embedder is safe for concurrent use.
func NewEmbedder(llmConfig *config.LLMConfig, embeddingModel string) (embeddings.Embedder, error) {
	llm, err := openai.New(
		openai.WithBaseURL(llmConfig.OpenRouterBase),
		openai.WithToken(strings.TrimPrefix(llmConfig.OpenRouterKey, "Bearer ")),
		openai.WithModel(embeddingModel),
		openai.WithEmbeddingModel(embeddingModel),
	)
	if err != nil {
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, err
	}
	return embedder, nil
}
