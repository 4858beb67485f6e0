package embedding

import (
	"context"
	"errors"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider generates embeddings via the OpenAI API
// (text-embedding-3-small, 1536 dims, matches the contract_chunks column).
type OpenAIProvider struct {
	client *goopenai.Client
	model  goopenai.EmbeddingModel
}

func NewOpenAIProvider(apiKey string, model string) EmbeddingProvider {
	if model == "" {
		model = string(goopenai.SmallEmbedding3)
	}
	return &OpenAIProvider{
		client: goopenai.NewClient(apiKey),
		model:  goopenai.EmbeddingModel(model),
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string) (*EmbeddingResponse, error) {
	resp, err := p.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Model: p.model,
		Input: []string{text},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("openai embedding: empty data in response")
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: resp.Data[0].Embedding,
		},
	}, nil
}
