package contract

import (
	"context"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
)

// TermCount is the result of a distinct-document keyword count.
type TermCount struct {
	Count      int64
	ExampleIDs []string
}

type ContractChunkRepository interface {
	// CountDocumentsMatching counts distinct readable ids whose chunk text
	// matches every include term (AND) or any (OR), minus exclusions, and
	// returns up to five example ids.
	CountDocumentsMatching(ctx context.Context, include []string, operator string, exclude []string) (*TermCount, error)

	// SearchSnippets returns trimmed chunk hits for a single term (ILIKE).
	SearchSnippets(ctx context.Context, term string, limit int) ([]*entity.ChunkSnippet, error)

	// SearchProximity returns trimmed chunk hits where two terms co-occur
	// within a character window, either order.
	SearchProximity(ctx context.Context, termA, termB string, window, limit int) ([]*entity.ChunkSnippet, error)

	// FindOrderedByReadableID returns a document's chunks in reading order.
	FindOrderedByReadableID(ctx context.Context, readableID string, maxChunks int) ([]*entity.ContractChunk, error)

	// SearchSimilar runs a cosine nearest-neighbor search. scopeReadableID
	// restricts to one document when non-empty; excludeReadableID removes a
	// document from corpus-wide results.
	SearchSimilar(ctx context.Context, vector []float32, limit int, scopeReadableID, excludeReadableID string) ([]*entity.ScoredContractChunk, error)
}
