package implementation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/mapper"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/model"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

const (
	snippetLength = 300
	maxExampleIDs = 5
	defaultTopK   = 5
)

type ContractChunkRepositoryImpl struct {
	db *gorm.DB
}

func NewContractChunkRepository(db *gorm.DB) contract.ContractChunkRepository {
	return &ContractChunkRepositoryImpl{db: db}
}

func (r *ContractChunkRepositoryImpl) CountDocumentsMatching(ctx context.Context, include []string, operator string, exclude []string) (*contract.TermCount, error) {
	matching := r.db.WithContext(ctx).
		Table("ic.contract_chunks").
		Select("DISTINCT readable_id")
	if where, args := chunkMatchPredicate(include, operator, exclude); where != "" {
		matching = matching.Where(where, args...)
	}

	var ids []string
	if err := matching.Order("readable_id").Pluck("readable_id", &ids).Error; err != nil {
		return nil, err
	}

	result := &contract.TermCount{Count: int64(len(ids))}
	if len(ids) > maxExampleIDs {
		result.ExampleIDs = ids[:maxExampleIDs]
	} else {
		result.ExampleIDs = ids
	}
	return result, nil
}

// chunkMatchPredicate builds the WHERE clause that matches terms against a
// single chunk row. Combining inside one row means "AND" requires the terms
// to co-occur in the same chunk, and an exclude drops any chunk containing
// the term, not the whole document.
func chunkMatchPredicate(include []string, operator string, exclude []string) (string, []interface{}) {
	joiner := " AND "
	if strings.EqualFold(operator, "OR") {
		joiner = " OR "
	}

	var (
		clauses []string
		args    []interface{}
	)
	terms := make([]string, 0, len(include))
	for _, term := range include {
		terms = append(terms, "chunk_text ILIKE ?")
		args = append(args, "%"+term+"%")
	}
	if len(terms) > 0 {
		clauses = append(clauses, "("+strings.Join(terms, joiner)+")")
	}
	for _, term := range exclude {
		clauses = append(clauses, "NOT (chunk_text ILIKE ?)")
		args = append(args, "%"+term+"%")
	}
	return strings.Join(clauses, " AND "), args
}

func (r *ContractChunkRepositoryImpl) SearchSnippets(ctx context.Context, term string, limit int) ([]*entity.ChunkSnippet, error) {
	if limit <= 0 {
		limit = 10
	}
	var snippets []*entity.ChunkSnippet
	err := r.db.WithContext(ctx).
		Table("ic.contract_chunks").
		Select("readable_id, chunk_id, LEFT(chunk_text, ?) AS snippet", snippetLength).
		Where("chunk_text ILIKE ?", "%"+term+"%").
		Order("readable_id, chunk_id").
		Limit(limit).
		Scan(&snippets).Error
	if err != nil {
		return nil, err
	}
	return snippets, nil
}

func (r *ContractChunkRepositoryImpl) SearchProximity(ctx context.Context, termA, termB string, window, limit int) ([]*entity.ChunkSnippet, error) {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = 120
	}
	pattern := proximityPattern(termA, termB, window)

	var snippets []*entity.ChunkSnippet
	err := r.db.WithContext(ctx).
		Table("ic.contract_chunks").
		Select("readable_id, chunk_id, LEFT(chunk_text, ?) AS snippet", snippetLength).
		Where("chunk_text ~ ?", pattern).
		Order("readable_id, chunk_id").
		Limit(limit).
		Scan(&snippets).Error
	if err != nil {
		return nil, err
	}
	return snippets, nil
}

// proximityPattern builds a case-insensitive, dot-matches-newline regex that
// matches the two terms within `window` characters of each other, either
// order. Terms are quoted so user text cannot inject regex syntax.
func proximityPattern(termA, termB string, window int) string {
	a := regexp.QuoteMeta(termA)
	b := regexp.QuoteMeta(termB)
	return fmt.Sprintf("(?is)(%s.{0,%d}%s|%s.{0,%d}%s)", a, window, b, b, window, a)
}

func (r *ContractChunkRepositoryImpl) FindOrderedByReadableID(ctx context.Context, readableID string, maxChunks int) ([]*entity.ContractChunk, error) {
	if maxChunks <= 0 {
		maxChunks = 5000
	}
	var models []*model.ContractChunk
	err := r.db.WithContext(ctx).
		Where("readable_id = ?", readableID).
		Order("chunk_id ASC").
		Limit(maxChunks).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return mapper.ContractChunksToEntities(models), nil
}

func (r *ContractChunkRepositoryImpl) SearchSimilar(ctx context.Context, vector []float32, limit int, scopeReadableID, excludeReadableID string) ([]*entity.ScoredContractChunk, error) {
	if limit <= 0 {
		limit = defaultTopK
	}

	type result struct {
		model.ContractChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	query := r.db.WithContext(ctx).
		Table("ic.contract_chunks").
		Select("ic.contract_chunks.*, 1 - (embedding <=> ?) AS similarity", queryVector).
		Where("embedding IS NOT NULL")
	if scopeReadableID != "" {
		query = query.Where("readable_id = ?", scopeReadableID)
	}
	if excludeReadableID != "" {
		query = query.Where("readable_id <> ?", excludeReadableID)
	}

	err := query.
		Order(gorm.Expr("embedding <=> ?", queryVector)).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredContractChunk, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredContractChunk{
			ContractChunk: *mapper.ContractChunkToEntity(&res.ContractChunk),
			Similarity:    res.Similarity,
		}
	}
	return scored, nil
}
