package mapper

import (
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/model"
)

func ContractChunkToEntity(m *model.ContractChunk) *entity.ContractChunk {
	if m == nil {
		return nil
	}
	return &entity.ContractChunk{
		ReadableID: m.ReadableID,
		ChunkID:    m.ChunkID,
		WorkflowID: m.WorkflowID,
		StartChar:  m.StartChar,
		EndChar:    m.EndChar,
		ChunkText:  m.ChunkText,
	}
}

func ContractChunksToEntities(models []*model.ContractChunk) []*entity.ContractChunk {
	entities := make([]*entity.ContractChunk, 0, len(models))
	for _, m := range models {
		entities = append(entities, ContractChunkToEntity(m))
	}
	return entities
}
