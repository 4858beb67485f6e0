package model

import (
	"github.com/pgvector/pgvector-go"
)

// ContractChunk is one embedded slice of a contract's extracted text.
// Chunks are ordered by ChunkID within a readable id.
type ContractChunk struct {
	ReadableID string          `gorm:"column:readable_id;primaryKey"`
	ChunkID    int             `gorm:"column:chunk_id;primaryKey"`
	WorkflowID string          `gorm:"column:workflow_id"`
	StartChar  int             `gorm:"column:start_char"`
	EndChar    int             `gorm:"column:end_char"`
	ChunkText  string          `gorm:"column:chunk_text"`
	TextSHA256 string          `gorm:"column:text_sha256"`
	Embedding  pgvector.Vector `gorm:"column:embedding;type:vector(1536)"`
}

func (ContractChunk) TableName() string {
	return "ic.contract_chunks"
}
