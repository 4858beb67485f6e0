package model

import "time"

// ContractText holds the full extracted text of one contract document.
type ContractText struct {
	ReadableID   string     `gorm:"column:readable_id;primaryKey"`
	WorkflowID   string     `gorm:"column:workflow_id"`
	Title        string     `gorm:"column:title"`
	Text         string     `gorm:"column:text"`
	TextSHA256   string     `gorm:"column:text_sha256"`
	TokenCount   int        `gorm:"column:token_count"`
	SourceStatus string     `gorm:"column:source_status"`
	UpdatedAt    *time.Time `gorm:"column:updated_at"`
}

func (ContractText) TableName() string {
	return "ic.contract_texts"
}
