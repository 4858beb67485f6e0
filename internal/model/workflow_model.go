package model

import (
	"time"

	"gorm.io/datatypes"
)

// Workflow mirrors the synced Ironclad workflow record. The sync pipeline
// owns writes; this service only reads.
type Workflow struct {
	WorkflowID            string         `gorm:"column:workflow_id;primaryKey"`
	ReadableID            string         `gorm:"column:readable_id;index"`
	IroncladID            string         `gorm:"column:ironclad_id"`
	Title                 string         `gorm:"column:title"`
	Template              string         `gorm:"column:template"`
	Status                string         `gorm:"column:status"`
	Step                  string         `gorm:"column:step"`
	IsComplete            bool           `gorm:"column:is_complete"`
	IsCancelled           bool           `gorm:"column:is_cancelled"`
	RecordType            string         `gorm:"column:record_type"`
	LegalEntity           string         `gorm:"column:legal_entity"`
	Department            string         `gorm:"column:department"`
	OwnerName             string         `gorm:"column:owner_name"`
	CounterpartyName      string         `gorm:"column:counterparty_name"`
	PaperSource           string         `gorm:"column:paper_source"`
	DocumentType          string         `gorm:"column:document_type"`
	AgreementDate         *time.Time     `gorm:"column:agreement_date"`
	ExecutionDate         *time.Time     `gorm:"column:execution_date"`
	ExpirationDate        *time.Time     `gorm:"column:expiration_date"`
	PONumber              string         `gorm:"column:po_number"`
	RequisitionNumber     string         `gorm:"column:requisition_number"`
	ContractValueAmount   *float64       `gorm:"column:contract_value_amount"`
	ContractValueCurrency string         `gorm:"column:contract_value_currency"`
	EstimatedCostAmount   *float64       `gorm:"column:estimated_cost_amount"`
	EstimatedCostCurrency string         `gorm:"column:estimated_cost_currency"`
	Attributes            datatypes.JSON `gorm:"column:attributes;type:jsonb"`
	CreatedAt             *time.Time     `gorm:"column:created_at"`
	LastUpdatedAt         *time.Time     `gorm:"column:last_updated_at"`
}

func (Workflow) TableName() string {
	return "ic.workflows"
}
