package mapper

import (
	"encoding/json"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/model"
)

func WorkflowToEntity(m *model.Workflow) *entity.Workflow {
	if m == nil {
		return nil
	}

	var attrs map[string]interface{}
	if len(m.Attributes) > 0 {
		// best effort; a malformed attributes blob should not fail a read
		_ = json.Unmarshal(m.Attributes, &attrs)
	}

	return &entity.Workflow{
		WorkflowID:       m.WorkflowID,
		ReadableID:       m.ReadableID,
		Title:            m.Title,
		Status:           m.Status,
		Step:             m.Step,
		IsComplete:       m.IsComplete,
		IsCancelled:      m.IsCancelled,
		RecordType:       m.RecordType,
		LegalEntity:      m.LegalEntity,
		Department:       m.Department,
		OwnerName:        m.OwnerName,
		CounterpartyName: m.CounterpartyName,
		DocumentType:     m.DocumentType,
		AgreementDate:    m.AgreementDate,
		ExpirationDate:   m.ExpirationDate,
		ContractValue:    m.ContractValueAmount,
		ValueCurrency:    m.ContractValueCurrency,
		Attributes:       attrs,
		CreatedAt:        m.CreatedAt,
		LastUpdatedAt:    m.LastUpdatedAt,
	}
}

func WorkflowsToEntities(models []*model.Workflow) []*entity.Workflow {
	entities := make([]*entity.Workflow, 0, len(models))
	for _, m := range models {
		entities = append(entities, WorkflowToEntity(m))
	}
	return entities
}
