package mapper

import (
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/model"
)

func ContractTextToEntity(m *model.ContractText) *entity.ContractText {
	if m == nil {
		return nil
	}
	return &entity.ContractText{
		ReadableID: m.ReadableID,
		WorkflowID: m.WorkflowID,
		Title:      m.Title,
		Text:       m.Text,
		TokenCount: m.TokenCount,
	}
}
