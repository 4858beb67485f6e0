package mapper

import (
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/model"
)

func QueryLogToModel(e *entity.QueryLog) *model.QueryLog {
	if e == nil {
		return nil
	}
	return &model.QueryLog{
		ID:            e.ID,
		ChatSessionID: e.ChatSessionID,
		UserID:        e.UserID,
		Question:      e.Question,
		ResolvedQuery: e.ResolvedQuery,
		Intent:        e.Intent,
		GeneratedSQL:  e.GeneratedSQL,
		RowCount:      e.RowCount,
		DurationMs:    e.DurationMs,
		Failed:        e.Failed,
		CreatedAt:     e.CreatedAt,
	}
}

func QueryLogToEntity(m *model.QueryLog) *entity.QueryLog {
	if m == nil {
		return nil
	}
	return &entity.QueryLog{
		ID:            m.ID,
		ChatSessionID: m.ChatSessionID,
		UserID:        m.UserID,
		Question:      m.Question,
		ResolvedQuery: m.ResolvedQuery,
		Intent:        m.Intent,
		GeneratedSQL:  m.GeneratedSQL,
		RowCount:      m.RowCount,
		DurationMs:    m.DurationMs,
		Failed:        m.Failed,
		CreatedAt:     m.CreatedAt,
	}
}
