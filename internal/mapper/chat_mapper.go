package mapper

import (
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/model"
)

func ChatSessionToEntity(m *model.ChatSession) *entity.ChatSession {
	if m == nil {
		return nil
	}
	e := &entity.ChatSession{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
		IsDeleted: m.DeletedAt.Valid,
	}
	if !m.UpdatedAt.IsZero() {
		updatedAt := m.UpdatedAt
		e.UpdatedAt = &updatedAt
	}
	return e
}

func ChatSessionToModel(e *entity.ChatSession) *model.ChatSession {
	if e == nil {
		return nil
	}
	m := &model.ChatSession{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		m.UpdatedAt = *e.UpdatedAt
	}
	return m
}

func ChatSessionsToEntities(models []*model.ChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, 0, len(models))
	for _, m := range models {
		entities = append(entities, ChatSessionToEntity(m))
	}
	return entities
}

func ChatMessageToEntity(m *model.ChatMessage) *entity.ChatMessage {
	if m == nil {
		return nil
	}
	return &entity.ChatMessage{
		ID:            m.ID,
		ChatSessionID: m.ChatSessionID,
		Role:          m.Role,
		Content:       m.Content,
		GeneratedSQL:  m.GeneratedSQL,
		Intent:        m.Intent,
		CreatedAt:     m.CreatedAt,
	}
}

func ChatMessageToModel(e *entity.ChatMessage) *model.ChatMessage {
	if e == nil {
		return nil
	}
	return &model.ChatMessage{
		ID:            e.ID,
		ChatSessionID: e.ChatSessionID,
		Role:          e.Role,
		Content:       e.Content,
		GeneratedSQL:  e.GeneratedSQL,
		Intent:        e.Intent,
		CreatedAt:     e.CreatedAt,
	}
}

func ChatMessagesToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, 0, len(models))
	for _, m := range models {
		entities = append(entities, ChatMessageToEntity(m))
	}
	return entities
}
