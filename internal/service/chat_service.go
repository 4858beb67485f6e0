package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/constant"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/dto"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/serverutils"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/specification"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/engine"
)

type IChatService interface {
	CreateSession(ctx context.Context, userID string, req *dto.CreateChatSessionRequest) (*dto.ChatSessionResponse, error)
	GetSessions(ctx context.Context, userID string) ([]*dto.ChatSessionResponse, error)
	GetHistory(ctx context.Context, userID, sessionID string) ([]*dto.ChatMessageResponse, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error

	// Ask runs one turn: tokens go to onToken as they arrive, and the
	// returned meta frame carries the transparency fields plus updated state.
	Ask(ctx context.Context, userID, sessionID, question string, onToken func(string) error) (*dto.AskChatMeta, error)
}

type chatService struct {
	sessions  contract.ChatSessionRepository
	messages  contract.ChatMessageRepository
	states    contract.ConversationStateRepository
	engine    *engine.Engine
	publisher IPublisherService
	logger    logger.ILogger
}

func NewChatService(
	sessions contract.ChatSessionRepository,
	messages contract.ChatMessageRepository,
	states contract.ConversationStateRepository,
	eng *engine.Engine,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:  sessions,
		messages:  messages,
		states:    states,
		engine:    eng,
		publisher: publisher,
		logger:    log,
	}
}

func (s *chatService) CreateSession(ctx context.Context, userID string, req *dto.CreateChatSessionRequest) (*dto.ChatSessionResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	session, err := s.sessions.Create(ctx, &entity.ChatSession{
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *chatService) GetSessions(ctx context.Context, userID string) ([]*dto.ChatSessionResponse, error) {
	sessions, err := s.sessions.FindAll(ctx,
		specification.ByUserID(userID),
		specification.OrderBy("created_at", "desc"),
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ChatSessionResponse, len(sessions))
	for i, session := range sessions {
		out[i] = toSessionResponse(session)
	}
	return out, nil
}

func (s *chatService) GetHistory(ctx context.Context, userID, sessionID string) ([]*dto.ChatMessageResponse, error) {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	messages, err := s.messages.FindAll(ctx,
		specification.ByChatSessionID(sessionID),
		specification.OrderBy("created_at", "asc"),
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ChatMessageResponse, len(messages))
	for i, m := range messages {
		out[i] = &dto.ChatMessageResponse{
			Role:      m.Role,
			Content:   m.Content,
			SQL:       m.GeneratedSQL,
			Intent:    m.Intent,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

func (s *chatService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := s.states.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("chat", "failed to drop conversation state", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *chatService) Ask(ctx context.Context, userID, sessionID, question string, onToken func(string) error) (*dto.AskChatMeta, error) {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	st, err := s.states.Get(ctx, sessionID)
	if err != nil {
		s.logger.Warn("chat", "state load failed, starting fresh", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		st = nil
	}

	started := time.Now()
	result := s.engine.Answer(ctx, question, st)

	if _, err := s.messages.Create(ctx, &entity.ChatMessage{
		ChatSessionID: sessionID,
		Role:          constant.RoleUser,
		Content:       question,
		CreatedAt:     time.Now(),
	}); err != nil {
		s.logger.Warn("chat", "failed to persist user message", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	var answerText strings.Builder
	streamErr := result.Stream(ctx, func(token string) error {
		answerText.WriteString(token)
		return onToken(token)
	})
	if streamErr != nil {
		s.logger.Error("chat", "answer stream failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      streamErr.Error(),
		})
	}

	s.engine.CompleteTurn(result.State, answerText.String())

	if answerText.Len() > 0 {
		if _, err := s.messages.Create(ctx, &entity.ChatMessage{
			ChatSessionID: sessionID,
			Role:          constant.RoleAssistant,
			Content:       answerText.String(),
			GeneratedSQL:  result.SQL,
			Intent:        string(result.Intent.Kind),
			CreatedAt:     time.Now(),
		}); err != nil {
			s.logger.Warn("chat", "failed to persist assistant message", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}

	// State is persisted even when the turn failed.
	if err := s.states.Save(ctx, sessionID, result.State); err != nil {
		s.logger.Error("chat", "failed to persist conversation state", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	s.publishAudit(ctx, userID, sessionID, result, time.Since(started))

	return &dto.AskChatMeta{
		Question:         result.Question,
		ResolvedQuestion: result.ResolvedQuestion,
		IsFollowup:       result.IsFollowup,
		Intent:           result.Intent,
		SQL:              result.SQL,
		Columns:          result.Columns,
		Rows:             result.Rows,
		Sections:         result.Sections,
		ExampleIDs:       result.ExampleIDs,
		Error:            result.ErrMessage,
		State:            result.State,
	}, streamErr
}

func (s *chatService) publishAudit(ctx context.Context, userID, sessionID string, result *engine.TurnResult, elapsed time.Duration) {
	payload, err := json.Marshal(dto.TurnAuditMessage{
		SessionID:        sessionID,
		UserID:           userID,
		Question:         result.Question,
		ResolvedQuestion: result.ResolvedQuestion,
		Intent:           string(result.Intent.Kind),
		SQL:              result.SQL,
		RowCount:         len(result.Rows),
		DurationMs:       elapsed.Milliseconds(),
		Failed:           result.ErrMessage != "",
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("chat", "failed to publish audit message", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

func (s *chatService) ownedSession(ctx context.Context, userID, sessionID string) (*entity.ChatSession, error) {
	session, err := s.sessions.FindOne(ctx,
		specification.ByID(sessionID),
		specification.ByUserID(userID),
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.ErrNotFound
	}
	return session, nil
}

func toSessionResponse(session *entity.ChatSession) *dto.ChatSessionResponse {
	return &dto.ChatSessionResponse{
		ID:        session.ID,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
	}
}
