package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/dto"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/events"
	pktNats "github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IAuditService drains turn-audit messages off the in-process bus, persists
// a query log row, and forwards the event to NATS. It runs off the request
// path so a slow audit write never delays an answer.
type IAuditService interface {
	Consume(ctx context.Context) error
}

type auditService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	queryLogs      contract.QueryLogRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewAuditService(
	pubSub *gochannel.GoChannel,
	topicName string,
	queryLogs contract.QueryLogRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAuditService {
	return &auditService{
		pubSub:         pubSub,
		topicName:      topicName,
		queryLogs:      queryLogs,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *auditService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *auditService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.TurnAuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("audit", "failed to unmarshal audit message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid messages would retry forever
		return
	}

	err := s.queryLogs.Create(ctx, &entity.QueryLog{
		ID:            uuid.NewString(),
		ChatSessionID: payload.SessionID,
		UserID:        payload.UserID,
		Question:      payload.Question,
		ResolvedQuery: payload.ResolvedQuestion,
		Intent:        payload.Intent,
		GeneratedSQL:  payload.SQL,
		RowCount:      payload.RowCount,
		DurationMs:    payload.DurationMs,
		Failed:        payload.Failed,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		s.logger.Error("audit", "failed to persist query log", map[string]interface{}{
			"error":      err.Error(),
			"session_id": payload.SessionID,
		})
		msg.Nack()
		return
	}

	if s.eventPublisher != nil {
		evt := events.NewTurnCompleted(payload.SessionID, payload.UserID, payload.Question, payload.Intent, payload.Failed)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			// external bus failures are logged, never retried here
			s.logger.Warn("audit", "failed to publish turn event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
