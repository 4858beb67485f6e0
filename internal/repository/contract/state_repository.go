package contract

import (
	"context"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/state"
)

// ConversationStateRepository stores per-session conversation state between
// turns. Implementations: in-process cache (single instance) and Redis
// (multi-instance).
type ConversationStateRepository interface {
	Get(ctx context.Context, sessionID string) (*state.ConversationState, error)
	Save(ctx context.Context, sessionID string, st *state.ConversationState) error
	Delete(ctx context.Context, sessionID string) error
}
