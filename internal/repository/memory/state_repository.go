package memory

import (
	"context"
	"time"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/state"

	"github.com/patrickmn/go-cache"
)

type StateRepository struct {
	cache *cache.Cache
}

func NewStateRepository() contract.ConversationStateRepository {
	// Sessions idle for an hour expire; expired entries purge every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &StateRepository{cache: c}
}

func (r *StateRepository) Get(_ context.Context, sessionID string) (*state.ConversationState, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*state.ConversationState), nil
	}
	return nil, nil
}

func (r *StateRepository) Save(_ context.Context, sessionID string, st *state.ConversationState) error {
	r.cache.Set(sessionID, st, cache.DefaultExpiration)
	return nil
}

func (r *StateRepository) Delete(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}
