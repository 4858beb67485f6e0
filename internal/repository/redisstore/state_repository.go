package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/state"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "chat:state:"
	defaultTTL = 1 * time.Hour
)

type StateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStateRepository(client *redis.Client) contract.ConversationStateRepository {
	return &StateRepository{client: client, ttl: defaultTTL}
}

func (r *StateRepository) Get(ctx context.Context, sessionID string) (*state.ConversationState, error) {
	raw, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var st state.ConversationState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *StateRepository) Save(ctx context.Context, sessionID string, st *state.ConversationState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+sessionID, raw, r.ttl).Err()
}

func (r *StateRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, keyPrefix+sessionID).Err()
}
