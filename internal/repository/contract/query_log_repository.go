package contract

import (
	"context"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
)

type QueryLogRepository interface {
	Create(ctx context.Context, log *entity.QueryLog) error
}
