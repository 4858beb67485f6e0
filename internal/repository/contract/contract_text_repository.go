package contract

import (
	"context"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
)

type ContractTextRepository interface {
	FindByReadableID(ctx context.Context, readableID string) (*entity.ContractText, error)
}
