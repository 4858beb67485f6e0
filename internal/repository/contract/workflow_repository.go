package contract

import (
	"context"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/specification"
)

type WorkflowRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workflow, error)
	FindByReadableID(ctx context.Context, readableID string) (*entity.Workflow, error)
}
