package implementation

import (
	"context"
	"errors"
	"strings"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/mapper"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/model"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/specification"

	"gorm.io/gorm"
)

type WorkflowRepositoryImpl struct {
	db *gorm.DB
}

func NewWorkflowRepository(db *gorm.DB) contract.WorkflowRepository {
	return &WorkflowRepositoryImpl{db: db}
}

func (r *WorkflowRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WorkflowRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workflow, error) {
	var m model.Workflow
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.WorkflowToEntity(&m), nil
}

func (r *WorkflowRepositoryImpl) FindByReadableID(ctx context.Context, readableID string) (*entity.Workflow, error) {
	return r.FindOne(ctx, specification.ByReadableID(strings.ToUpper(strings.TrimSpace(readableID))))
}
