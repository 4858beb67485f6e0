package implementation

import (
	"context"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/mapper"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"

	"gorm.io/gorm"
)

type QueryLogRepositoryImpl struct {
	db *gorm.DB
}

func NewQueryLogRepository(db *gorm.DB) contract.QueryLogRepository {
	return &QueryLogRepositoryImpl{db: db}
}

func (r *QueryLogRepositoryImpl) Create(ctx context.Context, log *entity.QueryLog) error {
	return r.db.WithContext(ctx).Create(mapper.QueryLogToModel(log)).Error
}
