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

type ContractTextRepositoryImpl struct {
	db *gorm.DB
}

func NewContractTextRepository(db *gorm.DB) contract.ContractTextRepository {
	return &ContractTextRepositoryImpl{db: db}
}

func (r *ContractTextRepositoryImpl) FindByReadableID(ctx context.Context, readableID string) (*entity.ContractText, error) {
	var m model.ContractText
	query := specification.ByReadableID(strings.ToUpper(strings.TrimSpace(readableID))).Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.ContractTextToEntity(&m), nil
}
