package implementation

import (
	"context"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"

	"gorm.io/gorm"
)

type SchemaRepositoryImpl struct {
	db *gorm.DB
}

func NewSchemaRepository(db *gorm.DB) contract.SchemaRepository {
	return &SchemaRepositoryImpl{db: db}
}

func (r *SchemaRepositoryImpl) Snapshot(ctx context.Context) ([]*contract.SchemaColumn, error) {
	var columns []*contract.SchemaColumn
	err := r.db.WithContext(ctx).
		Raw(`SELECT table_name AS "table", column_name AS "column", data_type
		     FROM information_schema.columns
		     WHERE table_schema = 'ic'
		     ORDER BY table_name, ordinal_position`).
		Scan(&columns).Error
	if err != nil {
		return nil, err
	}
	return columns, nil
}
