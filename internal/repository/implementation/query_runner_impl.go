package implementation

import (
	"context"
	"fmt"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"

	"gorm.io/gorm"
)

const (
	// statementTimeoutMs bounds every raw statement server-side. SET LOCAL
	// keeps the limit scoped to the wrapping transaction.
	statementTimeoutMs = 12000

	// maxResultRows caps what a single statement may return to the caller.
	maxResultRows = 400
)

type QueryRunnerImpl struct {
	db *gorm.DB
}

func NewQueryRunner(db *gorm.DB) contract.QueryRunner {
	return &QueryRunnerImpl{db: db}
}

// Run executes one validated read-only statement inside a transaction with a
// local statement timeout, reading at most maxResultRows rows.
func (r *QueryRunnerImpl) Run(ctx context.Context, sql string, params ...interface{}) (*contract.QueryResult, error) {
	result := &contract.QueryResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf("SET LOCAL statement_timeout = %d", statementTimeoutMs)).Error; err != nil {
			return err
		}

		rows, err := tx.Raw(sql, params...).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return err
		}
		result.Columns = columns

		for rows.Next() {
			if len(result.Rows) >= maxResultRows {
				break
			}
			values := make([]interface{}, len(columns))
			pointers := make([]interface{}, len(columns))
			for i := range values {
				pointers[i] = &values[i]
			}
			if err := rows.Scan(pointers...); err != nil {
				return err
			}
			for i, v := range values {
				if b, ok := v.([]byte); ok {
					values[i] = string(b)
				}
			}
			result.Rows = append(result.Rows, values)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
