package contract

import "context"

// QueryResult carries the raw tabular output of a read-only query.
type QueryResult struct {
	Columns []string
	Rows    [][]interface{}
}

// QueryRunner executes already-validated read-only SQL against the contract
// schema with a per-statement timeout and a hard row cap. It never receives
// unvalidated model output.
type QueryRunner interface {
	Run(ctx context.Context, sql string, params ...interface{}) (*QueryResult, error)
}
