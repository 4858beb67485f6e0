package contract

import "context"

// SchemaColumn is one column from the live information_schema snapshot.
type SchemaColumn struct {
	Table    string
	Column   string
	DataType string
}

type SchemaRepository interface {
	// Snapshot lists the columns of every table in the contract schema.
	Snapshot(ctx context.Context) ([]*SchemaColumn, error)
}
