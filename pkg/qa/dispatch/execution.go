package dispatch

import (
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/intent"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/sqlsafe"
)

// ReportSection is one executed section of a report bundle. A section can
// fail on its own without failing the bundle.
type ReportSection struct {
	Title   string          `json:"title"`
	SQL     string          `json:"sql"`
	Columns []string        `json:"columns,omitempty"`
	Rows    [][]interface{} `json:"rows,omitempty"`
	Metric  *sqlsafe.Metric `json:"derived_metric,omitempty"`
	Err     string          `json:"error,omitempty"`
}

// Execution is the dispatcher's result for one turn. A store or generation
// failure is carried in ErrMessage so the synthesizer can answer with a
// grounded error instead of aborting the session.
type Execution struct {
	Intent     *intent.Intent
	SQL        string
	Columns    []string
	Rows       [][]interface{}
	TextBlobs  []string
	BlobLabels []string
	Sections   []ReportSection
	ExampleIDs []string
	Metric     *sqlsafe.Metric
	Retrieval  string
	ErrMessage string
}

// HasTabular reports whether row/column data came back.
func (e *Execution) HasTabular() bool {
	return len(e.Columns) > 0
}
