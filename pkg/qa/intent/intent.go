package intent

import "strings"

// Kind is the classified task type for a resolved question.
type Kind string

const (
	KindBooleanTextCount  Kind = "text_count"
	KindTextSnippet       Kind = "text_snippet"
	KindSummarizeContract Kind = "summarize_contract"
	KindCompareContracts  Kind = "compare_contracts"
	KindSemanticFind      Kind = "semantic_find"
	KindSimilarToContract Kind = "similar_to_contract"
	KindWeeklyReport      Kind = "weekly_report"
	KindRagTextQA         Kind = "rag_text_qa"
	KindGenericQuery      Kind = "sql"
)

// Logic controls how include terms combine and which terms exclude.
type Logic struct {
	Operator string   `json:"operator"` // "AND" | "OR"
	Exclude  []string `json:"exclude"`
}

// Proximity enables two-term windowed co-occurrence search.
type Proximity struct {
	Enabled bool `json:"enabled"`
	Window  int  `json:"window"`
}

// Intent is the structured classification driving strategy dispatch.
type Intent struct {
	Kind          Kind      `json:"intent"`
	Terms         []string  `json:"terms"`
	Logic         Logic     `json:"logic"`
	Proximity     Proximity `json:"near"`
	ReferenceIDs  []string  `json:"readable_ids"`
	FreeTextQuery string    `json:"query_text"`
	VendorTerm    string    `json:"vendor_term"`
	Notes         string    `json:"notes"`
}

// Defaults fills the fields the model may omit.
func (it *Intent) Defaults() {
	if it.Kind == "" {
		it.Kind = KindGenericQuery
	}
	if it.Terms == nil {
		it.Terms = []string{}
	}
	if strings.EqualFold(it.Logic.Operator, "OR") {
		it.Logic.Operator = "OR"
	} else {
		it.Logic.Operator = "AND"
	}
	if it.Logic.Exclude == nil {
		it.Logic.Exclude = []string{}
	}
	if it.Proximity.Window <= 0 {
		it.Proximity.Window = 120
	}
	if it.ReferenceIDs == nil {
		it.ReferenceIDs = []string{}
	}
}
