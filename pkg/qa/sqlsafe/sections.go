package sqlsafe

import (
	"strconv"
	"strings"
)

// Section is one titled statement out of a report bundle.
type Section struct {
	Title string
	SQL   string
}

// SplitSections breaks a multi-statement bundle into titled sections.
// A line beginning with "--" titles the statement that follows; statements
// end at a line-terminating ';'. Statements without a read verb are dropped.
func SplitSections(bundle string) []Section {
	var sections []Section
	var pendingTitle string
	var current []string

	flush := func() {
		stmt := strings.TrimSpace(strings.Join(current, "\n"))
		stmt = strings.TrimSuffix(stmt, ";")
		stmt = strings.TrimSpace(stmt)
		current = current[:0]
		if stmt == "" || !selectRe.MatchString(stmt) {
			pendingTitle = ""
			return
		}
		title := pendingTitle
		pendingTitle = ""
		if title == "" {
			title = "Section " + strconv.Itoa(len(sections)+1)
		}
		sections = append(sections, Section{Title: title, SQL: stmt})
	}

	for _, line := range strings.Split(bundle, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			if len(current) == 0 {
				pendingTitle = strings.TrimSpace(strings.TrimPrefix(trimmed, "--"))
			}
			continue
		}
		if trimmed == "" && len(current) == 0 {
			continue
		}
		current = append(current, line)
		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}
	if len(current) > 0 {
		flush()
	}
	return sections
}

// Metric is a single headline number pulled from a section's result.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Text  string  `json:"text,omitempty"`
}

// DeriveMetric extracts a headline metric from a result: only when exactly
// one row came back, taking the first column whose value is numeric or
// numeric-looking text, scanning left to right.
func DeriveMetric(columns []string, rows [][]interface{}) *Metric {
	if len(rows) != 1 {
		return nil
	}
	for i, v := range rows[0] {
		if i >= len(columns) {
			break
		}
		if f, ok := asFloat(v); ok {
			return &Metric{Name: columns[i], Value: f, Text: formatNumber(f)}
		}
	}
	return nil
}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(x, ",", ""))
		s = strings.TrimPrefix(s, "$")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
