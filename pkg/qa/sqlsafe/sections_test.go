package sqlsafe

import (
	"testing"
)

func TestSplitSections(t *testing.T) {
	t.Run("titled statements", func(t *testing.T) {
		bundle := `-- New contracts
SELECT COUNT(*) AS new_contracts
FROM ic.workflows
WHERE created_at >= CURRENT_DATE - INTERVAL '7 days';

-- Completed contracts
SELECT COUNT(*) AS completed_contracts FROM ic.workflows WHERE status = 'completed';

-- Spend overview
SELECT department, SUM(contract_value_amount) FROM ic.workflows GROUP BY department;`

		sections := SplitSections(bundle)
		if len(sections) != 3 {
			t.Fatalf("len(sections) = %d, want 3", len(sections))
		}

		wantTitles := []string{"New contracts", "Completed contracts", "Spend overview"}
		for i, want := range wantTitles {
			if sections[i].Title != want {
				t.Errorf("sections[%d].Title = %q, want %q", i, sections[i].Title, want)
			}
		}
		for i, s := range sections {
			if err := Validate(s.SQL); err != nil {
				t.Errorf("sections[%d].SQL failed validation: %v", i, err)
			}
		}
	})

	t.Run("non select statements dropped", func(t *testing.T) {
		bundle := `-- Cleanup
DROP TABLE ic.workflows;

-- Count
SELECT COUNT(*) FROM ic.workflows;`

		sections := SplitSections(bundle)
		if len(sections) != 1 {
			t.Fatalf("len(sections) = %d, want 1", len(sections))
		}
		if sections[0].Title != "Count" {
			t.Errorf("Title = %q, want Count", sections[0].Title)
		}
	})

	t.Run("untitled statement gets positional title", func(t *testing.T) {
		sections := SplitSections("SELECT 1;")
		if len(sections) != 1 {
			t.Fatalf("len(sections) = %d, want 1", len(sections))
		}
		if sections[0].Title != "Section 1" {
			t.Errorf("Title = %q, want Section 1", sections[0].Title)
		}
	})

	t.Run("trailing statement without semicolon kept", func(t *testing.T) {
		sections := SplitSections("-- Count\nSELECT COUNT(*) FROM ic.workflows")
		if len(sections) != 1 {
			t.Fatalf("len(sections) = %d, want 1", len(sections))
		}
		if sections[0].SQL != "SELECT COUNT(*) FROM ic.workflows" {
			t.Errorf("SQL = %q", sections[0].SQL)
		}
	})

	t.Run("empty bundle", func(t *testing.T) {
		if got := SplitSections(""); len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})
}

func TestDeriveMetric(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		rows    [][]interface{}
		want    *Metric
	}{
		{
			name:    "single numeric cell",
			columns: []string{"contract_count"},
			rows:    [][]interface{}{{int64(42)}},
			want:    &Metric{Name: "contract_count", Value: 42},
		},
		{
			name:    "first numeric column wins",
			columns: []string{"department", "total_value"},
			rows:    [][]interface{}{{"Clinical", float64(120000.5)}},
			want:    &Metric{Name: "total_value", Value: 120000.5},
		},
		{
			name:    "numeric looking text",
			columns: []string{"total"},
			rows:    [][]interface{}{{"1,250"}},
			want:    &Metric{Name: "total", Value: 1250},
		},
		{
			name:    "multiple rows no metric",
			columns: []string{"n"},
			rows:    [][]interface{}{{1}, {2}},
			want:    nil,
		},
		{
			name:    "zero rows no metric",
			columns: []string{"n"},
			rows:    nil,
			want:    nil,
		},
		{
			name:    "no numeric column",
			columns: []string{"title"},
			rows:    [][]interface{}{{"MSA with Lonza"}},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveMetric(tt.columns, tt.rows)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("DeriveMetric() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("DeriveMetric() = nil, want %+v", tt.want)
			}
			if got.Name != tt.want.Name || got.Value != tt.want.Value {
				t.Errorf("DeriveMetric() = {%s %v}, want {%s %v}", got.Name, got.Value, tt.want.Name, tt.want.Value)
			}
		})
	}
}
