package intent

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/llm"
)

type mockProvider struct {
	chatFunc func(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error)
}

func (m *mockProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return m.chatFunc(ctx, history, options...)
}

func (m *mockProvider) ChatStream(ctx context.Context, history []llm.Message, onToken func(string) error, options ...llm.Option) error {
	out, err := m.chatFunc(ctx, history, options...)
	if err != nil {
		return err
	}
	return onToken(out)
}

func (m *mockProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return m.chatFunc(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func fixedProvider(out string) *mockProvider {
	return &mockProvider{chatFunc: func(context.Context, []llm.Message, ...llm.Option) (string, error) {
		return out, nil
	}}
}

func TestExtractReferenceIDs(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{
			name:     "uppercased and deduplicated in order",
			question: "compare ic-42 with IC-7 and then ic-42 again",
			want:     []string{"IC-42", "IC-7"},
		},
		{
			name:     "no ids",
			question: "how many active contracts are there?",
			want:     []string{},
		},
		{
			name:     "id embedded in word ignored",
			question: "the MAGIC-42 project",
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractReferenceIDs(tt.question); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractReferenceIDs(%q) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}

func TestExtractQuotedTerms(t *testing.T) {
	got := ExtractQuotedTerms(`contracts mentioning "force majeure" or 'data privacy'`)
	want := []string{"force majeure", "data privacy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractQuotedTerms() = %v, want %v", got, want)
	}
}

func TestClassify(t *testing.T) {
	log := logger.NewNopLogger()

	t.Run("model output with defaults applied", func(t *testing.T) {
		c := NewClassifier(fixedProvider(`{"intent":"text_count","terms":["indemnification"]}`), log)
		it := c.Classify(context.Background(), `how many contracts mention "indemnification"?`)
		if it.Kind != KindBooleanTextCount {
			t.Fatalf("Kind = %q, want %q", it.Kind, KindBooleanTextCount)
		}
		if it.Logic.Operator != "AND" {
			t.Errorf("Operator = %q, want AND", it.Logic.Operator)
		}
		if it.Proximity.Window != 120 {
			t.Errorf("Window = %d, want 120", it.Proximity.Window)
		}
		if it.ReferenceIDs == nil || it.Logic.Exclude == nil {
			t.Errorf("slices should be non-nil after Defaults")
		}
	})

	t.Run("fabricated ids dropped, hinted ids kept", func(t *testing.T) {
		c := NewClassifier(fixedProvider(`{"intent":"compare_contracts","readable_ids":["IC-999","ic-42","IC-7"]}`), log)
		it := c.Classify(context.Background(), "compare IC-42 and IC-7")
		want := []string{"IC-42", "IC-7"}
		if !reflect.DeepEqual(it.ReferenceIDs, want) {
			t.Errorf("ReferenceIDs = %v, want %v", it.ReferenceIDs, want)
		}
	})

	t.Run("empty model ids fall back to local hints", func(t *testing.T) {
		c := NewClassifier(fixedProvider(`{"intent":"summarize_contract","readable_ids":[]}`), log)
		it := c.Classify(context.Background(), "summarize IC-301")
		if !reflect.DeepEqual(it.ReferenceIDs, []string{"IC-301"}) {
			t.Errorf("ReferenceIDs = %v, want [IC-301]", it.ReferenceIDs)
		}
	})

	t.Run("clause forces generic query", func(t *testing.T) {
		c := NewClassifier(fixedProvider(`{"intent":"rag_text_qa","readable_ids":["IC-5"]}`), log)
		it := c.Classify(context.Background(), "what does the termination clause of IC-5 say?")
		if it.Kind != KindGenericQuery {
			t.Errorf("Kind = %q, want %q (clause override)", it.Kind, KindGenericQuery)
		}
	})

	t.Run("plural clauses forces generic query", func(t *testing.T) {
		c := NewClassifier(fixedProvider(`{"intent":"text_count","terms":["termination"]}`), log)
		it := c.Classify(context.Background(), "how many workflows have termination clauses?")
		if it.Kind != KindGenericQuery {
			t.Errorf("Kind = %q, want %q (clause override)", it.Kind, KindGenericQuery)
		}
	})

	t.Run("lowercase or operator kept as OR", func(t *testing.T) {
		c := NewClassifier(fixedProvider(`{"intent":"text_count","terms":["cap","limit"],"logic":{"operator":"or"}}`), log)
		it := c.Classify(context.Background(), `contracts mentioning "cap" or "limit"`)
		if it.Logic.Operator != "OR" {
			t.Errorf("Operator = %q, want OR", it.Logic.Operator)
		}
	})

	t.Run("provider failure defaults to generic query", func(t *testing.T) {
		p := &mockProvider{chatFunc: func(context.Context, []llm.Message, ...llm.Option) (string, error) {
			return "", errors.New("upstream down")
		}}
		it := NewClassifier(p, log).Classify(context.Background(), "how many contracts expired last month?")
		if it.Kind != KindGenericQuery {
			t.Errorf("Kind = %q, want %q", it.Kind, KindGenericQuery)
		}
	})

	t.Run("malformed json defaults to generic query", func(t *testing.T) {
		c := NewClassifier(fixedProvider("not json at all"), log)
		it := c.Classify(context.Background(), "total spend by department")
		if it.Kind != KindGenericQuery {
			t.Errorf("Kind = %q, want %q", it.Kind, KindGenericQuery)
		}
	})

	t.Run("json wrapped in prose still parsed", func(t *testing.T) {
		c := NewClassifier(fixedProvider("Here you go:\n{\"intent\":\"semantic_find\",\"query_text\":\"data breach liability\"}"), log)
		it := c.Classify(context.Background(), "find contracts about data breach liability")
		if it.Kind != KindSemanticFind {
			t.Fatalf("Kind = %q, want %q", it.Kind, KindSemanticFind)
		}
		if it.FreeTextQuery != "data breach liability" {
			t.Errorf("FreeTextQuery = %q", it.FreeTextQuery)
		}
	})
}
