package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/entity"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/specification"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/embedding"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/intent"
)

type fakeChunkRepo struct {
	countFunc     func(ctx context.Context, include []string, operator string, exclude []string) (*contract.TermCount, error)
	snippetsFunc  func(ctx context.Context, term string, limit int) ([]*entity.ChunkSnippet, error)
	proximityFunc func(ctx context.Context, termA, termB string, window, limit int) ([]*entity.ChunkSnippet, error)
	orderedFunc   func(ctx context.Context, readableID string, maxChunks int) ([]*entity.ContractChunk, error)
	similarFunc   func(ctx context.Context, vector []float32, limit int, scopeID, excludeID string) ([]*entity.ScoredContractChunk, error)
}

func (f *fakeChunkRepo) CountDocumentsMatching(ctx context.Context, include []string, operator string, exclude []string) (*contract.TermCount, error) {
	return f.countFunc(ctx, include, operator, exclude)
}

func (f *fakeChunkRepo) SearchSnippets(ctx context.Context, term string, limit int) ([]*entity.ChunkSnippet, error) {
	return f.snippetsFunc(ctx, term, limit)
}

func (f *fakeChunkRepo) SearchProximity(ctx context.Context, termA, termB string, window, limit int) ([]*entity.ChunkSnippet, error) {
	return f.proximityFunc(ctx, termA, termB, window, limit)
}

func (f *fakeChunkRepo) FindOrderedByReadableID(ctx context.Context, readableID string, maxChunks int) ([]*entity.ContractChunk, error) {
	return f.orderedFunc(ctx, readableID, maxChunks)
}

func (f *fakeChunkRepo) SearchSimilar(ctx context.Context, vector []float32, limit int, scopeID, excludeID string) ([]*entity.ScoredContractChunk, error) {
	return f.similarFunc(ctx, vector, limit, scopeID, excludeID)
}

type fakeTextRepo struct {
	byReadableID map[string]*entity.ContractText
}

func (f *fakeTextRepo) FindByReadableID(ctx context.Context, readableID string) (*entity.ContractText, error) {
	return f.byReadableID[readableID], nil
}

type fakeWorkflowRepo struct {
	byReadableID map[string]*entity.Workflow
}

func (f *fakeWorkflowRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workflow, error) {
	return nil, nil
}

func (f *fakeWorkflowRepo) FindByReadableID(ctx context.Context, readableID string) (*entity.Workflow, error) {
	return f.byReadableID[readableID], nil
}

type fakeRunner struct {
	runFunc func(ctx context.Context, sql string, params ...interface{}) (*contract.QueryResult, error)
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, sql string, params ...interface{}) (*contract.QueryResult, error) {
	f.calls = append(f.calls, sql)
	return f.runFunc(ctx, sql, params...)
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakeGenerator struct {
	out string
	err error
}

func (f *fakeGenerator) Generate(ctx context.Context, question string, allowBundle bool) (string, error) {
	return f.out, f.err
}

func newTestDispatcher(chunks *fakeChunkRepo, workflows *fakeWorkflowRepo, runner *fakeRunner, gen *fakeGenerator) *Dispatcher {
	if chunks == nil {
		chunks = &fakeChunkRepo{}
	}
	if workflows == nil {
		workflows = &fakeWorkflowRepo{}
	}
	if runner == nil {
		runner = &fakeRunner{}
	}
	if gen == nil {
		gen = &fakeGenerator{}
	}
	texts := &fakeTextRepo{}
	return NewDispatcher(chunks, texts, workflows, runner, &fakeEmbedder{}, gen, logger.NewNopLogger())
}

func TestExecuteBooleanTextCount(t *testing.T) {
	chunks := &fakeChunkRepo{
		countFunc: func(ctx context.Context, include []string, operator string, exclude []string) (*contract.TermCount, error) {
			if len(include) != 1 || include[0] != "indemnification" || operator != "AND" {
				t.Errorf("count args = %v %q %v", include, operator, exclude)
			}
			return &contract.TermCount{Count: 7, ExampleIDs: []string{"IC-1", "IC-2"}}, nil
		},
	}
	d := newTestDispatcher(chunks, nil, nil, nil)

	it := &intent.Intent{Kind: intent.KindBooleanTextCount, Terms: []string{"indemnification"}}
	it.Defaults()
	exec := d.Execute(context.Background(), "how many mention indemnification?", it)

	if exec.ErrMessage != "" {
		t.Fatalf("ErrMessage = %q", exec.ErrMessage)
	}
	if len(exec.Rows) != 1 || exec.Rows[0][0] != int64(7) {
		t.Errorf("Rows = %v", exec.Rows)
	}
	if exec.Metric == nil || exec.Metric.Text != "7" {
		t.Errorf("Metric = %+v", exec.Metric)
	}
	if !strings.Contains(exec.SQL, "ILIKE '%indemnification%'") {
		t.Errorf("display SQL = %q", exec.SQL)
	}
}

func TestExecuteBooleanTextCountNoTerms(t *testing.T) {
	d := newTestDispatcher(nil, nil, nil, nil)
	it := &intent.Intent{Kind: intent.KindBooleanTextCount}
	it.Defaults()
	exec := d.Execute(context.Background(), "how many?", it)
	if exec.ErrMessage == "" {
		t.Fatal("want ErrMessage for missing terms")
	}
}

func TestExecuteTextSnippetProximity(t *testing.T) {
	chunks := &fakeChunkRepo{
		proximityFunc: func(ctx context.Context, a, b string, window, limit int) ([]*entity.ChunkSnippet, error) {
			if a != "termination" || b != "convenience" || window != 120 || limit != 10 {
				t.Errorf("proximity args = %q %q %d %d", a, b, window, limit)
			}
			return []*entity.ChunkSnippet{{ReadableID: "IC-3", ChunkID: 2, Snippet: "terminate for convenience"}}, nil
		},
	}
	d := newTestDispatcher(chunks, nil, nil, nil)

	it := &intent.Intent{
		Kind:      intent.KindTextSnippet,
		Terms:     []string{"termination", "convenience"},
		Proximity: intent.Proximity{Enabled: true},
	}
	it.Defaults()
	exec := d.Execute(context.Background(), "passages with termination near convenience", it)

	if exec.Retrieval != "proximity_snippets" {
		t.Errorf("Retrieval = %q", exec.Retrieval)
	}
	if len(exec.Rows) != 1 || exec.Rows[0][0] != "IC-3" {
		t.Errorf("Rows = %v", exec.Rows)
	}
	if len(exec.ExampleIDs) != 1 || exec.ExampleIDs[0] != "IC-3" {
		t.Errorf("ExampleIDs = %v", exec.ExampleIDs)
	}
}

func TestExecuteSummarizeUnknownContract(t *testing.T) {
	d := newTestDispatcher(nil, &fakeWorkflowRepo{byReadableID: map[string]*entity.Workflow{}}, nil, nil)

	it := &intent.Intent{Kind: intent.KindSummarizeContract, ReferenceIDs: []string{"IC-404"}}
	it.Defaults()
	exec := d.Execute(context.Background(), "summarize IC-404", it)
	if !strings.Contains(exec.ErrMessage, "no contract found for IC-404") {
		t.Errorf("ErrMessage = %q", exec.ErrMessage)
	}
}

func TestExecuteSummarize(t *testing.T) {
	chunks := &fakeChunkRepo{
		orderedFunc: func(ctx context.Context, id string, maxChunks int) ([]*entity.ContractChunk, error) {
			return []*entity.ContractChunk{
				{ReadableID: id, ChunkID: 0, ChunkText: "This Master Services Agreement"},
				{ReadableID: id, ChunkID: 1, ChunkText: "is entered into by the parties."},
			}, nil
		},
	}
	workflows := &fakeWorkflowRepo{byReadableID: map[string]*entity.Workflow{
		"IC-10": {ReadableID: "IC-10", Title: "MSA with Lonza"},
	}}
	d := newTestDispatcher(chunks, workflows, nil, nil)

	it := &intent.Intent{Kind: intent.KindSummarizeContract, ReferenceIDs: []string{"IC-10"}}
	it.Defaults()
	exec := d.Execute(context.Background(), "summarize IC-10", it)

	if exec.ErrMessage != "" {
		t.Fatalf("ErrMessage = %q", exec.ErrMessage)
	}
	if len(exec.TextBlobs) != 1 || !strings.Contains(exec.TextBlobs[0], "Master Services Agreement") {
		t.Errorf("TextBlobs = %v", exec.TextBlobs)
	}
	if len(exec.BlobLabels) != 1 || exec.BlobLabels[0] != "IC-10 (MSA with Lonza)" {
		t.Errorf("BlobLabels = %v", exec.BlobLabels)
	}
}

func TestExecuteSummarizeUnchunkedFallsBackToFullText(t *testing.T) {
	chunks := &fakeChunkRepo{
		orderedFunc: func(ctx context.Context, id string, maxChunks int) ([]*entity.ContractChunk, error) {
			return nil, nil
		},
	}
	texts := &fakeTextRepo{byReadableID: map[string]*entity.ContractText{
		"IC-20": {ReadableID: "IC-20", Text: "Full statement of work text."},
	}}
	workflows := &fakeWorkflowRepo{byReadableID: map[string]*entity.Workflow{
		"IC-20": {ReadableID: "IC-20", Title: "SOW"},
	}}
	d := NewDispatcher(chunks, texts, workflows, &fakeRunner{}, &fakeEmbedder{}, &fakeGenerator{}, logger.NewNopLogger())

	it := &intent.Intent{Kind: intent.KindSummarizeContract, ReferenceIDs: []string{"IC-20"}}
	it.Defaults()
	exec := d.Execute(context.Background(), "summarize IC-20", it)

	if exec.ErrMessage != "" {
		t.Fatalf("ErrMessage = %q", exec.ErrMessage)
	}
	if len(exec.TextBlobs) != 1 || exec.TextBlobs[0] != "Full statement of work text." {
		t.Errorf("TextBlobs = %v", exec.TextBlobs)
	}
}

func TestExecuteSemanticFind(t *testing.T) {
	var gotLimit int
	chunks := &fakeChunkRepo{
		similarFunc: func(ctx context.Context, vector []float32, limit int, scopeID, excludeID string) ([]*entity.ScoredContractChunk, error) {
			gotLimit = limit
			return []*entity.ScoredContractChunk{
				{ContractChunk: entity.ContractChunk{ReadableID: "IC-5", ChunkID: 3, ChunkText: "data breach notification"}, Similarity: 0.91},
			}, nil
		},
	}
	d := newTestDispatcher(chunks, nil, nil, nil)

	it := &intent.Intent{Kind: intent.KindSemanticFind, FreeTextQuery: "data breach liability"}
	it.Defaults()
	exec := d.Execute(context.Background(), "find contracts about data breaches", it)

	if gotLimit != 40 {
		t.Errorf("corpus search limit = %d, want 40", gotLimit)
	}
	if len(exec.TextBlobs) != 1 || exec.BlobLabels[0] != "IC-5#3" {
		t.Errorf("blobs = %v labels = %v", exec.TextBlobs, exec.BlobLabels)
	}
}

func TestExecuteRagScopedToContract(t *testing.T) {
	var gotScope string
	var gotLimit int
	chunks := &fakeChunkRepo{
		similarFunc: func(ctx context.Context, vector []float32, limit int, scopeID, excludeID string) ([]*entity.ScoredContractChunk, error) {
			gotScope, gotLimit = scopeID, limit
			return nil, nil
		},
	}
	d := newTestDispatcher(chunks, nil, nil, nil)

	it := &intent.Intent{Kind: intent.KindRagTextQA, ReferenceIDs: []string{"IC-8"}, FreeTextQuery: "payment terms"}
	it.Defaults()
	d.Execute(context.Background(), "what are the payment terms in IC-8?", it)

	if gotScope != "IC-8" {
		t.Errorf("scope = %q, want IC-8", gotScope)
	}
	if gotLimit != 24 {
		t.Errorf("single-doc limit = %d, want 24", gotLimit)
	}
}

func TestExecuteWeeklyReport(t *testing.T) {
	gen := &fakeGenerator{out: `-- New contracts
SELECT COUNT(*) AS new_contracts FROM ic.workflows;

-- Broken section
SELECT missing FROM;

-- Spend overview
SELECT department, SUM(contract_value_amount) AS total FROM ic.workflows GROUP BY department;`}

	runner := &fakeRunner{runFunc: func(ctx context.Context, sql string, params ...interface{}) (*contract.QueryResult, error) {
		if strings.Contains(sql, "missing FROM") {
			return nil, errors.New("syntax error")
		}
		if strings.Contains(sql, "new_contracts") {
			return &contract.QueryResult{Columns: []string{"new_contracts"}, Rows: [][]interface{}{{int64(4)}}}, nil
		}
		return &contract.QueryResult{
			Columns: []string{"department", "total"},
			Rows:    [][]interface{}{{"Clinical", float64(1200)}},
		}, nil
	}}
	d := newTestDispatcher(nil, nil, runner, gen)

	it := &intent.Intent{Kind: intent.KindWeeklyReport}
	it.Defaults()
	exec := d.Execute(context.Background(), "weekly report", it)

	if exec.ErrMessage != "" {
		t.Fatalf("ErrMessage = %q", exec.ErrMessage)
	}
	if len(exec.Sections) != 3 {
		t.Fatalf("len(Sections) = %d, want 3", len(exec.Sections))
	}
	if exec.Sections[0].Title != "New contracts" {
		t.Errorf("Sections[0].Title = %q", exec.Sections[0].Title)
	}
	if exec.Sections[0].Metric == nil || exec.Sections[0].Metric.Value != 4 {
		t.Errorf("Sections[0].Metric = %+v", exec.Sections[0].Metric)
	}
	if exec.Sections[1].Title != "Spend overview" {
		t.Errorf("Sections[1].Title = %q (canonical order)", exec.Sections[1].Title)
	}
	var broken *ReportSection
	for i := range exec.Sections {
		if exec.Sections[i].Title == "Broken section" {
			broken = &exec.Sections[i]
		}
	}
	if broken == nil || broken.Err == "" {
		t.Errorf("broken section should carry its own error, sections = %+v", exec.Sections)
	}
}

func TestExecuteGenericQuery(t *testing.T) {
	gen := &fakeGenerator{out: "SELECT readable_id FROM ic.workflows WHERE counterparty_name ILIKE %s"}
	var gotParams []interface{}
	runner := &fakeRunner{runFunc: func(ctx context.Context, sql string, params ...interface{}) (*contract.QueryResult, error) {
		gotParams = params
		if !strings.Contains(sql, "ILIKE ?") {
			t.Errorf("executed sql = %q, want rewritten placeholder", sql)
		}
		return &contract.QueryResult{Columns: []string{"readable_id"}, Rows: [][]interface{}{{"IC-11"}}}, nil
	}}
	d := newTestDispatcher(nil, nil, runner, gen)

	it := &intent.Intent{Kind: intent.KindGenericQuery, VendorTerm: "Lonza"}
	it.Defaults()
	exec := d.Execute(context.Background(), "contracts with Lonza", it)

	if exec.ErrMessage != "" {
		t.Fatalf("ErrMessage = %q", exec.ErrMessage)
	}
	if len(gotParams) != 1 || gotParams[0] != "%Lonza%" {
		t.Errorf("params = %v, want [%%Lonza%%]", gotParams)
	}
	if len(exec.Rows) != 1 {
		t.Errorf("Rows = %v", exec.Rows)
	}
}

func TestExecuteGenericQueryRejectsUnsafeSQL(t *testing.T) {
	gen := &fakeGenerator{out: "DELETE FROM ic.workflows"}
	runner := &fakeRunner{runFunc: func(ctx context.Context, sql string, params ...interface{}) (*contract.QueryResult, error) {
		t.Fatal("runner must not execute rejected SQL")
		return nil, nil
	}}
	d := newTestDispatcher(nil, nil, runner, gen)

	it := &intent.Intent{Kind: intent.KindGenericQuery}
	it.Defaults()
	exec := d.Execute(context.Background(), "delete everything", it)
	if exec.ErrMessage == "" {
		t.Fatal("want ErrMessage for prohibited SQL")
	}
	if len(runner.calls) != 0 {
		t.Errorf("runner called %d times", len(runner.calls))
	}
}

func TestExecuteGenericQueryUnboundVendorPlaceholder(t *testing.T) {
	gen := &fakeGenerator{out: "SELECT readable_id FROM ic.workflows WHERE counterparty_name ILIKE %s"}
	d := newTestDispatcher(nil, nil, nil, gen)

	it := &intent.Intent{Kind: intent.KindGenericQuery} // no vendor term
	it.Defaults()
	exec := d.Execute(context.Background(), "contracts with some vendor", it)
	if exec.ErrMessage == "" {
		t.Fatal("want ErrMessage when placeholder has no vendor term to bind")
	}
}

func TestDocumentTextStopsBeforeBudget(t *testing.T) {
	chunks := &fakeChunkRepo{
		orderedFunc: func(ctx context.Context, readableID string, maxChunks int) ([]*entity.ContractChunk, error) {
			return []*entity.ContractChunk{
				{ReadableID: "IC-10", ChunkID: 1, ChunkText: strings.Repeat("a", 40)},
				{ReadableID: "IC-10", ChunkID: 2, ChunkText: strings.Repeat("b", 40)},
				{ReadableID: "IC-10", ChunkID: 3, ChunkText: strings.Repeat("c", 40)},
			}, nil
		},
	}
	d := newTestDispatcher(chunks, nil, nil, nil)

	// The third chunk would push the text past the budget, so it is dropped
	// rather than appended.
	text, err := d.documentText(context.Background(), "IC-10", 100, 100)
	if err != nil {
		t.Fatalf("documentText() error = %v", err)
	}
	if strings.Contains(text, "c") {
		t.Errorf("text includes the chunk that would exceed the budget")
	}
	if !strings.Contains(text, "a") || !strings.Contains(text, "b") {
		t.Errorf("text = %q, want the first two chunks", text)
	}
	if len(text) > 100 {
		t.Errorf("len(text) = %d, want <= 100", len(text))
	}
}
