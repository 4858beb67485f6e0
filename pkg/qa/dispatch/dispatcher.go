package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/embedding"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/intent"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/sqlsafe"
)

const (
	// Vector search depth: deeper for corpus-wide retrieval than for a
	// single document.
	singleDocTopK = 24
	corpusTopK    = 40

	// Character budgets for ordered-chunk retrieval.
	summarizeCharBudget = 180000
	compareCharBudget   = 120000

	maxOrderedChunks = 5000
	snippetLimit     = 10
	maxExampleIDs    = 5

	// similarSeedChars caps how much of a reference document seeds the
	// similarity embedding.
	similarSeedChars  = 2000
	similarSeedChunks = 10
)

// SQLGenerator is the slice of sqlgen.Generator the dispatcher needs.
type SQLGenerator interface {
	Generate(ctx context.Context, question string, allowBundle bool) (string, error)
}

// Dispatcher routes a classified question to its execution strategy. Every
// branch is pure given its inputs apart from the store and index calls, and
// every store failure degrades to an error-payload execution.
type Dispatcher struct {
	chunks    contract.ContractChunkRepository
	texts     contract.ContractTextRepository
	workflows contract.WorkflowRepository
	runner    contract.QueryRunner
	embedder  embedding.EmbeddingProvider
	generator SQLGenerator
	logger    logger.ILogger
}

func NewDispatcher(
	chunks contract.ContractChunkRepository,
	texts contract.ContractTextRepository,
	workflows contract.WorkflowRepository,
	runner contract.QueryRunner,
	embedder embedding.EmbeddingProvider,
	generator SQLGenerator,
	log logger.ILogger,
) *Dispatcher {
	return &Dispatcher{
		chunks:    chunks,
		texts:     texts,
		workflows: workflows,
		runner:    runner,
		embedder:  embedder,
		generator: generator,
		logger:    log,
	}
}

// Execute runs the strategy for the classified intent.
func (d *Dispatcher) Execute(ctx context.Context, question string, it *intent.Intent) *Execution {
	exec := &Execution{Intent: it}

	switch it.Kind {
	case intent.KindBooleanTextCount:
		d.booleanTextCount(ctx, it, exec)
	case intent.KindTextSnippet:
		d.textSnippet(ctx, it, exec)
	case intent.KindSummarizeContract:
		d.orderedChunks(ctx, it, exec, summarizeCharBudget, 1)
	case intent.KindCompareContracts:
		d.orderedChunks(ctx, it, exec, compareCharBudget, 2)
	case intent.KindSemanticFind:
		d.vectorSearch(ctx, question, it, exec, "", "")
	case intent.KindRagTextQA:
		scope := ""
		if len(it.ReferenceIDs) == 1 {
			scope = it.ReferenceIDs[0]
		}
		d.vectorSearch(ctx, question, it, exec, scope, "")
	case intent.KindSimilarToContract:
		d.similarToContract(ctx, it, exec)
	case intent.KindWeeklyReport:
		d.weeklyReport(ctx, question, exec)
	default:
		d.genericQuery(ctx, question, it, exec)
	}
	return exec
}

func (d *Dispatcher) fail(exec *Execution, module, msg string, err error) {
	details := map[string]interface{}{}
	if err != nil {
		details["error"] = err.Error()
	}
	d.logger.Warn(module, msg, details)
	if err != nil {
		exec.ErrMessage = fmt.Sprintf("%s: %s", msg, err.Error())
	} else {
		exec.ErrMessage = msg
	}
}

func (d *Dispatcher) booleanTextCount(ctx context.Context, it *intent.Intent, exec *Execution) {
	if len(it.Terms) == 0 {
		d.fail(exec, "dispatch", "no search terms to count", nil)
		return
	}
	result, err := d.chunks.CountDocumentsMatching(ctx, it.Terms, it.Logic.Operator, it.Logic.Exclude)
	if err != nil {
		d.fail(exec, "dispatch", "text count query failed", err)
		return
	}
	exec.Retrieval = "boolean_text_count"
	exec.SQL = describeBooleanCount(it)
	exec.Columns = []string{"contracts_with_term", "example_ids"}
	exec.Rows = [][]interface{}{{result.Count, strings.Join(result.ExampleIDs, ", ")}}
	exec.ExampleIDs = result.ExampleIDs
	exec.Metric = &sqlsafe.Metric{
		Name:  "contracts_with_term",
		Value: float64(result.Count),
		Text:  fmt.Sprintf("%d", result.Count),
	}
}

// describeBooleanCount renders the predicate actually applied, for the
// transparency field of the response. It is never executed.
func describeBooleanCount(it *intent.Intent) string {
	parts := make([]string, 0, len(it.Terms))
	for _, t := range it.Terms {
		parts = append(parts, fmt.Sprintf("chunk_text ILIKE '%%%s%%'", strings.ReplaceAll(t, "'", "''")))
	}
	predicate := strings.Join(parts, " "+it.Logic.Operator+" ")
	for _, t := range it.Logic.Exclude {
		predicate += fmt.Sprintf(" AND NOT (chunk_text ILIKE '%%%s%%')", strings.ReplaceAll(t, "'", "''"))
	}
	return fmt.Sprintf("WITH m AS (SELECT DISTINCT readable_id FROM ic.contract_chunks WHERE %s) SELECT COUNT(*) FROM m", predicate)
}

func (d *Dispatcher) textSnippet(ctx context.Context, it *intent.Intent, exec *Execution) {
	if len(it.Terms) == 0 {
		d.fail(exec, "dispatch", "no search terms for snippets", nil)
		return
	}

	var (
		snippets []*snippetRow
		err      error
	)
	if len(it.Terms) == 2 && it.Proximity.Enabled {
		exec.Retrieval = "proximity_snippets"
		rows, perr := d.chunks.SearchProximity(ctx, it.Terms[0], it.Terms[1], it.Proximity.Window, snippetLimit)
		err = perr
		for _, r := range rows {
			snippets = append(snippets, &snippetRow{r.ReadableID, r.ChunkID, r.Snippet})
		}
	} else {
		exec.Retrieval = "term_snippets"
		rows, serr := d.chunks.SearchSnippets(ctx, it.Terms[0], snippetLimit)
		err = serr
		for _, r := range rows {
			snippets = append(snippets, &snippetRow{r.ReadableID, r.ChunkID, r.Snippet})
		}
	}
	if err != nil {
		d.fail(exec, "dispatch", "snippet search failed", err)
		return
	}

	exec.Columns = []string{"readable_id", "chunk_id", "snippet"}
	for _, s := range snippets {
		exec.Rows = append(exec.Rows, []interface{}{s.readableID, s.chunkID, s.snippet})
		exec.ExampleIDs = appendExample(exec.ExampleIDs, s.readableID)
	}
}

type snippetRow struct {
	readableID string
	chunkID    int
	snippet    string
}

// orderedChunks retrieves full-document text for summarize (one id) or
// compare (two ids), each capped at a character budget in reading order.
func (d *Dispatcher) orderedChunks(ctx context.Context, it *intent.Intent, exec *Execution, budget, wantIDs int) {
	if len(it.ReferenceIDs) < wantIDs {
		d.fail(exec, "dispatch", fmt.Sprintf("need %d contract id(s), got %d", wantIDs, len(it.ReferenceIDs)), nil)
		return
	}
	exec.Retrieval = "ordered_chunks"

	for _, id := range it.ReferenceIDs[:wantIDs] {
		wf, err := d.workflows.FindByReadableID(ctx, id)
		if err != nil {
			d.fail(exec, "dispatch", "contract lookup failed", err)
			return
		}
		if wf == nil {
			d.fail(exec, "dispatch", fmt.Sprintf("no contract found for %s", id), nil)
			return
		}

		text, err := d.documentText(ctx, id, maxOrderedChunks, budget)
		if err != nil {
			d.fail(exec, "dispatch", "chunk retrieval failed", err)
			return
		}
		if text == "" {
			d.fail(exec, "dispatch", fmt.Sprintf("no extracted text stored for %s", id), nil)
			return
		}

		label := id
		if wf.Title != "" {
			label = fmt.Sprintf("%s (%s)", id, wf.Title)
		}
		exec.TextBlobs = append(exec.TextBlobs, text)
		exec.BlobLabels = append(exec.BlobLabels, label)
		exec.ExampleIDs = appendExample(exec.ExampleIDs, id)
	}
}

// documentText assembles a document's text from its chunks in reading order,
// falling back to the unsplit contract_texts row for documents that were
// never chunked. Output is capped at budget characters.
func (d *Dispatcher) documentText(ctx context.Context, id string, maxChunks, budget int) (string, error) {
	chunks, err := d.chunks.FindOrderedByReadableID(ctx, id, maxChunks)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		full, err := d.texts.FindByReadableID(ctx, id)
		if err != nil {
			return "", err
		}
		if full == nil || full.Text == "" {
			return "", nil
		}
		if len(full.Text) > budget {
			return full.Text[:budget], nil
		}
		return full.Text, nil
	}

	var sb strings.Builder
	for _, c := range chunks {
		if sb.Len()+len(c.ChunkText) > budget {
			break
		}
		sb.WriteString(c.ChunkText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (d *Dispatcher) vectorSearch(ctx context.Context, question string, it *intent.Intent, exec *Execution, scopeID, excludeID string) {
	query := it.FreeTextQuery
	if query == "" {
		query = question
	}

	resp, err := d.embedder.Generate(ctx, query)
	if err != nil {
		d.fail(exec, "dispatch", "embedding generation failed", err)
		return
	}

	topK := corpusTopK
	if scopeID != "" {
		topK = singleDocTopK
	}
	scored, err := d.chunks.SearchSimilar(ctx, resp.Embedding.Values, topK, scopeID, excludeID)
	if err != nil {
		d.fail(exec, "dispatch", "vector search failed", err)
		return
	}

	exec.Retrieval = "vector_search"
	for _, s := range scored {
		exec.TextBlobs = append(exec.TextBlobs, s.ChunkText)
		exec.BlobLabels = append(exec.BlobLabels, fmt.Sprintf("%s#%d", s.ReadableID, s.ChunkID))
		exec.ExampleIDs = appendExample(exec.ExampleIDs, s.ReadableID)
	}
}

// similarToContract seeds the embedding with the reference document's
// leading text and searches the rest of the corpus.
func (d *Dispatcher) similarToContract(ctx context.Context, it *intent.Intent, exec *Execution) {
	if len(it.ReferenceIDs) == 0 {
		d.fail(exec, "dispatch", "need a contract id to find similar contracts", nil)
		return
	}
	refID := it.ReferenceIDs[0]

	text, err := d.documentText(ctx, refID, similarSeedChunks, similarSeedChars)
	if err != nil {
		d.fail(exec, "dispatch", "chunk retrieval failed", err)
		return
	}
	if text == "" {
		d.fail(exec, "dispatch", fmt.Sprintf("no extracted text stored for %s", refID), nil)
		return
	}

	seed := &intent.Intent{FreeTextQuery: text}
	d.vectorSearch(ctx, text, seed, exec, "", refID)
	exec.Retrieval = "similar_contracts"
}

func (d *Dispatcher) weeklyReport(ctx context.Context, question string, exec *Execution) {
	bundle, err := d.generator.Generate(ctx, question, true)
	if err != nil {
		d.fail(exec, "dispatch", "report generation failed", err)
		return
	}
	exec.SQL = bundle
	exec.Retrieval = "report_bundle"

	sections := sqlsafe.SplitSections(bundle)
	if len(sections) == 0 {
		d.fail(exec, "dispatch", "report generation produced no sections", nil)
		return
	}

	for _, s := range sections {
		section := ReportSection{Title: s.Title, SQL: s.SQL}
		if err := sqlsafe.Validate(s.SQL); err != nil {
			section.Err = err.Error()
		} else if n := sqlsafe.CountPlaceholders(s.SQL); n > 0 {
			section.Err = sqlsafe.ErrUnboundParam.Error()
		} else if result, err := d.runner.Run(ctx, s.SQL); err != nil {
			section.Err = err.Error()
			d.logger.Warn("dispatch", "report section failed", map[string]interface{}{
				"section": s.Title,
				"error":   err.Error(),
			})
		} else {
			section.Columns = result.Columns
			section.Rows = result.Rows
			section.Metric = sqlsafe.DeriveMetric(result.Columns, result.Rows)
		}
		exec.Sections = append(exec.Sections, section)
	}
	exec.Sections = ReorderSections(exec.Sections)
}

func (d *Dispatcher) genericQuery(ctx context.Context, question string, it *intent.Intent, exec *Execution) {
	sql, err := d.generator.Generate(ctx, question, false)
	if err != nil {
		d.fail(exec, "dispatch", "query generation failed", err)
		return
	}
	if err := sqlsafe.Validate(sql); err != nil {
		d.fail(exec, "dispatch", "generated query rejected", err)
		return
	}

	scalar := ""
	if it.VendorTerm != "" {
		scalar = "%" + it.VendorTerm + "%"
	}
	bound, params, err := sqlsafe.Bind(sql, scalar)
	if err != nil {
		d.fail(exec, "dispatch", "generated query could not be bound", err)
		return
	}

	exec.SQL = sql
	exec.Retrieval = "generated_sql"
	result, err := d.runner.Run(ctx, bound, params...)
	if err != nil {
		d.fail(exec, "dispatch", "query execution failed", err)
		return
	}
	exec.Columns = result.Columns
	exec.Rows = result.Rows
	exec.Metric = sqlsafe.DeriveMetric(result.Columns, result.Rows)
}

func appendExample(ids []string, id string) []string {
	if len(ids) >= maxExampleIDs {
		return ids
	}
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
