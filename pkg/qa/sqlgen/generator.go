package sqlgen

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/llm"
)

var sqlFenceRe = regexp.MustCompile("(?is)```sql\\s*(.*?)```")

const singleStatementRules = `You are a legal contracts analytics assistant. Write a single, safe PostgreSQL SELECT query against schema ic.

HARD RULES:
- SELECT-only. Never emit CREATE/INSERT/UPDATE/DELETE/DROP/ALTER/TRUNCATE/GRANT/REVOKE/MERGE/VACUUM/COPY/SET/SHOW.
- Treat natural words "create/review/sign/archive" as workflow steps.
- Status values: 'completed' (finished) and 'active' (in progress).
- Use only existing columns. Do not invent names.

CLAUSES VS TEXT SEARCH:
- If the user explicitly says "clause"/"clauses", query ic.clauses (joined to workflows via workflow_id). Count DISTINCT workflow_id for counts.

VENDOR/COUNTERPARTY:
- Prefer ic.workflows.counterparty_name when filtering by vendor/counterparty.
- If NULL, fall back to COALESCE(legal_entity,'') ILIKE or title ILIKE.
- When a vendor term is supplied separately in the request, reference it with the placeholder %s (e.g. ILIKE %s, never quoted); the caller binds it. Every other constant must be inlined as a SQL string literal, escaping ' by doubling.

- Imported contracts: always filter with "attributes ? 'importId'". Do NOT guess from title or record_type.

OUTPUT:
- Return exactly one SQL statement fenced with ` + "```sql ... ```" + `.`

const reportBundleRules = `You are a legal contracts analytics assistant. Write a PostgreSQL report bundle against schema ic: several SELECT statements, each preceded by a comment line naming its section.

HARD RULES:
- SELECT-only. Never emit CREATE/INSERT/UPDATE/DELETE/DROP/ALTER/TRUNCATE/GRANT/REVOKE/MERGE/VACUUM/COPY/SET/SHOW.
- Use only existing columns. Do not invent names.
- Inline all constants as SQL literals; no placeholders.

SECTIONS (emit in this order, one statement each, title comment exactly as shown):
-- New contracts
-- Completed contracts
-- Pending approvals
-- Expiring soon
-- Spend overview

- "New contracts": created in the reporting window (default: last 7 days from CURRENT_DATE).
- "Completed contracts": status='completed' with last_updated_at in the window.
- "Pending approvals": ic.approvals a JOIN ic.role_assignees ra USING (workflow_id, role_id) WHERE a.status='pending'.
- "Expiring soon": expiration_date within the next 30 days.
- "Spend overview": SUM(contract_value_amount) grouped by normalized department.

OUTPUT:
- Return one fenced ` + "```sql" + ` block containing all statements, each terminated with ';'.`

// Generator asks the completion service for read-only SQL, grounded by the
// curated schema description plus a live information_schema snapshot.
type Generator struct {
	provider llm.LLMProvider
	schema   contract.SchemaRepository
	logger   logger.ILogger

	mu         sync.Mutex
	snapshot   string
	snapshotAt time.Time
}

// snapshotTTL bounds how stale the cached live-schema JSON may get.
const snapshotTTL = 10 * time.Minute

func NewGenerator(provider llm.LLMProvider, schema contract.SchemaRepository, log logger.ILogger) *Generator {
	return &Generator{provider: provider, schema: schema, logger: log}
}

// Generate produces SQL for the question. With allowBundle the model may
// return several titled statements; otherwise exactly one.
func (g *Generator) Generate(ctx context.Context, question string, allowBundle bool) (string, error) {
	rules := singleStatementRules
	if allowBundle {
		rules = reportBundleRules
	}

	system := fmt.Sprintf("%s\n\n=== Curated Schema Description ===\n%s\n\n=== Live Schema ===\n%s",
		rules, strings.TrimSpace(schemaDescription), g.liveSchema(ctx))

	out, err := g.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: question},
	}, llm.WithTemperature(0))
	if err != nil {
		return "", err
	}
	return ExtractSQL(out), nil
}

// ExtractSQL pulls the fenced sql block out of a model reply, falling back
// to the whole text when no fence is present.
func ExtractSQL(text string) string {
	if m := sqlFenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// liveSchema returns the cached information_schema snapshot as JSON keyed by
// table. A snapshot failure degrades to an empty object; the curated
// description still grounds the model.
func (g *Generator) liveSchema(ctx context.Context) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.snapshot != "" && time.Since(g.snapshotAt) < snapshotTTL {
		return g.snapshot
	}

	columns, err := g.schema.Snapshot(ctx)
	if err != nil {
		g.logger.Warn("sqlgen", "live schema snapshot failed", map[string]interface{}{
			"error": err.Error(),
		})
		if g.snapshot != "" {
			return g.snapshot
		}
		return "{}"
	}

	byTable := map[string][]map[string]string{}
	for _, c := range columns {
		byTable[c.Table] = append(byTable[c.Table], map[string]string{
			"column": c.Column,
			"type":   c.DataType,
		})
	}
	raw, err := json.Marshal(byTable)
	if err != nil {
		return "{}"
	}
	g.snapshot = string(raw)
	g.snapshotAt = time.Now()
	return g.snapshot
}
