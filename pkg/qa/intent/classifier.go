package intent

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/llm"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/internal/jsonx"
)

var (
	// readableIDRe matches canonical record ids like IC-1234. Always computed
	// locally; the model only confirms which hints apply.
	readableIDRe = regexp.MustCompile(`(?i)\bIC-\d+\b`)

	// quotedTermRe pulls "..." and '...' phrases out of the question.
	quotedTermRe = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
)

const classifierSystemPrompt = `You classify a self-contained question about contract records into exactly one intent.
Return ONLY a JSON object:
{"intent": "text_count" | "text_snippet" | "summarize_contract" | "compare_contracts" | "semantic_find" | "similar_to_contract" | "weekly_report" | "rag_text_qa" | "sql",
 "terms": ["..."],
 "logic": {"operator": "AND" | "OR", "exclude": ["..."]},
 "near": {"enabled": false, "window": 120},
 "readable_ids": ["IC-123"],
 "query_text": "...",
 "vendor_term": "...",
 "notes": "..."}

Intent guide:
- "text_count": how many contracts mention / contain given words or phrases.
- "text_snippet": show passages where words appear; set near.enabled when two terms must appear close together.
- "summarize_contract": summarize one identified contract end to end.
- "compare_contracts": compare exactly two identified contracts.
- "semantic_find": find contracts about a concept with no exact phrase to match.
- "similar_to_contract": find contracts resembling one identified contract.
- "weekly_report": a periodic operational digest (new, completed, approvals, expirations, spend).
- "rag_text_qa": answer a question from the text of one identified contract.
- "sql": everything answerable from structured fields (counts, filters, owners, departments, values, dates, statuses, approvals, clauses).

Rules:
- "readable_ids": choose ONLY from the provided id hints, in question order. Never invent ids.
- "terms": the literal words/phrases to match; prefer the provided quoted hints verbatim.
- "vendor_term": the counterparty/vendor name when the question filters by one, else "".
- "query_text": for semantic_find/rag_text_qa/similar_to_contract, the retrieval phrasing of the question.
- Default to "sql" when unsure.`

// Classifier maps a resolved question to an Intent. Identifier and quoted
// term hints are extracted locally by regex and handed to the model so the
// id set cannot drift.
type Classifier struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewClassifier(provider llm.LLMProvider, log logger.ILogger) *Classifier {
	return &Classifier{provider: provider, logger: log}
}

// ExtractReferenceIDs returns the canonical ids in the question, uppercased,
// deduplicated, in order of appearance.
func ExtractReferenceIDs(question string) []string {
	seen := map[string]bool{}
	ids := []string{}
	for _, m := range readableIDRe.FindAllString(question, -1) {
		id := strings.ToUpper(m)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// ExtractQuotedTerms returns quoted phrases in order of appearance.
func ExtractQuotedTerms(question string) []string {
	terms := []string{}
	for _, m := range quotedTermRe.FindAllStringSubmatch(question, -1) {
		term := m[1]
		if term == "" {
			term = m[2]
		}
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// Classify returns the intent for the resolved question. A malformed or
// failed model response degrades to a default-filled generic query. Any
// mention of "clause" (or "clauses") forces the generic query path:
// clause-level data lives only in the structured store.
func (c *Classifier) Classify(ctx context.Context, question string) *Intent {
	idHints := ExtractReferenceIDs(question)
	termHints := ExtractQuotedTerms(question)

	it := c.classify(ctx, question, idHints, termHints)
	it.Defaults()

	// Keep only ids that match the canonical pattern AND were locally
	// extracted; drop anything else, never fabricate.
	hinted := map[string]bool{}
	for _, id := range idHints {
		hinted[id] = true
	}
	valid := it.ReferenceIDs[:0]
	for _, id := range it.ReferenceIDs {
		id = strings.ToUpper(strings.TrimSpace(id))
		if readableIDRe.MatchString(id) && hinted[id] {
			valid = append(valid, id)
		}
	}
	it.ReferenceIDs = valid
	if len(it.ReferenceIDs) == 0 {
		it.ReferenceIDs = idHints
	}

	if strings.Contains(strings.ToLower(question), "clause") {
		it.Kind = KindGenericQuery
	}
	return it
}

func (c *Classifier) classify(ctx context.Context, question string, idHints, termHints []string) *Intent {
	payload := map[string]interface{}{
		"question":     question,
		"id_hints":     idHints,
		"quoted_hints": termHints,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return &Intent{}
	}

	out, err := c.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: classifierSystemPrompt},
		{Role: "user", Content: string(body)},
	}, llm.WithTemperature(0), llm.WithJSONOnly())
	if err != nil {
		c.logger.Warn("intent", "classification failed, defaulting to generic query", map[string]interface{}{
			"error": err.Error(),
		})
		return &Intent{}
	}

	var it Intent
	if err := json.Unmarshal([]byte(jsonx.ExtractObject(out)), &it); err != nil {
		c.logger.Warn("intent", "classifier returned malformed json", map[string]interface{}{
			"error": err.Error(),
		})
		return &Intent{}
	}
	return &it
}
