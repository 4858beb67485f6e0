package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/llm"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/dispatch"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/state"
)

// maxPayloadRows caps how many result rows are quoted to the model.
const maxPayloadRows = 50

const noResultsMessage = "No matching results were found."

const synthesizerSystemPrompt = `You are a precise legal/contract analyst. Given the user's question and either SQL results or retrieved contract text, write a concise, factual answer:
1) Direct Answer
2) How it was computed
3) Caveats

Rules:
- A single numeric cell in the results is authoritative: quote it verbatim, never recompute or restate it differently.
- A single non-numeric cell is an authoritative text answer.
- Grouped results may be summarized by their top categories.
- Never claim there are no results unless the row count is exactly zero.
- Ground every statement in the supplied data; no outside knowledge.`

// TokenStream produces the answer text. Each invocation restarts the
// synthesis from the beginning; a stream is not resumable mid-way.
type TokenStream func(ctx context.Context, onToken func(string) error) error

// Answer pairs the token stream with the primary-response anchor the state
// manager should carry into the next turn.
type Answer struct {
	Stream  TokenStream
	Primary state.PrimaryResponse
}

// Synthesizer turns an execution result into a streamed answer.
type Synthesizer struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewSynthesizer(provider llm.LLMProvider, log logger.ILogger) *Synthesizer {
	return &Synthesizer{provider: provider, logger: log}
}

// Synthesize builds the answer for one turn. priorPrimary is included in the
// payload only when the turn is a follow-up.
func (s *Synthesizer) Synthesize(question string, exec *dispatch.Execution, priorPrimary *state.PrimaryResponse, isFollowup bool) *Answer {
	if exec.ErrMessage != "" {
		return &Answer{
			Stream:  fixedStream("I couldn't complete that: " + exec.ErrMessage),
			Primary: state.PrimaryResponse{Kind: state.PrimaryNone},
		}
	}

	if exec.HasTabular() && len(exec.Rows) == 0 && len(exec.TextBlobs) == 0 && len(exec.Sections) == 0 {
		return &Answer{
			Stream:  fixedStream(noResultsMessage),
			Primary: state.PrimaryResponse{Kind: state.PrimaryText, Value: noResultsMessage, Context: question},
		}
	}

	payload := s.buildPayload(question, exec, priorPrimary, isFollowup)
	primary := derivePrimary(question, exec)

	stream := func(ctx context.Context, onToken func(string) error) error {
		body, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		return s.provider.ChatStream(ctx, []llm.Message{
			{Role: "system", Content: synthesizerSystemPrompt},
			{Role: "user", Content: string(body)},
		}, onToken, llm.WithTemperature(0))
	}

	return &Answer{Stream: stream, Primary: primary}
}

func (s *Synthesizer) buildPayload(question string, exec *dispatch.Execution, priorPrimary *state.PrimaryResponse, isFollowup bool) map[string]interface{} {
	payload := map[string]interface{}{
		"question": question,
	}
	if exec.SQL != "" {
		payload["sql"] = exec.SQL
	}
	if exec.HasTabular() {
		rows := exec.Rows
		if len(rows) > maxPayloadRows {
			rows = rows[:maxPayloadRows]
			payload["rows_truncated_at"] = maxPayloadRows
		}
		payload["columns"] = exec.Columns
		payload["rows"] = normalizeRows(rows)
		payload["row_count"] = len(exec.Rows)
	}
	if len(exec.TextBlobs) > 0 {
		texts := make([]map[string]string, len(exec.TextBlobs))
		for i, blob := range exec.TextBlobs {
			label := ""
			if i < len(exec.BlobLabels) {
				label = exec.BlobLabels[i]
			}
			texts[i] = map[string]string{"source": label, "text": blob}
		}
		payload["retrieved_text"] = texts
	}
	if len(exec.Sections) > 0 {
		sections := make([]map[string]interface{}, len(exec.Sections))
		for i, sec := range exec.Sections {
			entry := map[string]interface{}{"title": sec.Title}
			if sec.Err != "" {
				entry["error"] = sec.Err
			} else {
				entry["columns"] = sec.Columns
				entry["rows"] = normalizeRows(sec.Rows)
				if sec.Metric != nil {
					entry["derived_metric"] = sec.Metric
				}
			}
			sections[i] = entry
		}
		payload["report_sections"] = sections
	}
	if exec.Metric != nil {
		payload["derived_metric"] = exec.Metric
	}
	if len(exec.ExampleIDs) > 0 {
		payload["example_ids"] = exec.ExampleIDs
	}
	if exec.Retrieval != "" {
		payload["retrieval"] = exec.Retrieval
	}
	if isFollowup && priorPrimary != nil && priorPrimary.Kind != state.PrimaryNone {
		payload["prior_primary_response"] = priorPrimary
	}
	return payload
}

// normalizeRows makes row values JSON-friendly: timestamps become RFC 3339
// strings, byte slices become text, everything else passes through.
func normalizeRows(rows [][]interface{}) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		normalized := make([]interface{}, len(row))
		for j, v := range row {
			switch x := v.(type) {
			case time.Time:
				normalized[j] = x.Format(time.RFC3339)
			case []byte:
				normalized[j] = string(x)
			default:
				normalized[j] = v
			}
		}
		out[i] = normalized
	}
	return out
}

// derivePrimary maps the result shape to the next turn's anchor: numeric
// scalar, grouped (one text + one numeric column), or text.
func derivePrimary(question string, exec *dispatch.Execution) state.PrimaryResponse {
	if len(exec.Sections) > 0 {
		return state.PrimaryResponse{Kind: state.PrimaryText, Value: "weekly report", Context: question}
	}

	if exec.HasTabular() {
		if len(exec.Rows) == 1 && exec.Metric != nil {
			cell := exec.Metric.Text
			if cell == "" {
				cell = fmt.Sprintf("%v", exec.Metric.Value)
			}
			return state.PrimaryResponse{Kind: state.PrimaryNumeric, Value: cell, Context: question}
		}
		if len(exec.Rows) == 1 && len(exec.Rows[0]) == 1 {
			cell := fmt.Sprintf("%v", exec.Rows[0][0])
			return state.PrimaryResponse{Kind: state.PrimaryText, Value: cell, Context: question}
		}

		if group, value, ok := groupedColumns(exec); ok {
			labels := []string{}
			for _, row := range exec.Rows {
				if len(labels) >= 10 {
					break
				}
				labels = append(labels, fmt.Sprintf("%v", row[0]))
			}
			return state.PrimaryResponse{
				Kind:     state.PrimaryGrouped,
				GroupCol: group,
				ValueCol: value,
				Labels:   labels,
				Context:  question,
			}
		}

		return state.PrimaryResponse{Kind: state.PrimaryText, Context: question}
	}

	if len(exec.TextBlobs) > 0 {
		return state.PrimaryResponse{
			Kind:    state.PrimaryText,
			Context: question,
			Labels:  exec.ExampleIDs,
		}
	}
	return state.PrimaryResponse{Kind: state.PrimaryNone}
}

// groupedColumns reports a two-column shape of one text column and one
// numeric column across multiple rows.
func groupedColumns(exec *dispatch.Execution) (group, value string, ok bool) {
	if len(exec.Columns) != 2 || len(exec.Rows) < 2 {
		return "", "", false
	}
	first := exec.Rows[0]
	if len(first) != 2 {
		return "", "", false
	}
	if isNumericValue(first[0]) == isNumericValue(first[1]) {
		return "", "", false
	}
	if isNumericValue(first[1]) {
		return exec.Columns[0], exec.Columns[1], true
	}
	return exec.Columns[1], exec.Columns[0], true
}

func isNumericValue(v interface{}) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}

func fixedStream(text string) TokenStream {
	return func(ctx context.Context, onToken func(string) error) error {
		for _, word := range strings.SplitAfter(text, " ") {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := onToken(word); err != nil {
				return err
			}
		}
		return nil
	}
}
