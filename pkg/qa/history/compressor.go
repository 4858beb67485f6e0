package history

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/llm"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/internal/jsonx"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/state"
)

const (
	minBullets = 2
	maxBullets = 5

	// maxTurnsVerbatim is how many trailing turns are quoted in full; older
	// turns only influence the running summary.
	maxTurnsVerbatim = 12
)

const compressorSystemPrompt = `You compress a contract Q&A conversation into working context.
Return ONLY a JSON object:
{"bullets": ["..."], "summary": "..."}

Rules:
- "bullets": 2 to 5 short strings capturing what the user has been asking about and what was answered.
- "summary": one paragraph replacing the prior running summary, folding in the new turns.
- Restate numbers ONLY if they appear verbatim in the conversation. Never introduce a numeric claim of your own.
- No markdown, no commentary, JSON only.`

// Compressed is the compressor's output for one turn.
type Compressed struct {
	Bullets []string
	Summary string
}

// Compressor distills prior turns into a handful of bullets plus an updated
// running summary before the follow-up resolver runs.
type Compressor struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewCompressor(provider llm.LLMProvider, log logger.ILogger) *Compressor {
	return &Compressor{provider: provider, logger: log}
}

// Compress summarizes the session so far. On any model or parse failure it
// returns no bullets and the prior summary unchanged; the turn proceeds.
func (c *Compressor) Compress(ctx context.Context, st *state.ConversationState) *Compressed {
	fallback := &Compressed{Bullets: []string{}, Summary: st.Summary}
	if len(st.History) == 0 {
		return fallback
	}

	var sb strings.Builder
	if st.Summary != "" {
		sb.WriteString("Prior summary:\n")
		sb.WriteString(st.Summary)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Recent turns:\n")
	turns := st.History
	if len(turns) > maxTurnsVerbatim {
		turns = turns[len(turns)-maxTurnsVerbatim:]
	}
	for _, t := range turns {
		sb.WriteString(t.Role)
		sb.WriteString(": ")
		sb.WriteString(t.Content)
		sb.WriteString("\n")
	}

	raw, err := c.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: compressorSystemPrompt},
		{Role: "user", Content: sb.String()},
	}, llm.WithTemperature(0), llm.WithJSONOnly())
	if err != nil {
		c.logger.Warn("history", "compression failed, keeping prior summary", map[string]interface{}{
			"error": err.Error(),
		})
		return fallback
	}

	var parsed struct {
		Bullets []string `json:"bullets"`
		Summary string   `json:"summary"`
	}
	if err := json.Unmarshal([]byte(jsonx.ExtractObject(raw)), &parsed); err != nil {
		c.logger.Warn("history", "compression returned malformed json", map[string]interface{}{
			"error": err.Error(),
		})
		return fallback
	}

	bullets := make([]string, 0, len(parsed.Bullets))
	for _, b := range parsed.Bullets {
		b = strings.TrimSpace(b)
		if b != "" {
			bullets = append(bullets, b)
		}
	}
	if len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}
	if len(bullets) < minBullets {
		return fallback
	}

	summary := strings.TrimSpace(parsed.Summary)
	if summary == "" {
		summary = st.Summary
	}
	return &Compressed{Bullets: bullets, Summary: summary}
}
