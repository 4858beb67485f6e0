package followup

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/llm"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/internal/jsonx"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/state"
)

// Mode labels how the incoming question relates to the conversation.
type Mode string

const (
	ModeNewTopic Mode = "NEW_TOPIC"
	ModeFollowUp Mode = "FOLLOW_UP"
)

// Resolution is the resolver's verdict for one turn. The resolved question
// must stand alone: a reader with no transcript access should get the same
// answer from it.
type Resolution struct {
	Mode             Mode              `json:"mode"`
	ResolvedQuestion string            `json:"resolved_question"`
	ScopeUpdates     map[string]string `json:"scope_updates"`
	ScopeResets      []string          `json:"scope_resets"`
	Notes            string            `json:"notes"`
}

const resolverSystemPrompt = `You decide whether a question about contract records continues the current conversation or starts a new topic, then rewrite it to be fully self-contained.
Return ONLY a JSON object:
{"mode": "NEW_TOPIC" | "FOLLOW_UP",
 "resolved_question": "...",
 "scope_updates": {"timeframe": "...", "status": "...", "vendor": "...", "department": "...", "record_type": "...", "approver": "...", "priority": "...", "ids": "...", "active_contract_id": "..."},
 "scope_resets": ["..."],
 "notes": "..."}

Rules, in order of precedence:
1. Elliptical phrasing ("what about Q2?", "and for finance?", "same but active only") is ALWAYS a follow-up: merge it into the prior question, replacing only the changed dimension.
2. Pronouns and definite references ("it", "that contract", "those") resolve against the active scope.
3. A question that introduces an unrelated subject is NEW_TOPIC; list every scope key that no longer applies in scope_resets.
4. The resolved question must be answerable with no conversation history at all. Inline concrete values (names, IDs, timeframes) from scope; never leave a pronoun unresolved.
5. Only include scope_updates keys the question actually changes. Omit everything else.
6. Do not answer the question. Do not invent filters the user never stated.`

// Resolver rewrites each question into a self-contained one using the
// compressed history and carried scope.
type Resolver struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewResolver(provider llm.LLMProvider, log logger.ILogger) *Resolver {
	return &Resolver{provider: provider, logger: log}
}

// Resolve classifies and rewrites the raw question. The first turn of a
// session never goes to the model: the raw question passes through verbatim
// as a new topic. Failures fall back the same way.
func (r *Resolver) Resolve(ctx context.Context, raw string, bullets []string, st *state.ConversationState) *Resolution {
	raw = strings.TrimSpace(raw)
	if len(st.History) == 0 && st.ResolvedQuestion == "" {
		return passthrough(raw)
	}

	payload := map[string]interface{}{
		"question":         raw,
		"conversation":     bullets,
		"summary":          st.Summary,
		"scope":            st.Scope,
		"relevant_history": st.RelevantHistory,
		"prior_question":   st.ResolvedQuestion,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return passthrough(raw)
	}

	out, err := r.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: resolverSystemPrompt},
		{Role: "user", Content: string(body)},
	}, llm.WithTemperature(0), llm.WithJSONOnly())
	if err != nil {
		r.logger.Warn("followup", "resolver call failed, passing question through", map[string]interface{}{
			"error": err.Error(),
		})
		return passthrough(raw)
	}

	var res Resolution
	if err := json.Unmarshal([]byte(jsonx.ExtractObject(out)), &res); err != nil {
		r.logger.Warn("followup", "resolver returned malformed json", map[string]interface{}{
			"error": err.Error(),
		})
		return passthrough(raw)
	}

	if res.Mode != ModeFollowUp && res.Mode != ModeNewTopic {
		return passthrough(raw)
	}
	res.ResolvedQuestion = strings.TrimSpace(res.ResolvedQuestion)
	if res.ResolvedQuestion == "" {
		res.ResolvedQuestion = raw
	}
	if res.ScopeUpdates == nil {
		res.ScopeUpdates = map[string]string{}
	}
	return &res
}

func passthrough(raw string) *Resolution {
	return &Resolution{
		Mode:             ModeNewTopic,
		ResolvedQuestion: raw,
		ScopeUpdates:     map[string]string{},
		ScopeResets:      []string{},
	}
}
