package state

import (
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
)

// Manager owns every mutation of ConversationState. Components compute
// updates; only the Manager applies them.
type Manager struct {
	logger logger.ILogger
}

func NewManager(log logger.ILogger) *Manager {
	return &Manager{logger: log}
}

// AppendTurn adds a transcript entry. History is append-only.
func (m *Manager) AppendTurn(st *ConversationState, role, content string) {
	st.History = append(st.History, Turn{Role: role, Content: content})
}

// SetSummary replaces the running synopsis. An empty value keeps the prior
// summary (the compressor's failure contract).
func (m *Manager) SetSummary(st *ConversationState, summary string) {
	if summary == "" {
		return
	}
	st.Summary = summary
}

// ApplyScope applies resolver-declared updates and resets. Resets run first
// so an update can re-introduce a key on the same turn.
func (m *Manager) ApplyScope(st *ConversationState, updates map[string]string, resetKeys []string) {
	if st.Scope == nil {
		st.Scope = map[string]string{}
	}
	for _, k := range resetKeys {
		delete(st.Scope, k)
	}
	for k, v := range updates {
		if v == "" {
			continue
		}
		st.Scope[k] = v
	}
	if len(resetKeys) > 0 || len(updates) > 0 {
		m.logger.Debug("state", "scope updated", map[string]interface{}{
			"resets":  resetKeys,
			"updates": updates,
		})
	}
}

// MergeRelevantHistory appends new context strings, deduplicated, dropping
// the oldest entries beyond the bound.
func (m *Manager) MergeRelevantHistory(st *ConversationState, items []string) {
	seen := make(map[string]bool, len(st.RelevantHistory))
	for _, h := range st.RelevantHistory {
		seen[h] = true
	}
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		st.RelevantHistory = append(st.RelevantHistory, item)
		seen[item] = true
	}
	if overflow := len(st.RelevantHistory) - MaxRelevantHistory; overflow > 0 {
		st.RelevantHistory = st.RelevantHistory[overflow:]
	}
}

// SetResolvedQuestion records the self-contained question used next turn.
func (m *Manager) SetResolvedQuestion(st *ConversationState, q string) {
	if q == "" {
		return
	}
	st.ResolvedQuestion = q
}

// SetPrimary overwrites the anchor only when the new result warrants one.
// Ambiguous and error turns pass PrimaryNone and keep the previous anchor.
func (m *Manager) SetPrimary(st *ConversationState, p PrimaryResponse) {
	if p.Kind == PrimaryNone || p.Kind == "" {
		return
	}
	st.Primary = p
}
