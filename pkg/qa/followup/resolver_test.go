package followup

import (
	"context"
	"errors"
	"testing"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/llm"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/state"
)

type mockProvider struct {
	chatFunc  func(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error)
	chatCalls int
}

func (m *mockProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	m.chatCalls++
	return m.chatFunc(ctx, history, options...)
}

func (m *mockProvider) ChatStream(ctx context.Context, history []llm.Message, onToken func(string) error, options ...llm.Option) error {
	out, err := m.Chat(ctx, history, options...)
	if err != nil {
		return err
	}
	return onToken(out)
}

func (m *mockProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return m.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func TestResolveFirstTurnSkipsModel(t *testing.T) {
	p := &mockProvider{chatFunc: func(context.Context, []llm.Message, ...llm.Option) (string, error) {
		return `{"mode":"FOLLOW_UP","resolved_question":"should not be used"}`, nil
	}}
	r := NewResolver(p, logger.NewNopLogger())

	res := r.Resolve(context.Background(), "  how many active contracts?  ", nil, state.NewConversationState())
	if p.chatCalls != 0 {
		t.Fatalf("provider called %d times on first turn, want 0", p.chatCalls)
	}
	if res.Mode != ModeNewTopic {
		t.Errorf("Mode = %q, want NEW_TOPIC", res.Mode)
	}
	if res.ResolvedQuestion != "how many active contracts?" {
		t.Errorf("ResolvedQuestion = %q", res.ResolvedQuestion)
	}
	if res.ScopeUpdates == nil || res.ScopeResets == nil {
		t.Errorf("passthrough must return non-nil scope fields")
	}
}

func withHistory() *state.ConversationState {
	st := state.NewConversationState()
	st.History = append(st.History, state.Turn{Role: state.RoleUser, Content: "how many NDAs in Q1 2025?"})
	st.History = append(st.History, state.Turn{Role: state.RoleAssistant, Content: "There were 14."})
	st.ResolvedQuestion = "How many NDAs were created in Q1 2025?"
	st.Scope[state.ScopeTimeframe] = "Q1 2025"
	return st
}

func TestResolveFollowUp(t *testing.T) {
	p := &mockProvider{chatFunc: func(context.Context, []llm.Message, ...llm.Option) (string, error) {
		return `{"mode":"FOLLOW_UP","resolved_question":"How many NDAs were created in Q2 2025?","scope_updates":{"timeframe":"Q2 2025"},"scope_resets":[]}`, nil
	}}
	r := NewResolver(p, logger.NewNopLogger())

	res := r.Resolve(context.Background(), "what about Q2?", []string{"User asked about Q1 2025 NDAs (14)."}, withHistory())
	if res.Mode != ModeFollowUp {
		t.Fatalf("Mode = %q, want FOLLOW_UP", res.Mode)
	}
	if res.ResolvedQuestion != "How many NDAs were created in Q2 2025?" {
		t.Errorf("ResolvedQuestion = %q", res.ResolvedQuestion)
	}
	if res.ScopeUpdates["timeframe"] != "Q2 2025" {
		t.Errorf("ScopeUpdates = %v", res.ScopeUpdates)
	}
}

func TestResolveFallbacks(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
	}{
		{name: "provider error", err: errors.New("timeout")},
		{name: "malformed json", out: "no object here"},
		{name: "unknown mode", out: `{"mode":"MAYBE","resolved_question":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockProvider{chatFunc: func(context.Context, []llm.Message, ...llm.Option) (string, error) {
				return tt.out, tt.err
			}}
			r := NewResolver(p, logger.NewNopLogger())

			res := r.Resolve(context.Background(), "and for finance?", nil, withHistory())
			if res.Mode != ModeNewTopic {
				t.Errorf("Mode = %q, want NEW_TOPIC passthrough", res.Mode)
			}
			if res.ResolvedQuestion != "and for finance?" {
				t.Errorf("ResolvedQuestion = %q, want raw question", res.ResolvedQuestion)
			}
		})
	}
}

func TestResolveEmptyResolvedQuestionUsesRaw(t *testing.T) {
	p := &mockProvider{chatFunc: func(context.Context, []llm.Message, ...llm.Option) (string, error) {
		return `{"mode":"FOLLOW_UP","resolved_question":"   "}`, nil
	}}
	r := NewResolver(p, logger.NewNopLogger())

	res := r.Resolve(context.Background(), "same but active only", nil, withHistory())
	if res.ResolvedQuestion != "same but active only" {
		t.Errorf("ResolvedQuestion = %q, want raw question", res.ResolvedQuestion)
	}
	if res.Mode != ModeFollowUp {
		t.Errorf("Mode = %q, want FOLLOW_UP", res.Mode)
	}
}
