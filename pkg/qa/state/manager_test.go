package state

import (
	"fmt"
	"testing"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
)

func newTestManager() *Manager {
	return NewManager(logger.NewNopLogger())
}

func TestApplyScope(t *testing.T) {
	m := newTestManager()
	st := NewConversationState()

	m.ApplyScope(st, map[string]string{ScopeVendor: "Lonza", ScopeTimeframe: "Q2 2025"}, nil)
	if st.Scope[ScopeVendor] != "Lonza" || st.Scope[ScopeTimeframe] != "Q2 2025" {
		t.Fatalf("scope = %v", st.Scope)
	}

	// Reset then update on the same turn: reset runs first.
	m.ApplyScope(st, map[string]string{ScopeTimeframe: "Q3 2025"}, []string{ScopeTimeframe, ScopeVendor})
	if _, ok := st.Scope[ScopeVendor]; ok {
		t.Errorf("vendor should be reset, scope = %v", st.Scope)
	}
	if st.Scope[ScopeTimeframe] != "Q3 2025" {
		t.Errorf("timeframe = %q, want Q3 2025", st.Scope[ScopeTimeframe])
	}

	// Empty values never enter the scope.
	m.ApplyScope(st, map[string]string{ScopeStatus: ""}, nil)
	if _, ok := st.Scope[ScopeStatus]; ok {
		t.Errorf("empty status should not be stored")
	}
}

func TestApplyScopeNilMap(t *testing.T) {
	m := newTestManager()
	st := &ConversationState{}

	m.ApplyScope(st, map[string]string{ScopeStatus: "active"}, nil)
	if st.Scope[ScopeStatus] != "active" {
		t.Fatalf("scope = %v", st.Scope)
	}
}

func TestMergeRelevantHistory(t *testing.T) {
	m := newTestManager()
	st := NewConversationState()

	m.MergeRelevantHistory(st, []string{"a", "b", "a", ""})
	if len(st.RelevantHistory) != 2 {
		t.Fatalf("len = %d, want 2 (deduped, empties dropped): %v", len(st.RelevantHistory), st.RelevantHistory)
	}

	// Exceed the bound: oldest entries drop first.
	var items []string
	for i := 0; i < MaxRelevantHistory+5; i++ {
		items = append(items, fmt.Sprintf("item-%d", i))
	}
	m.MergeRelevantHistory(st, items)
	if len(st.RelevantHistory) != MaxRelevantHistory {
		t.Fatalf("len = %d, want %d", len(st.RelevantHistory), MaxRelevantHistory)
	}
	if st.RelevantHistory[0] == "a" {
		t.Errorf("oldest entry should have been dropped, got %v", st.RelevantHistory[:3])
	}
	last := st.RelevantHistory[len(st.RelevantHistory)-1]
	if last != fmt.Sprintf("item-%d", MaxRelevantHistory+4) {
		t.Errorf("newest entry = %q", last)
	}
}

func TestSetPrimary(t *testing.T) {
	m := newTestManager()
	st := NewConversationState()

	m.SetPrimary(st, PrimaryResponse{Kind: PrimaryNumeric, Value: "42"})
	if st.Primary.Kind != PrimaryNumeric || st.Primary.Value != "42" {
		t.Fatalf("primary = %+v", st.Primary)
	}

	// An error/ambiguous turn reports None and must not clobber the anchor.
	m.SetPrimary(st, PrimaryResponse{Kind: PrimaryNone})
	if st.Primary.Kind != PrimaryNumeric || st.Primary.Value != "42" {
		t.Errorf("primary overwritten by None: %+v", st.Primary)
	}

	m.SetPrimary(st, PrimaryResponse{Kind: PrimaryGrouped, GroupCol: "department", ValueCol: "total"})
	if st.Primary.Kind != PrimaryGrouped {
		t.Errorf("primary = %+v", st.Primary)
	}
}

func TestSetSummaryKeepsPriorOnEmpty(t *testing.T) {
	m := newTestManager()
	st := NewConversationState()

	m.SetSummary(st, "first summary")
	m.SetSummary(st, "")
	if st.Summary != "first summary" {
		t.Errorf("summary = %q", st.Summary)
	}
}

func TestAppendTurn(t *testing.T) {
	m := newTestManager()
	st := NewConversationState()

	m.AppendTurn(st, RoleUser, "how many NDAs?")
	m.AppendTurn(st, RoleAssistant, "There are 12 NDAs.")
	if len(st.History) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(st.History))
	}
	if st.History[0].Role != RoleUser || st.History[1].Role != RoleAssistant {
		t.Errorf("history roles = %v", st.History)
	}
}
