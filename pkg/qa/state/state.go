package state

// Turn is one entry in the per-session transcript.
type Turn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Well-known scope keys carried across turns.
const (
	ScopeTimeframe        = "timeframe"
	ScopeStatus           = "status"
	ScopeVendor           = "vendor"
	ScopeDepartment       = "department"
	ScopeRecordType       = "record_type"
	ScopeApprover         = "approver"
	ScopePriority         = "priority"
	ScopeIDs              = "ids"
	ScopeActiveContractID = "active_contract_id"
)

// PrimaryKind tags the primary response anchor variant.
type PrimaryKind string

const (
	PrimaryNone    PrimaryKind = "none"
	PrimaryNumeric PrimaryKind = "numeric"
	PrimaryGrouped PrimaryKind = "grouped"
	PrimaryText    PrimaryKind = "text"
)

// PrimaryResponse is the prior turn's headline result. The synthesizer may
// reference it when the next turn is a follow-up.
type PrimaryResponse struct {
	Kind     PrimaryKind `json:"kind"`
	Value    string      `json:"value,omitempty"`
	GroupCol string      `json:"group_col,omitempty"`
	ValueCol string      `json:"value_col,omitempty"`
	Labels   []string    `json:"labels,omitempty"`
	Context  string      `json:"context,omitempty"`
}

// MaxRelevantHistory bounds the rolling list of short context strings.
const MaxRelevantHistory = 20

// ConversationState is the full per-session record. It is created at session
// start, mutated only by the Manager once per turn, and discarded at session
// end. No ambient/global storage.
type ConversationState struct {
	History          []Turn            `json:"history"`
	Summary          string            `json:"summary"`
	Scope            map[string]string `json:"scope"`
	RelevantHistory  []string          `json:"relevant_history"`
	ResolvedQuestion string            `json:"resolved_question"`
	Primary          PrimaryResponse   `json:"primary_response"`
}

func NewConversationState() *ConversationState {
	return &ConversationState{
		History:         []Turn{},
		Scope:           map[string]string{},
		RelevantHistory: []string{},
		Primary:         PrimaryResponse{Kind: PrimaryNone},
	}
}
