package dto

import (
	"time"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/dispatch"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/intent"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/state"
)

type CreateChatSessionRequest struct {
	Title string `json:"title"`
}

type ChatSessionResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessageResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	SQL       string    `json:"sql,omitempty"`
	Intent    string    `json:"intent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AskChatRequest struct {
	Question string `json:"question" validate:"required,min=1"`
}

// AskChatMeta is the trailing frame sent after the token stream: everything
// the front-end needs for display and for re-invoking the next turn.
type AskChatMeta struct {
	Question         string                   `json:"question"`
	ResolvedQuestion string                   `json:"resolved_question"`
	IsFollowup       bool                     `json:"is_followup"`
	Intent           *intent.Intent           `json:"intent"`
	SQL              string                   `json:"sql,omitempty"`
	Columns          []string                 `json:"columns,omitempty"`
	Rows             [][]interface{}          `json:"rows,omitempty"`
	Sections         []dispatch.ReportSection `json:"sections,omitempty"`
	ExampleIDs       []string                 `json:"example_ids,omitempty"`
	Error            string                   `json:"error,omitempty"`
	State            *state.ConversationState `json:"state"`
}

// TurnAuditMessage travels over the in-process bus to the audit consumer.
type TurnAuditMessage struct {
	SessionID        string `json:"session_id"`
	UserID           string `json:"user_id"`
	Question         string `json:"question"`
	ResolvedQuestion string `json:"resolved_question"`
	Intent           string `json:"intent"`
	SQL              string `json:"sql"`
	RowCount         int    `json:"row_count"`
	DurationMs       int64  `json:"duration_ms"`
	Failed           bool   `json:"failed"`
}
