package entity

import "time"

type QueryLog struct {
	ID            string
	ChatSessionID string
	UserID        string
	Question      string
	ResolvedQuery string
	Intent        string
	GeneratedSQL  string
	RowCount      int
	DurationMs    int64
	Failed        bool
	CreatedAt     time.Time
}
