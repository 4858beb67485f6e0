package model

import (
	"time"
)

// QueryLog is the per-turn audit row written by the event consumer,
// not on the request path.
type QueryLog struct {
	ID            string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionID string `gorm:"type:uuid;index"`
	UserID        string `gorm:"type:uuid"`
	Question      string `gorm:"type:text"`
	ResolvedQuery string `gorm:"type:text"`
	Intent        string `gorm:"type:varchar(64)"`
	GeneratedSQL  string `gorm:"column:generated_sql;type:text"`
	RowCount      int
	DurationMs    int64
	Failed        bool
	CreatedAt     time.Time
}

func (QueryLog) TableName() string {
	return "query_logs"
}
