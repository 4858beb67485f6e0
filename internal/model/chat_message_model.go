package model

import (
	"time"
)

type ChatMessage struct {
	ID            string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionID string `gorm:"type:uuid;not null;index"`
	Role          string `gorm:"type:varchar(16);not null"`
	Content       string `gorm:"type:text;not null"`
	GeneratedSQL  string `gorm:"column:generated_sql;type:text"`
	Intent        string `gorm:"type:varchar(64)"`
	CreatedAt     time.Time
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
