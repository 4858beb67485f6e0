package entity

import "time"

type ChatSession struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	IsDeleted bool
}

type ChatMessage struct {
	ID            string
	ChatSessionID string
	Role          string
	Content       string
	GeneratedSQL  string
	Intent        string
	CreatedAt     time.Time
}
