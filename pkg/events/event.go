package events

import "time"

// Event is the contract for everything published to the external bus.
type Event interface {
	// EventType returns the event code, e.g. "chat.turn_completed".
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// TurnCompletedType is emitted after every answered chat turn.
const TurnCompletedType = "chat.turn_completed"

// NewTurnCompleted builds the audit event for one finished turn.
func NewTurnCompleted(sessionID, userID, question, intentName string, failed bool) Event {
	return BaseEvent{
		Type: TurnCompletedType,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
			"question":   question,
			"intent":     intentName,
			"failed":     failed,
		},
		OccurredAt: time.Now(),
	}
}
