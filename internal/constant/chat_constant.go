package constant

const (
	// TopicTurnAudit is the in-process topic carrying finished-turn audit
	// messages from the chat service to the audit consumer.
	TopicTurnAudit = "chat.turn.audit"

	DefaultSessionTitle = "New conversation"

	RoleUser      = "user"
	RoleAssistant = "assistant"
)
