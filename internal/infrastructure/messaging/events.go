package messaging

const (
	AuditQueue      = "audit"
	DeadLetterQueue = "dead_letter_queue"
)
