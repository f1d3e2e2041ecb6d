package domain

import (
	"context"
	"time"
)

type AuditAction string

const (
	ActionCreate  AuditAction = "CREATE"
	ActionUpdate  AuditAction = "UPDATE"
	ActionDelete  AuditAction = "DELETE"
	ActionUnknown AuditAction = "UNKNOWN"
)

// AuditEntry is one derived record of a scenario mutation. Entries are
// append-only: the application never updates or deletes them. The change
// feed delivers at least once, so two entries may share a RequestID.
type AuditEntry struct {
	ScenarioID  string      `bson:"scenarioId" json:"scenarioId"`
	Timestamp   time.Time   `bson:"timestamp" json:"timestamp"`
	Ticket      string      `bson:"ticket" json:"ticket"`
	Action      AuditAction `bson:"action" json:"action"`
	PerformedBy string      `bson:"performedBy" json:"performedBy"`
	RequestID   string      `bson:"requestId" json:"requestId"`
}

type AuditRepository interface {
	Log(ctx context.Context, entry *AuditEntry) error
	GetByScenarioID(ctx context.Context, scenarioID string) ([]AuditEntry, error)
	EnsureIndexes(ctx context.Context) error
}
