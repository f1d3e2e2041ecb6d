package changefeed

import (
	"testing"
	"time"

	"github.com/hilthontt/scenario-tracker/internal/domain"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/contracts"
)

func TestDeriveEntry(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	newImage := &domain.Scenario{ID: "s1", Ticket: "T-1", UpdatedBy: "alice"}
	oldImage := &domain.Scenario{ID: "s1", Ticket: "T-0", UpdatedBy: "bob"}

	tests := []struct {
		name  string
		event ChangeEvent
		want  domain.AuditEntry
	}{
		{
			name:  "insert uses post image",
			event: ChangeEvent{ID: "evt-1", Kind: KindInsert, New: newImage},
			want: domain.AuditEntry{
				ScenarioID:  "s1",
				Timestamp:   now,
				Ticket:      "T-1",
				Action:      domain.ActionCreate,
				PerformedBy: "alice",
				RequestID:   "evt-1",
			},
		},
		{
			name:  "modify prefers post image over pre image",
			event: ChangeEvent{ID: "evt-2", Kind: KindModify, New: newImage, Old: oldImage},
			want: domain.AuditEntry{
				ScenarioID:  "s1",
				Timestamp:   now,
				Ticket:      "T-1",
				Action:      domain.ActionUpdate,
				PerformedBy: "alice",
				RequestID:   "evt-2",
			},
		},
		{
			name:  "remove falls back to pre image",
			event: ChangeEvent{ID: "evt-3", Kind: KindRemove, Old: oldImage},
			want: domain.AuditEntry{
				ScenarioID:  "s1",
				Timestamp:   now,
				Ticket:      "T-0",
				Action:      domain.ActionDelete,
				PerformedBy: "bob",
				RequestID:   "evt-3",
			},
		},
		{
			name:  "unrecognized kind maps to unknown action",
			event: ChangeEvent{ID: "evt-4", Kind: Kind("RENAME"), New: newImage},
			want: domain.AuditEntry{
				ScenarioID:  "s1",
				Timestamp:   now,
				Ticket:      "T-1",
				Action:      domain.ActionUnknown,
				PerformedBy: "alice",
				RequestID:   "evt-4",
			},
		},
		{
			name:  "event without images still produces an entry",
			event: ChangeEvent{ID: "evt-5", Kind: KindModify},
			want: domain.AuditEntry{
				Timestamp: now,
				Action:    domain.ActionUpdate,
				RequestID: "evt-5",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveEntry(tt.event, now)
			if *got != tt.want {
				t.Fatalf("deriveEntry() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestKindFromOperation(t *testing.T) {
	tests := []struct {
		op   string
		want Kind
	}{
		{op: "insert", want: KindInsert},
		{op: "update", want: KindModify},
		{op: "replace", want: KindModify},
		{op: "delete", want: KindRemove},
		{op: "invalidate", want: KindUnknown},
		{op: "", want: KindUnknown},
	}

	for _, tt := range tests {
		if got := kindFromOperation(tt.op); got != tt.want {
			t.Errorf("kindFromOperation(%q) = %s, want %s", tt.op, got, tt.want)
		}
	}
}

func TestRoutingKey(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{kind: KindInsert, want: contracts.EventScenarioInserted},
		{kind: KindModify, want: contracts.EventScenarioModified},
		{kind: KindRemove, want: contracts.EventScenarioRemoved},
		{kind: KindUnknown, want: contracts.EventScenarioUnknown},
		{kind: Kind("RENAME"), want: contracts.EventScenarioUnknown},
	}

	for _, tt := range tests {
		if got := routingKey(tt.kind); got != tt.want {
			t.Errorf("routingKey(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}
