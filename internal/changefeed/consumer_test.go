package changefeed

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hilthontt/scenario-tracker/internal/domain"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/contracts"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/logging"
	"github.com/rabbitmq/amqp091-go"
)

type fakeAuditRepository struct {
	entries []domain.AuditEntry
	err     error
}

func (f *fakeAuditRepository) Log(_ context.Context, entry *domain.AuditEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepository) GetByScenarioID(context.Context, string) ([]domain.AuditEntry, error) {
	return f.entries, nil
}

func (f *fakeAuditRepository) EnsureIndexes(context.Context) error { return nil }

func deliveryFor(t *testing.T, event ChangeEvent) amqp091.Delivery {
	t.Helper()

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	body, err := json.Marshal(contracts.AmqpMessage{EventID: event.ID, Data: data})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}

	return amqp091.Delivery{Body: body}
}

func TestConsumerDerivesOneEntryPerEvent(t *testing.T) {
	audit := &fakeAuditRepository{}
	c := NewConsumer(nil, audit, 3, logging.NewNopLogger())

	event := ChangeEvent{
		ID:   "evt-1",
		Kind: KindInsert,
		New:  &domain.Scenario{ID: "s1", Ticket: "T-1", UpdatedBy: "alice"},
	}

	if err := c.handle(context.Background(), deliveryFor(t, event)); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}

	entry := audit.entries[0]
	if entry.ScenarioID != "s1" || entry.Action != domain.ActionCreate ||
		entry.Ticket != "T-1" || entry.PerformedBy != "alice" || entry.RequestID != "evt-1" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestConsumerDuplicateDeliveriesProduceDuplicateEntries(t *testing.T) {
	// The feed is at-least-once and the consumer performs no deduplication:
	// a redelivered event yields a second entry with the same requestId.
	audit := &fakeAuditRepository{}
	c := NewConsumer(nil, audit, 3, logging.NewNopLogger())

	event := ChangeEvent{
		ID:   "evt-dup",
		Kind: KindModify,
		New:  &domain.Scenario{ID: "s1", Ticket: "T-1", UpdatedBy: "bob"},
	}

	for i := 0; i < 2; i++ {
		if err := c.handle(context.Background(), deliveryFor(t, event)); err != nil {
			t.Fatalf("handle failed: %v", err)
		}
	}

	if len(audit.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(audit.entries))
	}
	if audit.entries[0].RequestID != audit.entries[1].RequestID {
		t.Fatal("duplicate deliveries must share a requestId")
	}
}

func TestConsumerReportsWriteFailures(t *testing.T) {
	audit := &fakeAuditRepository{err: errors.New("write failed")}
	c := NewConsumer(nil, audit, 3, logging.NewNopLogger())

	event := ChangeEvent{ID: "evt-2", Kind: KindRemove, Old: &domain.Scenario{ID: "s2"}}

	if err := c.handle(context.Background(), deliveryFor(t, event)); err == nil {
		t.Fatal("expected error so the delivery is retried")
	}
}

func TestConsumerDropsUnparseableMessages(t *testing.T) {
	audit := &fakeAuditRepository{}
	c := NewConsumer(nil, audit, 3, logging.NewNopLogger())

	tests := []struct {
		name string
		body []byte
	}{
		{name: "garbage envelope", body: []byte("not json")},
		{name: "garbage event payload", body: []byte(`{"eventId":"evt-3","data":"bm90IGpzb24="}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.handle(context.Background(), amqp091.Delivery{Body: tt.body})
			if err != nil {
				t.Fatalf("unparseable messages must be dropped, not retried: %v", err)
			}
		})
	}

	if len(audit.entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(audit.entries))
	}
}
