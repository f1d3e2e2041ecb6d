// Package changefeed turns record store mutations into audit entries. A
// watcher tails the scenarios change stream and relays every event over the
// message broker; a consumer derives exactly one audit entry per delivery.
// The broker's capped redelivery gives the feed its at-least-once contract,
// so duplicate entries sharing a requestId are possible and tolerated.
package changefeed

import (
	"time"

	"github.com/hilthontt/scenario-tracker/internal/domain"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/contracts"
)

type Kind string

const (
	KindInsert  Kind = "INSERT"
	KindModify  Kind = "MODIFY"
	KindRemove  Kind = "REMOVE"
	KindUnknown Kind = "UNKNOWN"
)

// ChangeEvent is one observed mutation. New is the post-change image, Old
// the pre-change image; removes carry only Old.
type ChangeEvent struct {
	ID   string           `json:"id"`
	Kind Kind             `json:"kind"`
	New  *domain.Scenario `json:"new,omitempty"`
	Old  *domain.Scenario `json:"old,omitempty"`
}

var actionMap = map[Kind]domain.AuditAction{
	KindInsert: domain.ActionCreate,
	KindModify: domain.ActionUpdate,
	KindRemove: domain.ActionDelete,
}

func routingKey(kind Kind) string {
	switch kind {
	case KindInsert:
		return contracts.EventScenarioInserted
	case KindModify:
		return contracts.EventScenarioModified
	case KindRemove:
		return contracts.EventScenarioRemoved
	default:
		return contracts.EventScenarioUnknown
	}
}

// deriveEntry builds the audit entry for one change event. Fields come from
// the post-change image when present, falling back to the pre-change image,
// which is all a remove carries. The timestamp is stamped fresh here; it is
// the entry's own creation time, not the mutation's.
func deriveEntry(event ChangeEvent, now time.Time) *domain.AuditEntry {
	action, ok := actionMap[event.Kind]
	if !ok {
		action = domain.ActionUnknown
	}

	var newImage, oldImage domain.Scenario
	if event.New != nil {
		newImage = *event.New
	}
	if event.Old != nil {
		oldImage = *event.Old
	}

	return &domain.AuditEntry{
		ScenarioID:  firstNonEmpty(newImage.ID, oldImage.ID),
		Timestamp:   now,
		Ticket:      firstNonEmpty(newImage.Ticket, oldImage.Ticket),
		Action:      action,
		PerformedBy: firstNonEmpty(newImage.UpdatedBy, oldImage.UpdatedBy),
		RequestID:   event.ID,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
