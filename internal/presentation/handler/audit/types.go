package audit

import "github.com/hilthontt/scenario-tracker/internal/domain"

// auditHistoryResponse bundles a scenario's full audit trail
type auditHistoryResponse struct {
	ScenarioID string              `json:"scenarioId"`
	Events     []domain.AuditEntry `json:"events"`
}
