package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/scenario-tracker/internal/domain"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/json"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/logging"
)

type Handler struct {
	auditRepository domain.AuditRepository
	logger          logging.Logger
}

func NewHandler(auditRepository domain.AuditRepository, logger logging.Logger) *Handler {
	return &Handler{
		auditRepository: auditRepository,
		logger:          logger,
	}
}

// GetScenarioAuditHandler godoc
// @Summary      Get a scenario's audit history
// @Description  Returns all audit entries for the scenario, newest-first. An empty history yields a JSON null body, not an error; this endpoint reflects only the audit log and never checks whether the scenario itself exists.
// @Tags         audit
// @Produce      json
// @Param        id path string true "Scenario ID"
// @Success      200 {object} auditHistoryResponse
// @Failure      400 {object} map[string]interface{} "Bad request - missing scenario id"
// @Router       /scenarios/{id}/audit [get]
func (h *Handler) GetScenarioAuditHandler(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "id")
	if scenarioID == "" {
		json.WriteBadRequestError(w, "scenarioId is required")
		return
	}

	entries, err := h.auditRepository.GetByScenarioID(r.Context(), scenarioID)
	if err != nil {
		h.logger.Error(logging.Mongo, logging.ExternalService, "failed to query audit entries", map[logging.ExtraKey]any{
			logging.ScenarioID:   scenarioID,
			logging.ErrorMessage: err.Error(),
		})
		json.WriteInternalError(w, err)
		return
	}

	if len(entries) == 0 {
		json.WriteNull(w, http.StatusOK)
		return
	}

	json.Write(w, http.StatusOK, auditHistoryResponse{
		ScenarioID: scenarioID,
		Events:     entries,
	})
}
