package scenarios

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/scenario-tracker/internal/domain"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/auth"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/json"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/logging"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/validate"
	"github.com/hilthontt/scenario-tracker/internal/persistence/cursor"
)

const allowedMethods = "GET, POST, PUT, DELETE"

type Handler struct {
	scenarioRepository domain.ScenarioRepository
	authenticator      *auth.Authenticator
	logger             logging.Logger
}

func NewHandler(
	scenarioRepository domain.ScenarioRepository,
	authenticator *auth.Authenticator,
	logger logging.Logger,
) *Handler {
	return &Handler{
		scenarioRepository: scenarioRepository,
		authenticator:      authenticator,
		logger:             logger,
	}
}

// requireEditor gates mutating verbs. When it returns false the 403 has
// already been written and the store must not be touched.
func (h *Handler) requireEditor(w http.ResponseWriter, r *http.Request) bool {
	identity := auth.IdentityFromContext(r.Context())
	if !h.authenticator.IsEditor(identity) {
		h.logger.Warn(logging.General, logging.Authorization, "mutation rejected for non-editor", map[logging.ExtraKey]any{
			logging.Method: r.Method,
			logging.Path:   r.URL.Path,
		})
		json.WriteForbiddenError(w, "editor capability required")
		return false
	}
	return true
}

// ListScenariosHandler godoc
// @Summary      List scenarios
// @Description  Returns a page of scenarios newest-first, optionally filtered by author
// @Tags         scenarios
// @Produce      json
// @Param        limit query int false "Page size"
// @Param        createdBy query string false "Filter by author"
// @Param        nextKey query string false "Opaque continuation cursor"
// @Success      200 {object} listScenariosResponse
// @Failure      400 {object} map[string]interface{} "Bad request - malformed limit or cursor"
// @Router       /scenarios [get]
func (h *Handler) ListScenariosHandler(w http.ResponseWriter, r *http.Request) {
	opts := domain.ListOptions{
		NextKey:   r.URL.Query().Get("nextKey"),
		CreatedBy: r.URL.Query().Get("createdBy"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			json.WriteBadRequestError(w, "limit must be a positive integer")
			return
		}
		opts.Limit = limit
	}

	page, err := h.scenarioRepository.List(r.Context(), opts)
	if err != nil {
		if errors.Is(err, cursor.ErrMalformed) {
			json.WriteValidationError(w, err)
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	resp := listScenariosResponse{
		Items:   make([]scenarioResponse, 0, len(page.Items)),
		NextKey: page.NextKey,
	}
	for _, item := range page.Items {
		resp.Items = append(resp.Items, toScenarioResponse(item))
	}

	json.Write(w, http.StatusOK, resp)
}

// GetScenarioHandler godoc
// @Summary      Get one scenario
// @Tags         scenarios
// @Produce      json
// @Param        id path string true "Scenario ID"
// @Success      200 {object} scenarioResponse
// @Failure      404 "Scenario not found"
// @Router       /scenarios/{id} [get]
func (h *Handler) GetScenarioHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		json.WriteBadRequestError(w, "scenario ID is missing")
		return
	}

	scenario, err := h.scenarioRepository.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrScenarioNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, toScenarioResponse(*scenario))
}

// CreateScenarioHandler godoc
// @Summary      Create a scenario
// @Tags         scenarios
// @Accept       json
// @Produce      json
// @Param        request body createScenarioRequest true "Scenario attributes"
// @Success      201 {object} scenarioResponse
// @Failure      400 {object} map[string]interface{} "Bad request - missing or malformed body"
// @Failure      403 {object} map[string]interface{} "Forbidden - editor capability required"
// @Security     BearerAuth
// @Router       /scenarios [post]
func (h *Handler) CreateScenarioHandler(w http.ResponseWriter, r *http.Request) {
	if !h.requireEditor(w, r) {
		return
	}

	var req createScenarioRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := validate.Field("title", validate.Required())(req.Title); err != nil {
		json.WriteValidationError(w, err)
		return
	}
	if err := validate.Field("ticket", validate.Required())(req.Ticket); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	scenario := domain.NewScenario(req.toFields(), identity.Name())

	if err := h.scenarioRepository.Create(r.Context(), scenario); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, toScenarioResponse(*scenario))
}

// UpdateScenarioHandler godoc
// @Summary      Partially update a scenario
// @Description  Overwrites only the supplied fields and stamps updatedBy/updatedAt
// @Tags         scenarios
// @Accept       json
// @Produce      json
// @Param        id path string true "Scenario ID"
// @Param        request body updateScenarioRequest true "Fields to change"
// @Success      200 {object} scenarioResponse
// @Failure      400 {object} map[string]interface{} "Bad request - missing id, body, or no fields"
// @Failure      403 {object} map[string]interface{} "Forbidden - editor capability required"
// @Failure      404 {object} map[string]interface{} "Scenario not found"
// @Security     BearerAuth
// @Router       /scenarios/{id} [put]
func (h *Handler) UpdateScenarioHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		json.WriteBadRequestError(w, "scenario ID is missing")
		return
	}

	if !h.requireEditor(w, r) {
		return
	}

	var req updateScenarioRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	fields := req.toFields()
	if fields.IsEmpty() {
		json.WriteBadRequestError(w, "no fields to update")
		return
	}

	identity := auth.IdentityFromContext(r.Context())

	updated, err := h.scenarioRepository.UpdatePartial(r.Context(), id, fields, identity.Name())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScenarioNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Scenario not found")
		case errors.Is(err, domain.ErrNoFieldsToUpdate):
			json.WriteBadRequestError(w, "no fields to update")
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusOK, toScenarioResponse(*updated))
}

// DeleteScenarioHandler godoc
// @Summary      Delete a scenario
// @Tags         scenarios
// @Param        id path string true "Scenario ID"
// @Success      204 "Scenario deleted"
// @Failure      400 {object} map[string]interface{} "Bad request - missing id"
// @Failure      403 {object} map[string]interface{} "Forbidden - editor capability required"
// @Failure      404 {object} map[string]interface{} "Scenario not found"
// @Security     BearerAuth
// @Router       /scenarios/{id} [delete]
func (h *Handler) DeleteScenarioHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		json.WriteBadRequestError(w, "scenario ID is missing")
		return
	}

	if !h.requireEditor(w, r) {
		return
	}

	if err := h.scenarioRepository.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrScenarioNotFound) {
			json.WriteError(w, http.StatusNotFound, err, "Scenario not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MethodNotAllowedHandler answers any verb outside the CRUD set.
func (h *Handler) MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", allowedMethods)
	json.WriteError(w, http.StatusMethodNotAllowed, nil,
		"method not allowed, allowed methods: "+strings.ToLower(allowedMethods))
}
