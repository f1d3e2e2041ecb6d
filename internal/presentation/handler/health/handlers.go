package health

import (
	"net/http"
	"time"

	"github.com/hilthontt/scenario-tracker/internal/infrastructure/json"
)

type Handler struct {
	startedAt time.Time
}

func NewHandler() *Handler {
	return &Handler{
		startedAt: time.Now(),
	}
}

// GetHealth godoc
// @Summary      Service health
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse
// @Router       /health [get]
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: time.Since(h.startedAt).String(),
	})
}
