package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/astralearn/internal/service"
)

// DashboardHandler serves the aggregated dashboard view.
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *slog.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// Get handles GET /api/dashboard/{userId}.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	dash, err := h.dashboard.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dash)
}
