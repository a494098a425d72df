package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/astralearn/internal/service"
)

// AnalyticsHandler serves the analytics endpoint.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	logger    *slog.Logger
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, logger: logger}
}

// Get handles GET /api/analytics/{userId}.
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	analytics, err := h.analytics.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}
