package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/astralearn/internal/service"
)

// LearningHandler serves the learning-progress endpoint.
type LearningHandler struct {
	learning *service.LearningService
	logger   *slog.Logger
}

func NewLearningHandler(learning *service.LearningService, logger *slog.Logger) *LearningHandler {
	return &LearningHandler{learning: learning, logger: logger}
}

// UpdateProgress handles PUT /api/learning/progress.
func (h *LearningHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   int64 `json:"userId"`
		TopicID  int64 `json:"topicId"`
		Progress int   `json:"progress"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	topic, err := h.learning.UpdateProgress(r.Context(), req.UserID, req.TopicID, req.Progress)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, topic)
}
