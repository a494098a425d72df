package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/astralearn/internal/service"
)

// ResumeHandler serves resume analysis and feedback history.
type ResumeHandler struct {
	resume *service.ResumeService
	logger *slog.Logger
}

func NewResumeHandler(resume *service.ResumeService, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{resume: resume, logger: logger}
}

// Analyze handles POST /api/resume/analyze.
func (h *ResumeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        int64  `json:"userId"`
		ResumeContent string `json:"resumeContent"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.resume.Analyze(r.Context(), req.UserID, req.ResumeContent)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Feedback handles GET /api/resume/feedback/{userId}.
func (h *ResumeHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	feedback, err := h.resume.Feedback(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feedback)
}
