package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/astralearn/internal/service"
)

// InterviewHandler serves the mock-interview endpoints.
type InterviewHandler struct {
	interviews *service.InterviewService
	logger     *slog.Logger
}

func NewInterviewHandler(interviews *service.InterviewService, logger *slog.Logger) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, logger: logger}
}

// Start handles POST /api/interview/start.
func (h *InterviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64  `json:"userId"`
		Topic  string `json:"topic"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	interview, err := h.interviews.Start(r.Context(), req.UserID, req.Topic)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, interview)
}

// Submit handles POST /api/interview/submit.
func (h *InterviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InterviewID int64  `json:"interviewId"`
		Answer      string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.interviews.Submit(r.Context(), req.InterviewID, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
