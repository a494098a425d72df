package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/astralearn/internal/service"
)

// CodeHandler serves code submission and history endpoints.
type CodeHandler struct {
	code   *service.CodeService
	logger *slog.Logger
}

func NewCodeHandler(code *service.CodeService, logger *slog.Logger) *CodeHandler {
	return &CodeHandler{code: code, logger: logger}
}

// Submit handles POST /api/code/submit.
func (h *CodeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.code.Submit(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Submissions handles GET /api/code/submissions/{userId}.
func (h *CodeHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	submissions, err := h.code.Submissions(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submissions)
}
