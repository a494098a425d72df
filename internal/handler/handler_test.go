package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/astralearn/internal/analysis"
	"github.com/sakif/astralearn/internal/auth"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository/memory"
	"github.com/sakif/astralearn/internal/service"
)

// =========================================================================
// TEST FIXTURES
// =========================================================================

// stubAnalyzer returns fixed responses; handler tests exercise HTTP
// plumbing, not analysis behaviour.
type stubAnalyzer struct{}

func (stubAnalyzer) GenerateQuestion(ctx context.Context, topic string) (string, error) {
	return "Describe " + topic + ".", nil
}

func (stubAnalyzer) AnalyzeInterview(ctx context.Context, question, answer string) (*analysis.InterviewAnalysis, error) {
	return &analysis.InterviewAnalysis{Feedback: "Solid", Score: 8, Suggestions: []string{}}, nil
}

func (stubAnalyzer) AnalyzeCode(ctx context.Context, code, language, problemTitle string) (*analysis.CodeAnalysis, error) {
	return &analysis.CodeAnalysis{Suggestions: "ok", EfficiencyScore: 7, IsCorrect: true, Improvements: []string{}}, nil
}

func (stubAnalyzer) AnalyzeResume(ctx context.Context, resumeContent string) (*analysis.ResumeAnalysis, error) {
	return &analysis.ResumeAnalysis{OverallScore: "7.5/10", Feedback: model.ResumeComments{
		Strengths: []string{"clear"}, Weaknesses: []string{}, Suggestions: []string{},
	}}, nil
}

func (stubAnalyzer) SummarizeNotes(ctx context.Context, content, topic string) (string, error) {
	return "summary", nil
}

// testEnv wires the full handler stack over an in-memory store, the
// same shape the server package assembles in production.
type testEnv struct {
	router *chi.Mux
	store  *memory.Store
	auth   *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	analyzer := stubAnalyzer{}

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	require.NoError(t, err)

	locks := service.NewUserLocks()
	authSvc := service.NewAuthService(store, store, auth.NewPasswordServiceForTest(4), tokens, logger)

	authHandler := NewAuthHandler(authSvc, logger)
	dashboardHandler := NewDashboardHandler(service.NewDashboardService(store, logger), logger)
	interviewHandler := NewInterviewHandler(service.NewInterviewService(store, store, store, analyzer, locks, logger), logger)
	codeHandler := NewCodeHandler(service.NewCodeService(store, store, store, analyzer, locks, logger), logger)
	resumeHandler := NewResumeHandler(service.NewResumeService(store, store, analyzer, logger), logger)
	noteHandler := NewNoteHandler(service.NewNoteService(store, store, analyzer, logger), logger)
	learningHandler := NewLearningHandler(service.NewLearningService(store, store, logger), logger)
	analyticsHandler := NewAnalyticsHandler(service.NewAnalyticsService(store, logger), logger)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/auth/me", authHandler.Me)
		r.Get("/dashboard/{userId}", dashboardHandler.Get)
		r.Post("/interview/start", interviewHandler.Start)
		r.Post("/interview/submit", interviewHandler.Submit)
		r.Post("/code/submit", codeHandler.Submit)
		r.Get("/code/submissions/{userId}", codeHandler.Submissions)
		r.Post("/resume/analyze", resumeHandler.Analyze)
		r.Get("/resume/feedback/{userId}", resumeHandler.Feedback)
		r.Post("/notes", noteHandler.Create)
		r.Get("/notes/{userId}", noteHandler.List)
		r.Put("/notes/{noteId}", noteHandler.Update)
		r.Put("/learning/progress", learningHandler.UpdateProgress)
		r.Get("/analytics/{userId}", analyticsHandler.Get)
	})

	return &testEnv{router: router, store: store, auth: authSvc}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) register(t *testing.T, username string) *service.AuthResult {
	t.Helper()
	res, err := e.auth.Register(context.Background(), service.RegisterRequest{
		Username:  username,
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
	})
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// =========================================================================
// AUTH ENDPOINTS
// =========================================================================

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username":  "alice",
		"password":  "password123",
		"firstName": "Alice",
		"lastName":  "Smith",
		"email":     "alice@example.com",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User  model.PublicUser `json:"user"`
		Token string           `json:"token"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "alice", body.User.Username)
	assert.NotZero(t, body.User.ID)
	assert.NotEmpty(t, body.Token)

	// The response must never leak the password, hashed or not.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterEndpoint_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")

	rec := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username":  "alice",
		"password":  "x",
		"firstName": "A",
		"lastName":  "B",
		"email":     "other@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "conflict", body.Error)
	assert.Equal(t, "Username already exists", body.Message)
}

func TestRegisterEndpoint_MissingField(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "validation_error", body.Error)
}

func TestRegisterEndpoint_MalformedJSON(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")

	rec := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown user must look exactly like a wrong password.
	rec = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "nobody",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeEndpoint(t *testing.T) {
	env := newTestEnv(t)
	registered := env.register(t, "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+registered.Token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User model.PublicUser `json:"user"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, registered.User.ID, body.User.ID)
}

func TestMeEndpoint_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =========================================================================
// DASHBOARD
// =========================================================================

func TestDashboardEndpoint(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice").User

	rec := env.do(t, http.MethodGet, "/api/dashboard/"+itoa(user.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User           *model.User           `json:"user"`
		Stats          *model.UserStats      `json:"stats"`
		LearningTopics []model.LearningTopic `json:"learningTopics"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, user.ID, body.User.ID)
	assert.Equal(t, "0.0", body.Stats.AIScore)
	assert.Len(t, body.LearningTopics, 3)
}

func TestDashboardEndpoint_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/dashboard/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "not_found", body.Error)
}

func TestDashboardEndpoint_BadID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/dashboard/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =========================================================================
// INTERVIEW FLOW
// =========================================================================

func TestInterviewFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice").User

	rec := env.do(t, http.MethodPost, "/api/interview/start", map[string]interface{}{
		"userId": user.ID,
		"topic":  "goroutines",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var interview model.Interview
	decodeBody(t, rec, &interview)
	assert.Equal(t, "Describe goroutines.", interview.Question)
	assert.False(t, interview.IsCompleted)

	rec = env.do(t, http.MethodPost, "/api/interview/submit", map[string]interface{}{
		"interviewId": interview.ID,
		"answer":      "They are lightweight threads.",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Interview model.Interview            `json:"interview"`
		Analysis  analysis.InterviewAnalysis `json:"analysis"`
	}
	decodeBody(t, rec, &result)
	assert.True(t, result.Interview.IsCompleted)
	assert.Equal(t, 8, result.Analysis.Score)
}

func TestInterviewSubmit_UnknownInterview(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/interview/submit", map[string]interface{}{
		"interviewId": 9999,
		"answer":      "hello",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =========================================================================
// CODE, RESUME, NOTES, LEARNING, ANALYTICS
// =========================================================================

func TestCodeSubmitEndpoint(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice").User

	rec := env.do(t, http.MethodPost, "/api/code/submit", map[string]interface{}{
		"userId":       user.ID,
		"problemTitle": "Two Sum",
		"code":         "func twoSum() {}",
		"language":     "go",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/code/submissions/"+itoa(user.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var subs []model.CodeSubmission
	decodeBody(t, rec, &subs)
	assert.Len(t, subs, 1)
	assert.Equal(t, "Two Sum", subs[0].ProblemTitle)
}

func TestResumeEndpoints(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice").User

	rec := env.do(t, http.MethodPost, "/api/resume/analyze", map[string]interface{}{
		"userId":        user.ID,
		"resumeContent": "my resume",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/resume/feedback/"+itoa(user.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var feedback []model.ResumeFeedback
	decodeBody(t, rec, &feedback)
	assert.Len(t, feedback, 1)
	assert.Equal(t, "7.5/10", feedback[0].OverallScore)
}

func TestNoteEndpoints(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice").User

	rec := env.do(t, http.MethodPost, "/api/notes", map[string]interface{}{
		"userId":  user.ID,
		"title":   "Slices",
		"content": "append semantics",
		"topic":   "Go",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var note model.TechNote
	decodeBody(t, rec, &note)
	require.NotNil(t, note.AISummary)
	assert.Equal(t, "summary", *note.AISummary)

	rec = env.do(t, http.MethodPut, "/api/notes/"+itoa(note.ID), map[string]interface{}{
		"title":   "Slices v2",
		"content": "updated",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/notes/"+itoa(user.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var notes []model.TechNote
	decodeBody(t, rec, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, "Slices v2", notes[0].Title)
}

func TestNoteUpdateEndpoint_UnknownNote(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/notes/9999", map[string]interface{}{
		"title":   "t",
		"content": "c",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLearningProgressEndpoint(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice").User

	topics, err := env.store.GetLearningTopics(context.Background(), user.ID)
	require.NoError(t, err)

	rec := env.do(t, http.MethodPut, "/api/learning/progress", map[string]interface{}{
		"userId":   user.ID,
		"topicId":  topics[0].ID,
		"progress": 150,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var topic model.LearningTopic
	decodeBody(t, rec, &topic)
	assert.Equal(t, 100, topic.Progress, "progress should be clamped")
}

func TestAnalyticsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice").User

	rec := env.do(t, http.MethodGet, "/api/analytics/"+itoa(user.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalInterviews int              `json:"totalInterviews"`
		Stats           *model.UserStats `json:"stats"`
	}
	decodeBody(t, rec, &body)
	assert.Zero(t, body.TotalInterviews)
	assert.NotNil(t, body.Stats)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
