package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/sakif/astralearn/internal/analysis"
	"github.com/sakif/astralearn/internal/auth"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository/memory"
)

// =========================================================================
// SHARED TEST FIXTURES
// =========================================================================

// mockAnalyzer lets each test script the AI responses. Unset functions
// return canned defaults so tests only stub what they assert on.
type mockAnalyzer struct {
	generateQuestionFn func(ctx context.Context, topic string) (string, error)
	analyzeInterviewFn func(ctx context.Context, question, answer string) (*analysis.InterviewAnalysis, error)
	analyzeCodeFn      func(ctx context.Context, code, language, problemTitle string) (*analysis.CodeAnalysis, error)
	analyzeResumeFn    func(ctx context.Context, resumeContent string) (*analysis.ResumeAnalysis, error)
	summarizeNotesFn   func(ctx context.Context, content, topic string) (string, error)
}

func (m *mockAnalyzer) GenerateQuestion(ctx context.Context, topic string) (string, error) {
	if m.generateQuestionFn != nil {
		return m.generateQuestionFn(ctx, topic)
	}
	return "What is a goroutine?", nil
}

func (m *mockAnalyzer) AnalyzeInterview(ctx context.Context, question, answer string) (*analysis.InterviewAnalysis, error) {
	if m.analyzeInterviewFn != nil {
		return m.analyzeInterviewFn(ctx, question, answer)
	}
	return &analysis.InterviewAnalysis{Feedback: "Good answer", Score: 7, Suggestions: []string{}}, nil
}

func (m *mockAnalyzer) AnalyzeCode(ctx context.Context, code, language, problemTitle string) (*analysis.CodeAnalysis, error) {
	if m.analyzeCodeFn != nil {
		return m.analyzeCodeFn(ctx, code, language, problemTitle)
	}
	return &analysis.CodeAnalysis{
		Suggestions:     "Looks fine",
		EfficiencyScore: 6,
		IsCorrect:       true,
		Improvements:    []string{},
	}, nil
}

func (m *mockAnalyzer) AnalyzeResume(ctx context.Context, resumeContent string) (*analysis.ResumeAnalysis, error) {
	if m.analyzeResumeFn != nil {
		return m.analyzeResumeFn(ctx, resumeContent)
	}
	return &analysis.ResumeAnalysis{
		OverallScore: "7.5/10",
		Feedback: model.ResumeComments{
			Strengths:   []string{"clear"},
			Weaknesses:  []string{},
			Suggestions: []string{},
		},
	}, nil
}

func (m *mockAnalyzer) SummarizeNotes(ctx context.Context, content, topic string) (string, error) {
	if m.summarizeNotesFn != nil {
		return m.summarizeNotesFn(ctx, content, topic)
	}
	return "summary of " + topic, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestAuthService wires an AuthService against a fresh in-memory
// store with fast bcrypt and a fixed JWT secret.
func newTestAuthService(t *testing.T, store *memory.Store) *AuthService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return NewAuthService(store, store, auth.NewPasswordServiceForTest(4), tokens, testLogger())
}

// registerTestUser registers a user through the real service so the
// cascade (stats, topics, welcome activity) runs exactly as in prod.
func registerTestUser(t *testing.T, svc *AuthService, username string) *AuthResult {
	t.Helper()
	res, err := svc.Register(context.Background(), RegisterRequest{
		Username:  username,
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
	})
	if err != nil {
		t.Fatalf("Register(%q) error = %v", username, err)
	}
	return res
}
