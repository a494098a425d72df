package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sakif/astralearn/internal/analysis"
	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository/memory"
)

func newTestInterviewService(store *memory.Store, analyzer analysis.Analyzer) *InterviewService {
	return NewInterviewService(store, store, store, analyzer, NewUserLocks(), testLogger())
}

// =========================================================================
// START TESTS
// =========================================================================

func TestInterviewStart_CreatesActiveInterview(t *testing.T) {
	store := memory.New()
	authSvc := newTestAuthService(t, store)
	user := registerTestUser(t, authSvc, "alice").User

	svc := newTestInterviewService(store, &mockAnalyzer{
		generateQuestionFn: func(ctx context.Context, topic string) (string, error) {
			return "Explain " + topic + " in depth.", nil
		},
	})

	iv, err := svc.Start(context.Background(), user.ID, "concurrency")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if iv.Question != "Explain concurrency in depth." {
		t.Errorf("Question = %q", iv.Question)
	}
	if iv.IsCompleted || iv.UserAnswer != nil || iv.Score != nil {
		t.Errorf("fresh interview should be incomplete and unanswered: %+v", iv)
	}

	active, err := store.GetActiveInterview(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetActiveInterview() error = %v", err)
	}
	if active == nil || active.ID != iv.ID {
		t.Errorf("active interview = %+v, want %d", active, iv.ID)
	}
}

func TestInterviewStart_AnalysisFailureCreatesNothing(t *testing.T) {
	store := memory.New()
	authSvc := newTestAuthService(t, store)
	user := registerTestUser(t, authSvc, "alice").User

	svc := newTestInterviewService(store, &mockAnalyzer{
		generateQuestionFn: func(ctx context.Context, topic string) (string, error) {
			return "", apperror.Analysis("generate interview question", errors.New("api down"))
		},
	})

	_, err := svc.Start(context.Background(), user.ID, "concurrency")
	if !errors.Is(err, apperror.ErrAnalysis) {
		t.Fatalf("error = %v, want ErrAnalysis", err)
	}

	// The failed call must not have left a half-created interview.
	active, _ := store.GetActiveInterview(context.Background(), user.ID)
	if active != nil {
		t.Errorf("unexpected active interview after failed start: %+v", active)
	}
	interviews, _ := store.GetInterviews(context.Background(), user.ID)
	if len(interviews) != 0 {
		t.Errorf("got %d interviews, want 0", len(interviews))
	}
}

func TestInterviewStart_EmptyTopic(t *testing.T) {
	store := memory.New()
	svc := newTestInterviewService(store, &mockAnalyzer{})

	_, err := svc.Start(context.Background(), 1, "")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// =========================================================================
// SUBMIT TESTS
// =========================================================================

func TestInterviewSubmit_CompletesAndUpdatesStats(t *testing.T) {
	store := memory.New()
	authSvc := newTestAuthService(t, store)
	user := registerTestUser(t, authSvc, "alice").User

	svc := newTestInterviewService(store, &mockAnalyzer{
		analyzeInterviewFn: func(ctx context.Context, question, answer string) (*analysis.InterviewAnalysis, error) {
			return &analysis.InterviewAnalysis{
				Feedback:    "Strong answer",
				Score:       8,
				Suggestions: []string{"mention select"},
			}, nil
		},
	})

	iv, err := svc.Start(context.Background(), user.ID, "channels")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	res, err := svc.Submit(context.Background(), iv.ID, "Channels synchronise goroutines.")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if !res.Interview.IsCompleted {
		t.Error("interview not marked completed")
	}
	if res.Interview.Score == nil || *res.Interview.Score != 8 {
		t.Errorf("Score = %v, want 8", res.Interview.Score)
	}
	if res.Interview.AIFeedback == nil || *res.Interview.AIFeedback != "Strong answer" {
		t.Errorf("AIFeedback = %v", res.Interview.AIFeedback)
	}

	stats, err := store.GetUserStats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserStats() error = %v", err)
	}
	if stats.MockInterviews != 1 {
		t.Errorf("MockInterviews = %d, want 1", stats.MockInterviews)
	}
	if stats.AIScore != "8" {
		t.Errorf("AIScore = %q, want %q", stats.AIScore, "8")
	}

	// Ledger carries both the start and the completion.
	activities, _ := store.GetRecentActivities(context.Background(), user.ID, 10)
	if activities[0].ActivityType != model.ActivityInterviewCompleted {
		t.Errorf("latest activity = %q, want interview_completed", activities[0].ActivityType)
	}
	if activities[0].Description != "Mock interview completed with score 8/10" {
		t.Errorf("description = %q", activities[0].Description)
	}
}

func TestInterviewSubmit_UnknownInterview(t *testing.T) {
	store := memory.New()
	svc := newTestInterviewService(store, &mockAnalyzer{})

	_, err := svc.Submit(context.Background(), 9999, "an answer")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestInterviewSubmit_AnalysisFailureLeavesInterviewOpen(t *testing.T) {
	store := memory.New()
	authSvc := newTestAuthService(t, store)
	user := registerTestUser(t, authSvc, "alice").User

	svc := newTestInterviewService(store, &mockAnalyzer{
		analyzeInterviewFn: func(ctx context.Context, question, answer string) (*analysis.InterviewAnalysis, error) {
			return nil, apperror.Analysis("analyze interview", errors.New("api down"))
		},
	})

	iv, _ := svc.Start(context.Background(), user.ID, "channels")

	_, err := svc.Submit(context.Background(), iv.ID, "an answer")
	if !errors.Is(err, apperror.ErrAnalysis) {
		t.Fatalf("error = %v, want ErrAnalysis", err)
	}

	// Nothing was written: the interview is still active, stats untouched.
	active, _ := store.GetActiveInterview(context.Background(), user.ID)
	if active == nil || active.ID != iv.ID {
		t.Error("interview should still be active after failed analysis")
	}
	stats, _ := store.GetUserStats(context.Background(), user.ID)
	if stats.MockInterviews != 0 {
		t.Errorf("MockInterviews = %d, want 0", stats.MockInterviews)
	}
}

// Concurrent submissions must not lose stats increments: the counter is
// a read-modify-write spanning two repository calls.
func TestInterviewSubmit_ConcurrentIncrements(t *testing.T) {
	store := memory.New()
	authSvc := newTestAuthService(t, store)
	user := registerTestUser(t, authSvc, "alice").User

	svc := newTestInterviewService(store, &mockAnalyzer{})

	const n = 20
	ids := make([]int64, n)
	for i := range ids {
		iv, err := svc.Start(context.Background(), user.ID, fmt.Sprintf("topic-%d", i))
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		ids[i] = iv.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if _, err := svc.Submit(context.Background(), id, "answer"); err != nil {
				t.Errorf("Submit(%d) error = %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	stats, err := store.GetUserStats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserStats() error = %v", err)
	}
	if stats.MockInterviews != n {
		t.Errorf("MockInterviews = %d, want %d (lost increments)", stats.MockInterviews, n)
	}
}
