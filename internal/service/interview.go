package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sakif/astralearn/internal/analysis"
	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository"
)

// InterviewResult pairs the stored interview with the coach's analysis
// so the client can render feedback without a second fetch.
type InterviewResult struct {
	Interview *model.Interview            `json:"interview"`
	Analysis  *analysis.InterviewAnalysis `json:"analysis"`
}

// InterviewService runs the mock-interview sagas: question generation
// on start, answer analysis plus stats update on submit.
type InterviewService struct {
	interviews repository.InterviewRepository
	stats      repository.StatsRepository
	activities repository.ActivityRepository
	analyzer   analysis.Analyzer
	locks      *UserLocks
	logger     *slog.Logger
}

func NewInterviewService(
	interviews repository.InterviewRepository,
	stats repository.StatsRepository,
	activities repository.ActivityRepository,
	analyzer analysis.Analyzer,
	locks *UserLocks,
	logger *slog.Logger,
) *InterviewService {
	return &InterviewService{
		interviews: interviews,
		stats:      stats,
		activities: activities,
		analyzer:   analyzer,
		locks:      locks,
		logger:     logger,
	}
}

// Start generates a question for the topic and persists a fresh,
// incomplete interview. The analysis call happens before anything is
// written, so a failed generation leaves no half-created interview.
func (s *InterviewService) Start(ctx context.Context, userID int64, topic string) (*model.Interview, error) {
	if topic == "" {
		return nil, apperror.ValidationFailed("topic", "Topic is required")
	}

	question, err := s.analyzer.GenerateQuestion(ctx, topic)
	if err != nil {
		return nil, err
	}

	interview := &model.Interview{
		UserID:   userID,
		Question: question,
	}
	if err := s.interviews.CreateInterview(ctx, interview); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, userID, model.ActivityInterviewStarted,
		fmt.Sprintf("Started mock interview on %s", topic))

	return interview, nil
}

// Submit records the answer: the coach analyses it, the interview is
// marked complete with feedback and score, and the user's aggregate
// stats pick up one more interview plus the latest score.
func (s *InterviewService) Submit(ctx context.Context, interviewID int64, answer string) (*InterviewResult, error) {
	if answer == "" {
		return nil, apperror.ValidationFailed("answer", "Answer is required")
	}

	interview, err := s.interviews.GetInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	result, err := s.analyzer.AnalyzeInterview(ctx, interview.Question, answer)
	if err != nil {
		return nil, err
	}

	completed := true
	updated, err := s.interviews.UpdateInterview(ctx, interviewID, repository.InterviewUpdate{
		UserAnswer:  &answer,
		AIFeedback:  &result.Feedback,
		Score:       &result.Score,
		IsCompleted: &completed,
	})
	if err != nil {
		return nil, err
	}

	s.bumpStats(ctx, interview.UserID, result.Score)

	s.recordActivity(ctx, interview.UserID, model.ActivityInterviewCompleted,
		fmt.Sprintf("Mock interview completed with score %d/10", result.Score))

	return &InterviewResult{Interview: updated, Analysis: result}, nil
}

// bumpStats increments the interview counter and records the latest
// score. The per-user lock covers the read and the write together so
// concurrent submissions cannot lose an increment.
func (s *InterviewService) bumpStats(ctx context.Context, userID int64, score int) {
	lock := s.locks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.stats.GetUserStats(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load stats for interview update", "user_id", userID, "error", err)
		return
	}

	count := current.MockInterviews + 1
	aiScore := strconv.Itoa(score)
	if _, err := s.stats.UpdateUserStats(ctx, userID, repository.StatsUpdate{
		MockInterviews: &count,
		AIScore:        &aiScore,
	}); err != nil {
		s.logger.Warn("failed to update stats after interview", "user_id", userID, "error", err)
	}
}

func (s *InterviewService) recordActivity(ctx context.Context, userID int64, activityType, description string) {
	if err := s.activities.CreateActivity(ctx, &model.Activity{
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
	}); err != nil {
		s.logger.Warn("failed to record activity", "user_id", userID, "type", activityType, "error", err)
	}
}
