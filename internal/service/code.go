package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/astralearn/internal/analysis"
	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository"
)

// SubmitCodeRequest carries a code submission for review.
type SubmitCodeRequest struct {
	UserID       int64  `json:"userId"`
	ProblemTitle string `json:"problemTitle"`
	Code         string `json:"code"`
	Language     string `json:"language"`
}

// CodeResult pairs the stored submission with the reviewer's analysis.
type CodeResult struct {
	Submission *model.CodeSubmission  `json:"submission"`
	Analysis   *analysis.CodeAnalysis `json:"analysis"`
}

// CodeService runs the code-review saga and serves submission history.
type CodeService struct {
	submissions repository.SubmissionRepository
	stats       repository.StatsRepository
	activities  repository.ActivityRepository
	analyzer    analysis.Analyzer
	locks       *UserLocks
	logger      *slog.Logger
}

func NewCodeService(
	submissions repository.SubmissionRepository,
	stats repository.StatsRepository,
	activities repository.ActivityRepository,
	analyzer analysis.Analyzer,
	locks *UserLocks,
	logger *slog.Logger,
) *CodeService {
	return &CodeService{
		submissions: submissions,
		stats:       stats,
		activities:  activities,
		analyzer:    analyzer,
		locks:       locks,
		logger:      logger,
	}
}

// Submit reviews the code and persists the submission with the verdict
// baked in. Only a correct solution bumps the challenge counter, but an
// activity is recorded either way.
func (s *CodeService) Submit(ctx context.Context, req SubmitCodeRequest) (*CodeResult, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	result, err := s.analyzer.AnalyzeCode(ctx, req.Code, req.Language, req.ProblemTitle)
	if err != nil {
		return nil, err
	}

	submission := &model.CodeSubmission{
		UserID:          req.UserID,
		ProblemTitle:    req.ProblemTitle,
		Code:            req.Code,
		Language:        req.Language,
		AISuggestions:   &result.Suggestions,
		EfficiencyScore: &result.EfficiencyScore,
		IsCorrect:       result.IsCorrect,
	}
	if err := s.submissions.CreateCodeSubmission(ctx, submission); err != nil {
		return nil, err
	}

	if result.IsCorrect {
		s.bumpChallenges(ctx, req.UserID)
	}

	if err := s.activities.CreateActivity(ctx, &model.Activity{
		UserID:       req.UserID,
		ActivityType: model.ActivityCodeSubmitted,
		Description:  fmt.Sprintf("Solved %q challenge", req.ProblemTitle),
	}); err != nil {
		s.logger.Warn("failed to record code activity", "user_id", req.UserID, "error", err)
	}

	return &CodeResult{Submission: submission, Analysis: result}, nil
}

// Submissions returns the user's full submission history.
func (s *CodeService) Submissions(ctx context.Context, userID int64) ([]model.CodeSubmission, error) {
	return s.submissions.GetCodeSubmissions(ctx, userID)
}

func (s *CodeService) bumpChallenges(ctx context.Context, userID int64) {
	lock := s.locks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.stats.GetUserStats(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load stats for challenge update", "user_id", userID, "error", err)
		return
	}

	count := current.CodeChallenges + 1
	if _, err := s.stats.UpdateUserStats(ctx, userID, repository.StatsUpdate{
		CodeChallenges: &count,
	}); err != nil {
		s.logger.Warn("failed to update stats after submission", "user_id", userID, "error", err)
	}
}

func validateSubmission(req SubmitCodeRequest) error {
	switch {
	case req.ProblemTitle == "":
		return apperror.ValidationFailed("problemTitle", "Problem title is required")
	case req.Code == "":
		return apperror.ValidationFailed("code", "Code is required")
	case req.Language == "":
		return apperror.ValidationFailed("language", "Language is required")
	}
	return nil
}
