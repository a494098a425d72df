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

// ResumeResult pairs the stored feedback record with the analysis.
type ResumeResult struct {
	Feedback *model.ResumeFeedback    `json:"feedback"`
	Analysis *analysis.ResumeAnalysis `json:"analysis"`
}

// ResumeService runs the resume-review saga and serves past feedback.
type ResumeService struct {
	resumes    repository.ResumeRepository
	activities repository.ActivityRepository
	analyzer   analysis.Analyzer
	logger     *slog.Logger
}

func NewResumeService(
	resumes repository.ResumeRepository,
	activities repository.ActivityRepository,
	analyzer analysis.Analyzer,
	logger *slog.Logger,
) *ResumeService {
	return &ResumeService{
		resumes:    resumes,
		activities: activities,
		analyzer:   analyzer,
		logger:     logger,
	}
}

// Analyze reviews the resume and stores a permanent feedback record.
func (s *ResumeService) Analyze(ctx context.Context, userID int64, resumeContent string) (*ResumeResult, error) {
	if resumeContent == "" {
		return nil, apperror.ValidationFailed("resumeContent", "Resume content is required")
	}

	result, err := s.analyzer.AnalyzeResume(ctx, resumeContent)
	if err != nil {
		return nil, err
	}

	feedback := &model.ResumeFeedback{
		UserID:        userID,
		ResumeContent: resumeContent,
		AIFeedback:    result.Feedback,
		OverallScore:  result.OverallScore,
	}
	if err := s.resumes.CreateResumeFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	if err := s.activities.CreateActivity(ctx, &model.Activity{
		UserID:       userID,
		ActivityType: model.ActivityResumeAnalyzed,
		Description:  fmt.Sprintf("Resume analyzed with score %s", result.OverallScore),
	}); err != nil {
		s.logger.Warn("failed to record resume activity", "user_id", userID, "error", err)
	}

	return &ResumeResult{Feedback: feedback, Analysis: result}, nil
}

// Feedback returns every past resume review for the user.
func (s *ResumeService) Feedback(ctx context.Context, userID int64) ([]model.ResumeFeedback, error) {
	return s.resumes.GetResumeFeedback(ctx, userID)
}
