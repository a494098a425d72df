package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository"
)

// Analytics summarises a user's progress across interviews, code
// submissions and recent activity. Averages are computed over all
// records, with missing scores counted as zero.
type Analytics struct {
	TotalInterviews     int              `json:"totalInterviews"`
	CompletedInterviews int              `json:"completedInterviews"`
	AverageScore        float64          `json:"averageScore"`
	TotalSubmissions    int              `json:"totalSubmissions"`
	CorrectSubmissions  int              `json:"correctSubmissions"`
	AverageEfficiency   float64          `json:"averageEfficiency"`
	WeeklyActivity      int              `json:"weeklyActivity"`
	Stats               *model.UserStats `json:"stats"`
}

// AnalyticsService computes the analytics view from raw records.
type AnalyticsService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewAnalyticsService(store repository.Store, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, logger: logger}
}

// Get computes analytics for a user. WeeklyActivity counts ledger
// entries from the last 7 days, sampled from the 30 most recent.
func (s *AnalyticsService) Get(ctx context.Context, userID int64) (*Analytics, error) {
	stats, err := s.store.GetUserStats(ctx, userID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	interviews, err := s.store.GetInterviews(ctx, userID)
	if err != nil {
		return nil, err
	}

	submissions, err := s.store.GetCodeSubmissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	activities, err := s.store.GetRecentActivities(ctx, userID, 30)
	if err != nil {
		return nil, err
	}

	a := &Analytics{
		TotalInterviews:  len(interviews),
		TotalSubmissions: len(submissions),
		Stats:            stats,
	}

	var scoreSum int
	for _, iv := range interviews {
		if iv.IsCompleted {
			a.CompletedInterviews++
		}
		if iv.Score != nil {
			scoreSum += *iv.Score
		}
	}
	if len(interviews) > 0 {
		a.AverageScore = float64(scoreSum) / float64(len(interviews))
	}

	var efficiencySum int
	for _, sub := range submissions {
		if sub.IsCorrect {
			a.CorrectSubmissions++
		}
		if sub.EfficiencyScore != nil {
			efficiencySum += *sub.EfficiencyScore
		}
	}
	if len(submissions) > 0 {
		a.AverageEfficiency = float64(efficiencySum) / float64(len(submissions))
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	for _, act := range activities {
		if act.CreatedAt.After(weekAgo) {
			a.WeeklyActivity++
		}
	}

	return a, nil
}
