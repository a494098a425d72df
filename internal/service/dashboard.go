package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository"
)

// Dashboard aggregates everything the landing view needs in one shape.
// ActiveInterview is nil when no interview is awaiting an answer.
type Dashboard struct {
	User             *model.User           `json:"user"`
	Stats            *model.UserStats      `json:"stats"`
	LearningTopics   []model.LearningTopic `json:"learningTopics"`
	RecentActivities []model.Activity      `json:"recentActivities"`
	ActiveInterview  *model.Interview      `json:"activeInterview"`
}

// DashboardService assembles the aggregated dashboard view.
type DashboardService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewDashboardService(store repository.Store, logger *slog.Logger) *DashboardService {
	return &DashboardService{store: store, logger: logger}
}

// Get builds the dashboard for a user. An unknown user is an error;
// missing sub-resources degrade to empty values so a user whose stats
// row somehow vanished still gets a dashboard.
func (s *DashboardService) Get(ctx context.Context, userID int64) (*Dashboard, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		User:             user,
		LearningTopics:   []model.LearningTopic{},
		RecentActivities: []model.Activity{},
	}

	stats, err := s.store.GetUserStats(ctx, userID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	dash.Stats = stats

	if topics, err := s.store.GetLearningTopics(ctx, userID); err == nil {
		dash.LearningTopics = topics
	} else {
		s.logger.Warn("failed to load learning topics", "user_id", userID, "error", err)
	}

	if activities, err := s.store.GetRecentActivities(ctx, userID, 5); err == nil {
		dash.RecentActivities = activities
	} else {
		s.logger.Warn("failed to load recent activities", "user_id", userID, "error", err)
	}

	active, err := s.store.GetActiveInterview(ctx, userID)
	if err != nil {
		return nil, err
	}
	dash.ActiveInterview = active

	return dash, nil
}
