package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository"
)

// LearningService tracks per-topic progress.
type LearningService struct {
	topics     repository.TopicRepository
	activities repository.ActivityRepository
	logger     *slog.Logger
}

func NewLearningService(
	topics repository.TopicRepository,
	activities repository.ActivityRepository,
	logger *slog.Logger,
) *LearningService {
	return &LearningService{topics: topics, activities: activities, logger: logger}
}

// UpdateProgress sets a topic's completion percentage, clamped to
// [0, 100], and records the change in the activity ledger.
func (s *LearningService) UpdateProgress(ctx context.Context, userID, topicID int64, progress int) (*model.LearningTopic, error) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	topic, err := s.topics.UpdateLearningTopic(ctx, topicID, progress)
	if err != nil {
		return nil, err
	}

	if err := s.activities.CreateActivity(ctx, &model.Activity{
		UserID:       userID,
		ActivityType: model.ActivityProgressUpdated,
		Description:  fmt.Sprintf("Updated progress in %s to %d%%", topic.TopicName, progress),
	}); err != nil {
		s.logger.Warn("failed to record progress activity", "user_id", userID, "error", err)
	}

	return topic, nil
}
