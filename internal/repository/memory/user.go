package memory

import (
	"context"
	"time"

	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository"
)

// defaultTopics are seeded for every new user, all at 0% progress.
var defaultTopics = []string{"Data Structures", "Algorithms", "System Design"}

// CreateUser inserts a new user and cascades: a zeroed stats row and the
// three default learning topics are created in the same critical
// section, so no caller can ever observe a user without them.
//
// Uniqueness of username and email is enforced here, not just in the
// route layer — the store is the component that owns the invariant.
func (s *Store) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return apperror.Conflict("username", "Username already exists")
		}
		if existing.Email == user.Email {
			return apperror.Conflict("email", "Email already exists")
		}
	}

	user.ID = s.allocID()
	user.CreatedAt = time.Now()

	stored := *user
	s.users[user.ID] = &stored

	s.stats[user.ID] = &model.UserStats{
		ID:             s.allocID(),
		UserID:         user.ID,
		LearningStreak: 0,
		MockInterviews: 0,
		CodeChallenges: 0,
		AIScore:        "0.0",
		UpdatedAt:      time.Now(),
	}

	topics := make([]model.LearningTopic, 0, len(defaultTopics))
	for _, name := range defaultTopics {
		topic := model.LearningTopic{
			ID:        s.allocID(),
			UserID:    user.ID,
			TopicName: name,
			Progress:  0,
			UpdatedAt: time.Now(),
		}
		s.owners[topic.ID] = user.ID
		topics = append(topics, topic)
	}
	s.topics[user.ID] = topics

	return nil
}

// GetUser returns the user with the given id, or apperror.NotFound.
func (s *Store) GetUser(_ context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

// GetUserByUsername scans all users for a username match. Linear, but
// the user set is small and the scan runs entirely under one read lock.
func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			result := *user
			return &result, nil
		}
	}
	return nil, &apperror.AppError{
		Err:     apperror.ErrNotFound,
		Message: "user not found with username " + username,
	}
}

// GetUserStats returns the user's stats row, or apperror.NotFound when
// no row exists (which the CreateUser cascade should make impossible).
func (s *Store) GetUserStats(_ context.Context, userID int64) (*model.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.stats[userID]
	if !ok {
		return nil, apperror.NotFound("user stats", userID)
	}
	result := *stats
	return &result, nil
}

// UpdateUserStats merges the non-nil fields of updates over the stored
// row and re-stamps UpdatedAt. The tracker performs no arithmetic —
// callers supply the already-incremented values.
func (s *Store) UpdateUserStats(_ context.Context, userID int64, updates repository.StatsUpdate) (*model.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, ok := s.stats[userID]
	if !ok {
		return nil, apperror.NotFound("user stats", userID)
	}

	if updates.LearningStreak != nil {
		stats.LearningStreak = *updates.LearningStreak
	}
	if updates.MockInterviews != nil {
		stats.MockInterviews = *updates.MockInterviews
	}
	if updates.CodeChallenges != nil {
		stats.CodeChallenges = *updates.CodeChallenges
	}
	if updates.AIScore != nil {
		stats.AIScore = *updates.AIScore
	}
	stats.UpdatedAt = time.Now()

	result := *stats
	return &result, nil
}

// GetLearningTopics returns the user's topics. A user with no topics
// (or an unknown user) yields an empty slice, never an error.
func (s *Store) GetLearningTopics(_ context.Context, userID int64) ([]model.LearningTopic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topics := s.topics[userID]
	result := make([]model.LearningTopic, len(topics))
	copy(result, topics)
	return result, nil
}

// CreateLearningTopic appends a topic to the owner's collection.
func (s *Store) CreateLearningTopic(_ context.Context, topic *model.LearningTopic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	topic.ID = s.allocID()
	topic.UpdatedAt = time.Now()
	s.owners[topic.ID] = topic.UserID
	s.topics[topic.UserID] = append(s.topics[topic.UserID], *topic)
	return nil
}

// UpdateLearningTopic sets a topic's progress by bare topic id, using
// the id→owner index to find the owning collection.
func (s *Store) UpdateLearningTopic(_ context.Context, id int64, progress int) (*model.LearningTopic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.owners[id]
	if !ok {
		return nil, apperror.NotFound("learning topic", id)
	}

	topics := s.topics[userID]
	for i := range topics {
		if topics[i].ID == id {
			topics[i].Progress = progress
			topics[i].UpdatedAt = time.Now()
			result := topics[i]
			return &result, nil
		}
	}
	return nil, apperror.NotFound("learning topic", id)
}
