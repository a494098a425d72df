package memory

import (
	"context"
	"time"

	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository"
)

// GetInterviews returns every interview belonging to the user, in
// creation order. Unknown users yield an empty slice.
func (s *Store) GetInterviews(_ context.Context, userID int64) ([]model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	interviews := s.interviews[userID]
	result := make([]model.Interview, len(interviews))
	copy(result, interviews)
	return result, nil
}

// GetActiveInterview returns the most recently created incomplete
// interview, or (nil, nil) when the user has none in flight. The store
// allows several incomplete interviews to coexist; "active" is simply
// the newest of them.
func (s *Store) GetActiveInterview(_ context.Context, userID int64) (*model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	interviews := s.interviews[userID]
	for i := len(interviews) - 1; i >= 0; i-- {
		if !interviews[i].IsCompleted {
			result := interviews[i]
			return &result, nil
		}
	}
	return nil, nil
}

// GetInterview looks an interview up by its own id, without the caller
// knowing the owner.
func (s *Store) GetInterview(_ context.Context, id int64) (*model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	interview := s.findInterview(id)
	if interview == nil {
		return nil, apperror.NotFound("interview", id)
	}
	result := *interview
	return &result, nil
}

// findInterview returns a pointer into the owner's slice, or nil.
// Callers must hold s.mu.
func (s *Store) findInterview(id int64) *model.Interview {
	userID, ok := s.owners[id]
	if !ok {
		return nil
	}
	interviews := s.interviews[userID]
	for i := range interviews {
		if interviews[i].ID == id {
			return &interviews[i]
		}
	}
	return nil
}

// CreateInterview appends a new interview to the owner's collection and
// registers it in the id→owner index.
func (s *Store) CreateInterview(_ context.Context, interview *model.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	interview.ID = s.allocID()
	interview.CreatedAt = time.Now()
	s.owners[interview.ID] = interview.UserID
	s.interviews[interview.UserID] = append(s.interviews[interview.UserID], *interview)
	return nil
}

// UpdateInterview merges the non-nil fields of updates over the stored
// interview, addressed by bare id. Fails with apperror.NotFound when no
// interview with that id exists anywhere.
func (s *Store) UpdateInterview(_ context.Context, id int64, updates repository.InterviewUpdate) (*model.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	interview := s.findInterview(id)
	if interview == nil {
		return nil, apperror.NotFound("interview", id)
	}

	if updates.UserAnswer != nil {
		interview.UserAnswer = updates.UserAnswer
	}
	if updates.AIFeedback != nil {
		interview.AIFeedback = updates.AIFeedback
	}
	if updates.Score != nil {
		interview.Score = updates.Score
	}
	if updates.IsCompleted != nil {
		interview.IsCompleted = *updates.IsCompleted
	}

	result := *interview
	return &result, nil
}
