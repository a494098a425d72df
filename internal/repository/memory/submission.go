package memory

import (
	"context"
	"time"

	"github.com/sakif/astralearn/internal/model"
)

// GetCodeSubmissions returns the user's submissions in creation order.
func (s *Store) GetCodeSubmissions(_ context.Context, userID int64) ([]model.CodeSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submissions := s.submissions[userID]
	result := make([]model.CodeSubmission, len(submissions))
	copy(result, submissions)
	return result, nil
}

// CreateCodeSubmission appends an immutable submission record. There is
// no update path for submissions, so they never enter the id→owner
// index.
func (s *Store) CreateCodeSubmission(_ context.Context, submission *model.CodeSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	submission.ID = s.allocID()
	submission.CreatedAt = time.Now()
	s.submissions[submission.UserID] = append(s.submissions[submission.UserID], *submission)
	return nil
}

// GetResumeFeedback returns the user's resume-analysis history.
func (s *Store) GetResumeFeedback(_ context.Context, userID int64) ([]model.ResumeFeedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feedback := s.resumeFeedback[userID]
	result := make([]model.ResumeFeedback, len(feedback))
	copy(result, feedback)
	return result, nil
}

// CreateResumeFeedback appends an immutable resume-analysis record.
func (s *Store) CreateResumeFeedback(_ context.Context, feedback *model.ResumeFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	feedback.ID = s.allocID()
	feedback.CreatedAt = time.Now()
	s.resumeFeedback[feedback.UserID] = append(s.resumeFeedback[feedback.UserID], *feedback)
	return nil
}
