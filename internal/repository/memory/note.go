package memory

import (
	"context"
	"sort"
	"time"

	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository"
)

// GetTechNotes returns the user's notes in creation order.
func (s *Store) GetTechNotes(_ context.Context, userID int64) ([]model.TechNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := s.notes[userID]
	result := make([]model.TechNote, len(notes))
	copy(result, notes)
	return result, nil
}

// CreateTechNote appends a note to the owner's collection and registers
// it in the id→owner index (notes are editable by bare id).
func (s *Store) CreateTechNote(_ context.Context, note *model.TechNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note.ID = s.allocID()
	note.UpdatedAt = time.Now()
	s.owners[note.ID] = note.UserID
	s.notes[note.UserID] = append(s.notes[note.UserID], *note)
	return nil
}

// UpdateTechNote merges the non-nil fields of updates over the stored
// note and re-stamps UpdatedAt. Fails with apperror.NotFound when no
// note with that id exists.
func (s *Store) UpdateTechNote(_ context.Context, id int64, updates repository.TechNoteUpdate) (*model.TechNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.owners[id]
	if !ok {
		return nil, apperror.NotFound("tech note", id)
	}

	notes := s.notes[userID]
	for i := range notes {
		if notes[i].ID != id {
			continue
		}
		if updates.Title != nil {
			notes[i].Title = *updates.Title
		}
		if updates.Content != nil {
			notes[i].Content = *updates.Content
		}
		if updates.AISummary != nil {
			notes[i].AISummary = updates.AISummary
		}
		notes[i].UpdatedAt = time.Now()
		result := notes[i]
		return &result, nil
	}
	return nil, apperror.NotFound("tech note", id)
}

// GetRecentActivities returns at most limit ledger entries, newest
// first. Entries created in the same nanosecond (possible in tests) are
// tie-broken by descending id, which still means newest-first because
// the shared counter only moves forward.
func (s *Store) GetRecentActivities(_ context.Context, userID int64, limit int) ([]model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	activities := s.activities[userID]
	result := make([]model.Activity, len(activities))
	copy(result, activities)

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CreateActivity appends one ledger entry. The ledger is append-only:
// no update or delete exists anywhere in the store.
func (s *Store) CreateActivity(_ context.Context, activity *model.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity.ID = s.allocID()
	activity.CreatedAt = time.Now()
	s.activities[activity.UserID] = append(s.activities[activity.UserID], *activity)
	return nil
}
