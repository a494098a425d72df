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

// CreateNoteRequest carries a new tech note.
type CreateNoteRequest struct {
	UserID  int64  `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Topic   string `json:"topic"`
}

// UpdateNoteRequest carries edits to an existing note.
type UpdateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteService manages tech notes and their AI summaries.
type NoteService struct {
	notes      repository.NoteRepository
	activities repository.ActivityRepository
	analyzer   analysis.Analyzer
	logger     *slog.Logger
}

func NewNoteService(
	notes repository.NoteRepository,
	activities repository.ActivityRepository,
	analyzer analysis.Analyzer,
	logger *slog.Logger,
) *NoteService {
	return &NoteService{
		notes:      notes,
		activities: activities,
		analyzer:   analyzer,
		logger:     logger,
	}
}

// Create summarises the content and stores the note with its summary.
func (s *NoteService) Create(ctx context.Context, req CreateNoteRequest) (*model.TechNote, error) {
	if err := validateNote(req.Title, req.Content); err != nil {
		return nil, err
	}
	if req.Topic == "" {
		return nil, apperror.ValidationFailed("topic", "Topic is required")
	}

	summary, err := s.analyzer.SummarizeNotes(ctx, req.Content, req.Topic)
	if err != nil {
		return nil, err
	}

	note := &model.TechNote{
		UserID:    req.UserID,
		Title:     req.Title,
		Content:   req.Content,
		Topic:     req.Topic,
		AISummary: &summary,
	}
	if err := s.notes.CreateTechNote(ctx, note); err != nil {
		return nil, err
	}

	if err := s.activities.CreateActivity(ctx, &model.Activity{
		UserID:       req.UserID,
		ActivityType: model.ActivityNoteCreated,
		Description:  fmt.Sprintf("Created note: %q", req.Title),
	}); err != nil {
		s.logger.Warn("failed to record note activity", "user_id", req.UserID, "error", err)
	}

	return note, nil
}

// Update replaces the note's title and content and regenerates the
// summary from the new content.
func (s *NoteService) Update(ctx context.Context, noteID int64, req UpdateNoteRequest) (*model.TechNote, error) {
	if err := validateNote(req.Title, req.Content); err != nil {
		return nil, err
	}

	summary, err := s.analyzer.SummarizeNotes(ctx, req.Content, req.Title)
	if err != nil {
		return nil, err
	}

	return s.notes.UpdateTechNote(ctx, noteID, repository.TechNoteUpdate{
		Title:     &req.Title,
		Content:   &req.Content,
		AISummary: &summary,
	})
}

// List returns all of the user's notes.
func (s *NoteService) List(ctx context.Context, userID int64) ([]model.TechNote, error) {
	return s.notes.GetTechNotes(ctx, userID)
}

func validateNote(title, content string) error {
	switch {
	case title == "":
		return apperror.ValidationFailed("title", "Title is required")
	case content == "":
		return apperror.ValidationFailed("content", "Content is required")
	}
	return nil
}
