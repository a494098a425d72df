package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository"
)

func (db *DB) GetTechNotes(ctx context.Context, userID int64) ([]model.TechNote, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, title, content, topic, ai_summary, updated_at
		 FROM tech_notes WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notes for user %d: %w", userID, err)
	}
	defer rows.Close()

	notes := []model.TechNote{}
	for rows.Next() {
		var note model.TechNote
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.Topic, &note.AISummary, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning note row: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating notes: %w", err)
	}
	return notes, nil
}

func (db *DB) CreateTechNote(ctx context.Context, note *model.TechNote) error {
	id, err := allocID(ctx, db.conn)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	note.ID = id
	note.UpdatedAt = time.Now()

	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO tech_notes (id, user_id, title, content, topic, ai_summary, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.UserID, note.Title, note.Content, note.Topic, note.AISummary, note.UpdatedAt,
	); err != nil {
		return fmt.Errorf("sqlite: creating note: %w", err)
	}
	return nil
}

// UpdateTechNote merges the non-nil fields over the stored note and
// re-stamps updated_at.
func (db *DB) UpdateTechNote(ctx context.Context, id int64, updates repository.TechNoteUpdate) (*model.TechNote, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var note model.TechNote
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, topic, ai_summary, updated_at
		 FROM tech_notes WHERE id = ?`, id,
	).Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.Topic, &note.AISummary, &note.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("tech note", id)
		}
		return nil, fmt.Errorf("sqlite: reading note %d: %w", id, err)
	}

	if updates.Title != nil {
		note.Title = *updates.Title
	}
	if updates.Content != nil {
		note.Content = *updates.Content
	}
	if updates.AISummary != nil {
		note.AISummary = updates.AISummary
	}
	note.UpdatedAt = time.Now()

	if _, err := tx.ExecContext(ctx,
		`UPDATE tech_notes SET title = ?, content = ?, ai_summary = ?, updated_at = ? WHERE id = ?`,
		note.Title, note.Content, note.AISummary, note.UpdatedAt, id,
	); err != nil {
		return nil, fmt.Errorf("sqlite: updating note %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing note update: %w", err)
	}
	return &note, nil
}

// GetRecentActivities returns at most limit entries, newest first
// (created_at descending, id descending as the tie-break).
func (db *DB) GetRecentActivities(ctx context.Context, userID int64, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, activity_type, description, created_at
		 FROM activities WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing activities for user %d: %w", userID, err)
	}
	defer rows.Close()

	activities := []model.Activity{}
	for rows.Next() {
		var activity model.Activity
		if err := rows.Scan(&activity.ID, &activity.UserID, &activity.ActivityType, &activity.Description, &activity.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning activity row: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating activities: %w", err)
	}
	return activities, nil
}

func (db *DB) CreateActivity(ctx context.Context, activity *model.Activity) error {
	id, err := allocID(ctx, db.conn)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	activity.ID = id
	activity.CreatedAt = time.Now()

	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO activities (id, user_id, activity_type, description, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		activity.ID, activity.UserID, activity.ActivityType, activity.Description, activity.CreatedAt,
	); err != nil {
		return fmt.Errorf("sqlite: creating activity: %w", err)
	}
	return nil
}
