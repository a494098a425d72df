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

const interviewColumns = `id, user_id, question, user_answer, ai_feedback, score, is_completed, created_at`

func scanInterview(row interface{ Scan(...any) error }) (*model.Interview, error) {
	var iv model.Interview
	err := row.Scan(&iv.ID, &iv.UserID, &iv.Question, &iv.UserAnswer, &iv.AIFeedback, &iv.Score, &iv.IsCompleted, &iv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (db *DB) GetInterviews(ctx context.Context, userID int64) ([]model.Interview, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing interviews for user %d: %w", userID, err)
	}
	defer rows.Close()

	interviews := []model.Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning interview row: %w", err)
		}
		interviews = append(interviews, *iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating interviews: %w", err)
	}
	return interviews, nil
}

// GetActiveInterview returns the newest incomplete interview, or
// (nil, nil) — absence is a normal answer, not an error.
func (db *DB) GetActiveInterview(ctx context.Context, userID int64) (*model.Interview, error) {
	iv, err := scanInterview(db.conn.QueryRowContext(ctx,
		`SELECT `+interviewColumns+` FROM interviews
		 WHERE user_id = ? AND is_completed = 0
		 ORDER BY id DESC LIMIT 1`, userID,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: getting active interview for user %d: %w", userID, err)
	}
	return iv, nil
}

func (db *DB) GetInterview(ctx context.Context, id int64) (*model.Interview, error) {
	iv, err := scanInterview(db.conn.QueryRowContext(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = ?`, id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("interview", id)
		}
		return nil, fmt.Errorf("sqlite: getting interview %d: %w", id, err)
	}
	return iv, nil
}

func (db *DB) CreateInterview(ctx context.Context, interview *model.Interview) error {
	id, err := allocID(ctx, db.conn)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	interview.ID = id
	interview.CreatedAt = time.Now()

	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO interviews (id, user_id, question, user_answer, ai_feedback, score, is_completed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		interview.ID, interview.UserID, interview.Question,
		interview.UserAnswer, interview.AIFeedback, interview.Score,
		interview.IsCompleted, interview.CreatedAt,
	); err != nil {
		return fmt.Errorf("sqlite: creating interview: %w", err)
	}
	return nil
}

// UpdateInterview merges the non-nil fields over the stored row:
// read inside a transaction, merge in Go, write back.
func (db *DB) UpdateInterview(ctx context.Context, id int64, updates repository.InterviewUpdate) (*model.Interview, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	iv, err := scanInterview(tx.QueryRowContext(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = ?`, id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("interview", id)
		}
		return nil, fmt.Errorf("sqlite: reading interview %d: %w", id, err)
	}

	if updates.UserAnswer != nil {
		iv.UserAnswer = updates.UserAnswer
	}
	if updates.AIFeedback != nil {
		iv.AIFeedback = updates.AIFeedback
	}
	if updates.Score != nil {
		iv.Score = updates.Score
	}
	if updates.IsCompleted != nil {
		iv.IsCompleted = *updates.IsCompleted
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE interviews
		 SET user_answer = ?, ai_feedback = ?, score = ?, is_completed = ?
		 WHERE id = ?`,
		iv.UserAnswer, iv.AIFeedback, iv.Score, iv.IsCompleted, id,
	); err != nil {
		return nil, fmt.Errorf("sqlite: updating interview %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing interview update: %w", err)
	}
	return iv, nil
}
