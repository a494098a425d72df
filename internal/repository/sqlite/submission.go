package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sakif/astralearn/internal/model"
)

func (db *DB) GetCodeSubmissions(ctx context.Context, userID int64) ([]model.CodeSubmission, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, problem_title, code, language, ai_suggestions, efficiency_score, is_correct, created_at
		 FROM code_submissions WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing submissions for user %d: %w", userID, err)
	}
	defer rows.Close()

	submissions := []model.CodeSubmission{}
	for rows.Next() {
		var sub model.CodeSubmission
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.ProblemTitle, &sub.Code, &sub.Language,
			&sub.AISuggestions, &sub.EfficiencyScore, &sub.IsCorrect, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning submission row: %w", err)
		}
		submissions = append(submissions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating submissions: %w", err)
	}
	return submissions, nil
}

func (db *DB) CreateCodeSubmission(ctx context.Context, submission *model.CodeSubmission) error {
	id, err := allocID(ctx, db.conn)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	submission.ID = id
	submission.CreatedAt = time.Now()

	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO code_submissions (id, user_id, problem_title, code, language, ai_suggestions, efficiency_score, is_correct, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		submission.ID, submission.UserID, submission.ProblemTitle, submission.Code, submission.Language,
		submission.AISuggestions, submission.EfficiencyScore, submission.IsCorrect, submission.CreatedAt,
	); err != nil {
		return fmt.Errorf("sqlite: creating submission: %w", err)
	}
	return nil
}

func (db *DB) GetResumeFeedback(ctx context.Context, userID int64) ([]model.ResumeFeedback, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, resume_content, ai_feedback, overall_score, created_at
		 FROM resume_feedback WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing resume feedback for user %d: %w", userID, err)
	}
	defer rows.Close()

	feedback := []model.ResumeFeedback{}
	for rows.Next() {
		var fb model.ResumeFeedback
		var comments string
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.ResumeContent, &comments, &fb.OverallScore, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning resume feedback row: %w", err)
		}
		if err := json.Unmarshal([]byte(comments), &fb.AIFeedback); err != nil {
			return nil, fmt.Errorf("sqlite: decoding resume comments for row %d: %w", fb.ID, err)
		}
		feedback = append(feedback, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating resume feedback: %w", err)
	}
	return feedback, nil
}

// CreateResumeFeedback stores the structured comments block as a JSON
// text column — the shape is opaque to SQL, only ever read back whole.
func (db *DB) CreateResumeFeedback(ctx context.Context, feedback *model.ResumeFeedback) error {
	id, err := allocID(ctx, db.conn)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	feedback.ID = id
	feedback.CreatedAt = time.Now()

	comments, err := json.Marshal(feedback.AIFeedback)
	if err != nil {
		return fmt.Errorf("sqlite: encoding resume comments: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO resume_feedback (id, user_id, resume_content, ai_feedback, overall_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		feedback.ID, feedback.UserID, feedback.ResumeContent, string(comments), feedback.OverallScore, feedback.CreatedAt,
	); err != nil {
		return fmt.Errorf("sqlite: creating resume feedback: %w", err)
	}
	return nil
}
