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

// Compile-time check that *DB implements the full Store surface.
var _ repository.Store = (*DB)(nil)

var defaultTopics = []string{"Data Structures", "Algorithms", "System Design"}

// CreateUser inserts the user and cascades the stats row plus the three
// default learning topics, all inside one transaction — either the
// whole lifecycle exists afterwards, or none of it does.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Uniqueness pre-checks so the caller gets a Conflict it can map to
	// a status code, not a raw constraint error.
	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, user.Username,
	).Scan(&count); err != nil {
		return fmt.Errorf("sqlite: checking username: %w", err)
	}
	if count > 0 {
		return apperror.Conflict("username", "Username already exists")
	}
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, user.Email,
	).Scan(&count); err != nil {
		return fmt.Errorf("sqlite: checking email: %w", err)
	}
	if count > 0 {
		return apperror.Conflict("email", "Email already exists")
	}

	if user.ID, err = allocID(ctx, tx); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	user.CreatedAt = time.Now()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, username, password, first_name, last_name, email, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Password, user.FirstName, user.LastName, user.Email, user.CreatedAt,
	); err != nil {
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	statsID, err := allocID(ctx, tx)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_stats (id, user_id, learning_streak, mock_interviews, code_challenges, ai_score, updated_at)
		 VALUES (?, ?, 0, 0, 0, '0.0', ?)`,
		statsID, user.ID, time.Now(),
	); err != nil {
		return fmt.Errorf("sqlite: creating user stats: %w", err)
	}

	for _, name := range defaultTopics {
		topicID, err := allocID(ctx, tx)
		if err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO learning_topics (id, user_id, topic_name, progress, updated_at)
			 VALUES (?, ?, ?, 0, ?)`,
			topicID, user.ID, name, time.Now(),
		); err != nil {
			return fmt.Errorf("sqlite: seeding topic %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing user creation: %w", err)
	}
	return nil
}

func (db *DB) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password, first_name, last_name, email, created_at
		 FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Username, &user.Password, &user.FirstName, &user.LastName, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return &user, nil
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password, first_name, last_name, email, created_at
		 FROM users WHERE username = ?`, username,
	).Scan(&user.ID, &user.Username, &user.Password, &user.FirstName, &user.LastName, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: "user not found with username " + username,
			}
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}
	return &user, nil
}

func (db *DB) GetUserStats(ctx context.Context, userID int64) (*model.UserStats, error) {
	var stats model.UserStats
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, learning_streak, mock_interviews, code_challenges, ai_score, updated_at
		 FROM user_stats WHERE user_id = ?`, userID,
	).Scan(&stats.ID, &stats.UserID, &stats.LearningStreak, &stats.MockInterviews, &stats.CodeChallenges, &stats.AIScore, &stats.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user stats", userID)
		}
		return nil, fmt.Errorf("sqlite: getting stats for user %d: %w", userID, err)
	}
	return &stats, nil
}

// UpdateUserStats merges the non-nil fields over the stored row inside
// a transaction: read, merge in Go, write back. Same merge contract as
// the in-memory store.
func (db *DB) UpdateUserStats(ctx context.Context, userID int64, updates repository.StatsUpdate) (*model.UserStats, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var stats model.UserStats
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, learning_streak, mock_interviews, code_challenges, ai_score, updated_at
		 FROM user_stats WHERE user_id = ?`, userID,
	).Scan(&stats.ID, &stats.UserID, &stats.LearningStreak, &stats.MockInterviews, &stats.CodeChallenges, &stats.AIScore, &stats.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user stats", userID)
		}
		return nil, fmt.Errorf("sqlite: reading stats for user %d: %w", userID, err)
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

	if _, err := tx.ExecContext(ctx,
		`UPDATE user_stats
		 SET learning_streak = ?, mock_interviews = ?, code_challenges = ?, ai_score = ?, updated_at = ?
		 WHERE user_id = ?`,
		stats.LearningStreak, stats.MockInterviews, stats.CodeChallenges, stats.AIScore, stats.UpdatedAt, userID,
	); err != nil {
		return nil, fmt.Errorf("sqlite: updating stats for user %d: %w", userID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing stats update: %w", err)
	}
	return &stats, nil
}

func (db *DB) GetLearningTopics(ctx context.Context, userID int64) ([]model.LearningTopic, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, topic_name, progress, updated_at
		 FROM learning_topics WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing topics for user %d: %w", userID, err)
	}
	defer rows.Close()

	topics := []model.LearningTopic{}
	for rows.Next() {
		var topic model.LearningTopic
		if err := rows.Scan(&topic.ID, &topic.UserID, &topic.TopicName, &topic.Progress, &topic.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning topic row: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating topics: %w", err)
	}
	return topics, nil
}

func (db *DB) CreateLearningTopic(ctx context.Context, topic *model.LearningTopic) error {
	id, err := allocID(ctx, db.conn)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	topic.ID = id
	topic.UpdatedAt = time.Now()

	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO learning_topics (id, user_id, topic_name, progress, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		topic.ID, topic.UserID, topic.TopicName, topic.Progress, topic.UpdatedAt,
	); err != nil {
		return fmt.Errorf("sqlite: creating topic: %w", err)
	}
	return nil
}

// UpdateLearningTopic sets progress by bare topic id. RowsAffected == 0
// means the id doesn't exist anywhere — NotFound.
func (db *DB) UpdateLearningTopic(ctx context.Context, id int64, progress int) (*model.LearningTopic, error) {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE learning_topics SET progress = ?, updated_at = ? WHERE id = ?`,
		progress, time.Now(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating topic %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return nil, apperror.NotFound("learning topic", id)
	}

	var topic model.LearningTopic
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, topic_name, progress, updated_at FROM learning_topics WHERE id = ?`, id,
	).Scan(&topic.ID, &topic.UserID, &topic.TopicName, &topic.Progress, &topic.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: rereading topic %d: %w", id, err)
	}
	return &topic, nil
}
