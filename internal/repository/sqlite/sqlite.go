// Package sqlite implements the repository interfaces on an embedded
// SQLite database, giving the entity store a durable backend behind the
// exact same capability surface as the in-memory one. Selected by
// setting DB_PATH; nothing in the service layer knows which backend it
// is talking to.
//
// WHY modernc.org/sqlite?
// It is a pure-Go translation of SQLite — no CGo, no C compiler,
// cross-compiles everywhere Go does. Use ":memory:" for tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements repository.Store.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath, configures it, and
// runs migrations. Use ":memory:" for a throwaway in-memory database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path surfaces here, not on
	// the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — important for
	// a web server where requests overlap.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite; every collection table
	// references users(id), so turn them on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Defer this wherever New is called.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates all tables. CREATE TABLE IF NOT EXISTS keeps this
// safe to run on every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		-- One shared AUTOINCREMENT sequence feeds ids for every entity
		-- kind, matching the in-memory store's global counter. Rows are
		-- deleted right after allocation; AUTOINCREMENT guarantees the
		-- sequence never reuses an id anyway.
		CREATE TABLE IF NOT EXISTS id_seq (
			id INTEGER PRIMARY KEY AUTOINCREMENT
		);

		CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY,
			username   TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL,
			email      TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS user_stats (
			id              INTEGER PRIMARY KEY,
			user_id         INTEGER NOT NULL UNIQUE REFERENCES users(id),
			learning_streak INTEGER NOT NULL DEFAULT 0,
			mock_interviews INTEGER NOT NULL DEFAULT 0,
			code_challenges INTEGER NOT NULL DEFAULT 0,
			ai_score        TEXT NOT NULL DEFAULT '0.0',
			updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS learning_topics (
			id         INTEGER PRIMARY KEY,
			user_id    INTEGER NOT NULL REFERENCES users(id),
			topic_name TEXT NOT NULL,
			progress   INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_learning_topics_user_id ON learning_topics(user_id);

		CREATE TABLE IF NOT EXISTS interviews (
			id           INTEGER PRIMARY KEY,
			user_id      INTEGER NOT NULL REFERENCES users(id),
			question     TEXT NOT NULL,
			user_answer  TEXT,
			ai_feedback  TEXT,
			score        INTEGER,
			is_completed INTEGER NOT NULL DEFAULT 0,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_interviews_user_id ON interviews(user_id);

		CREATE TABLE IF NOT EXISTS code_submissions (
			id               INTEGER PRIMARY KEY,
			user_id          INTEGER NOT NULL REFERENCES users(id),
			problem_title    TEXT NOT NULL,
			code             TEXT NOT NULL,
			language         TEXT NOT NULL,
			ai_suggestions   TEXT,
			efficiency_score INTEGER,
			is_correct       INTEGER NOT NULL DEFAULT 0,
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_code_submissions_user_id ON code_submissions(user_id);

		CREATE TABLE IF NOT EXISTS resume_feedback (
			id             INTEGER PRIMARY KEY,
			user_id        INTEGER NOT NULL REFERENCES users(id),
			resume_content TEXT NOT NULL,
			ai_feedback    TEXT NOT NULL,
			overall_score  TEXT NOT NULL,
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_resume_feedback_user_id ON resume_feedback(user_id);

		CREATE TABLE IF NOT EXISTS tech_notes (
			id         INTEGER PRIMARY KEY,
			user_id    INTEGER NOT NULL REFERENCES users(id),
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			topic      TEXT NOT NULL,
			ai_summary TEXT,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_tech_notes_user_id ON tech_notes(user_id);

		CREATE TABLE IF NOT EXISTS activities (
			id            INTEGER PRIMARY KEY,
			user_id       INTEGER NOT NULL REFERENCES users(id),
			activity_type TEXT NOT NULL,
			description   TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_activities_user_id ON activities(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx, so id allocation
// works inside and outside transactions.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// allocID draws the next id from the shared sequence.
func allocID(ctx context.Context, e execer) (int64, error) {
	res, err := e.ExecContext(ctx, `INSERT INTO id_seq DEFAULT VALUES`)
	if err != nil {
		return 0, fmt.Errorf("allocating id: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading allocated id: %w", err)
	}
	// The sequence (sqlite_sequence) survives the delete; this just
	// keeps the table from growing without bound.
	if _, err := e.ExecContext(ctx, `DELETE FROM id_seq WHERE id = ?`, id); err != nil {
		return 0, fmt.Errorf("trimming id sequence: %w", err)
	}
	return id, nil
}
