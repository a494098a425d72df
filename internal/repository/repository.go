// Package repository defines the capability surface the use-case layer
// depends on. Handlers and services only ever see these interfaces — the
// concrete backend (in-memory or SQLite) is chosen once, in main.
//
// PARTIAL UPDATES:
// Go has no spread operator, so "merge these fields over the stored
// record" is expressed with structs of pointer fields (StatsUpdate,
// InterviewUpdate, TechNoteUpdate). A nil field means "leave the stored
// value alone"; a non-nil field overwrites it. Every UpdateX method
// re-stamps the record's updatedAt and fails with apperror.NotFound when
// no record with that id exists — the one explicit store error.
package repository

import (
	"context"

	"github.com/sakif/astralearn/internal/model"
)

// StatsUpdate is a partial update for a UserStats row. The tracker does
// no arithmetic itself — callers read the current row and supply the
// incremented values.
type StatsUpdate struct {
	LearningStreak *int
	MockInterviews *int
	CodeChallenges *int
	AIScore        *string
}

// InterviewUpdate is a partial update for an Interview row.
type InterviewUpdate struct {
	UserAnswer  *string
	AIFeedback  *string
	Score       *int
	IsCompleted *bool
}

// TechNoteUpdate is a partial update for a TechNote row.
type TechNoteUpdate struct {
	Title     *string
	Content   *string
	AISummary *string
}

// UserRepository manages user accounts.
//
// CreateUser assigns the id and creation time, and cascades: a zeroed
// UserStats row and three default LearningTopics are created in the same
// call. It fails with apperror.Conflict if the username or email is
// already taken.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// StatsRepository manages the per-user aggregate counters.
// Both methods fail with apperror.NotFound when the user has no stats
// row — that should never happen given the CreateUser cascade, but it is
// surfaced as an explicit error rather than a silent create.
type StatsRepository interface {
	GetUserStats(ctx context.Context, userID int64) (*model.UserStats, error)
	UpdateUserStats(ctx context.Context, userID int64, updates StatsUpdate) (*model.UserStats, error)
}

// TopicRepository manages learning topics. UpdateLearningTopic addresses
// the topic by its own id, not the owner's.
type TopicRepository interface {
	GetLearningTopics(ctx context.Context, userID int64) ([]model.LearningTopic, error)
	CreateLearningTopic(ctx context.Context, topic *model.LearningTopic) error
	UpdateLearningTopic(ctx context.Context, id int64, progress int) (*model.LearningTopic, error)
}

// InterviewRepository manages mock-interview sessions.
//
// GetActiveInterview returns the most recently created incomplete
// interview, or (nil, nil) when every interview is completed — absence
// is a normal answer here, not an error. GetInterview and
// UpdateInterview address an interview by bare id without knowing its
// owner.
type InterviewRepository interface {
	GetInterviews(ctx context.Context, userID int64) ([]model.Interview, error)
	GetActiveInterview(ctx context.Context, userID int64) (*model.Interview, error)
	GetInterview(ctx context.Context, id int64) (*model.Interview, error)
	CreateInterview(ctx context.Context, interview *model.Interview) error
	UpdateInterview(ctx context.Context, id int64, updates InterviewUpdate) (*model.Interview, error)
}

// SubmissionRepository manages code submissions. Submissions are
// immutable — there is deliberately no update method.
type SubmissionRepository interface {
	GetCodeSubmissions(ctx context.Context, userID int64) ([]model.CodeSubmission, error)
	CreateCodeSubmission(ctx context.Context, submission *model.CodeSubmission) error
}

// ResumeRepository manages resume-analysis results. Immutable, like
// submissions.
type ResumeRepository interface {
	GetResumeFeedback(ctx context.Context, userID int64) ([]model.ResumeFeedback, error)
	CreateResumeFeedback(ctx context.Context, feedback *model.ResumeFeedback) error
}

// NoteRepository manages tech notes. UpdateTechNote addresses the note
// by bare id.
type NoteRepository interface {
	GetTechNotes(ctx context.Context, userID int64) ([]model.TechNote, error)
	CreateTechNote(ctx context.Context, note *model.TechNote) error
	UpdateTechNote(ctx context.Context, id int64, updates TechNoteUpdate) (*model.TechNote, error)
}

// ActivityRepository is the append-only per-user ledger.
// GetRecentActivities returns at most limit entries, newest first.
type ActivityRepository interface {
	GetRecentActivities(ctx context.Context, userID int64, limit int) ([]model.Activity, error)
	CreateActivity(ctx context.Context, activity *model.Activity) error
}

// Store is the full capability surface, implemented by both the
// in-memory and the SQLite backends.
type Store interface {
	UserRepository
	StatsRepository
	TopicRepository
	InterviewRepository
	SubmissionRepository
	ResumeRepository
	NoteRepository
	ActivityRepository
}
