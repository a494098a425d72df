package model

import "time"

// Activity types recorded by the use-case layer. The ledger itself
// doesn't interpret these — they exist so the frontend can pick an icon.
const (
	ActivityRegistration       = "registration"
	ActivityInterviewStarted   = "interview_started"
	ActivityInterviewCompleted = "interview_completed"
	ActivityCodeSubmitted      = "code_submitted"
	ActivityResumeAnalyzed     = "resume_analyzed"
	ActivityNoteCreated        = "note_created"
	ActivityProgressUpdated    = "progress_updated"
)

// Activity is one append-only, human-readable ledger entry. Entries are
// never updated or deleted; they are read back newest-first.
type Activity struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	ActivityType string    `json:"activityType"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}
