package model

import "time"

// TechNote is a user-authored study note. Title and content are mutable;
// the AI summary is regenerated on every edit, never cached.
type TechNote struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Topic     string    `json:"topic"`
	AISummary *string   `json:"aiSummary"`
	UpdatedAt time.Time `json:"updatedAt"`
}
