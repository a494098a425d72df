package model

import "time"

// CodeSubmission records one code-review request together with the
// analysis results. Submissions are immutable once created — there is no
// update operation anywhere in the store.
type CodeSubmission struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	ProblemTitle    string    `json:"problemTitle"`
	Code            string    `json:"code"`
	Language        string    `json:"language"`
	AISuggestions   *string   `json:"aiSuggestions"`
	EfficiencyScore *int      `json:"efficiencyScore"`
	IsCorrect       bool      `json:"isCorrect"`
	CreatedAt       time.Time `json:"createdAt"`
}
