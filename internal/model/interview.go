package model

import "time"

// Interview is one mock-interview session: a generated question, and —
// once the user submits an answer — the AI feedback and score.
//
// WHY POINTER FIELDS?
// UserAnswer, AIFeedback and Score are absent until the answer is
// submitted. A *string/*int serialises as JSON null while absent, which
// is what the client checks to know the interview is still open. The
// zero values ("" and 0) would be indistinguishable from real data.
type Interview struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Question    string    `json:"question"`
	UserAnswer  *string   `json:"userAnswer"`
	AIFeedback  *string   `json:"aiFeedback"`
	Score       *int      `json:"score"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}
