package model

import "time"

// ResumeComments is the structured feedback block produced by resume
// analysis. It is stored verbatim inside the ResumeFeedback row (as a
// JSON column on the SQLite backend).
type ResumeComments struct {
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

// ResumeFeedback is one resume-analysis result. Immutable once created.
// OverallScore keeps the analysis's display format ("7.5/10").
type ResumeFeedback struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"userId"`
	ResumeContent string         `json:"resumeContent"`
	AIFeedback    ResumeComments `json:"aiFeedback"`
	OverallScore  string         `json:"overallScore"`
	CreatedAt     time.Time      `json:"createdAt"`
}
