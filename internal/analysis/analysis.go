// Package analysis defines the AI-analysis capability the rest of the
// application depends on. Services talk to the Analyzer interface; the
// OpenAI-backed implementation lives in openai.go so tests can swap in
// a fake without touching the network.
package analysis

import (
	"context"

	"github.com/sakif/astralearn/internal/model"
)

// InterviewAnalysis is the coach's verdict on a submitted answer.
// Score is always within [1, 10].
type InterviewAnalysis struct {
	Feedback    string   `json:"feedback"`
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// CodeAnalysis is the review of a code submission. EfficiencyScore is
// always within [1, 10].
type CodeAnalysis struct {
	Suggestions     string   `json:"suggestions"`
	EfficiencyScore int      `json:"efficiencyScore"`
	IsCorrect       bool     `json:"isCorrect"`
	Improvements    []string `json:"improvements"`
}

// ResumeAnalysis carries an overall score in "X.X/10" form plus
// itemised comments.
type ResumeAnalysis struct {
	OverallScore string               `json:"overallScore"`
	Feedback     model.ResumeComments `json:"feedback"`
}

// Analyzer is the AI capability behind interview coaching, code review,
// resume analysis and note summarisation. Every method either returns a
// fully-populated result or an error wrapping apperror.ErrAnalysis.
type Analyzer interface {
	GenerateQuestion(ctx context.Context, topic string) (string, error)
	AnalyzeInterview(ctx context.Context, question, answer string) (*InterviewAnalysis, error)
	AnalyzeCode(ctx context.Context, code, language, problemTitle string) (*CodeAnalysis, error)
	AnalyzeResume(ctx context.Context, resumeContent string) (*ResumeAnalysis, error)
	SummarizeNotes(ctx context.Context, content, topic string) (string, error)
}
