package analysis

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"

	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/model"
)

// analysisModel is pinned: newer models change their JSON habits and we
// depend on the response shapes below.
const analysisModel = openai.GPT4o

// OpenAIAnalyzer implements Analyzer against the OpenAI chat
// completions API. Responses that carry structured data request JSON
// mode so the model cannot wrap its answer in prose.
type OpenAIAnalyzer struct {
	client *openai.Client
	logger *slog.Logger
}

var _ Analyzer = (*OpenAIAnalyzer)(nil)

func NewOpenAIAnalyzer(apiKey string, logger *slog.Logger) *OpenAIAnalyzer {
	return &OpenAIAnalyzer{
		client: openai.NewClient(apiKey),
		logger: logger,
	}
}

// complete runs one chat completion and returns the raw message
// content. Each call gets a correlation id so a failed analysis can be
// matched to its log line.
func (a *OpenAIAnalyzer) complete(ctx context.Context, operation, system, user string, jsonMode bool) (string, error) {
	callID := xid.New().String()

	req := openai.ChatCompletionRequest{
		Model: analysisModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	a.logger.Debug("analysis call", "operation", operation, "call_id", callID)

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		a.logger.Error("analysis call failed", "operation", operation, "call_id", callID, "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *OpenAIAnalyzer) GenerateQuestion(ctx context.Context, topic string) (string, error) {
	content, err := a.complete(ctx, "generate interview question",
		"You are an expert interviewer. Generate a thoughtful, realistic interview question for the given topic that would be asked in a technical interview.",
		"Generate an interview question about: "+topic,
		false)
	if err != nil {
		return "", apperror.Analysis("generate interview question", err)
	}
	if content == "" {
		content = "Tell me about yourself."
	}
	return content, nil
}

func (a *OpenAIAnalyzer) AnalyzeInterview(ctx context.Context, question, answer string) (*InterviewAnalysis, error) {
	content, err := a.complete(ctx, "analyze interview",
		"You are an expert interview coach. Analyze the candidate's answer and provide constructive feedback, a score from 1-10, and specific suggestions for improvement. Respond with JSON in this format: { 'feedback': string, 'score': number, 'suggestions': string[] }",
		"Question: "+question+"\n\nAnswer: "+answer,
		true)
	if err != nil {
		return nil, apperror.Analysis("analyze interview", err)
	}

	var raw struct {
		Feedback    string   `json:"feedback"`
		Score       float64  `json:"score"`
		Suggestions []string `json:"suggestions"`
	}
	if err := decodeAnalysis(content, &raw); err != nil {
		return nil, apperror.Analysis("analyze interview", err)
	}

	return &InterviewAnalysis{
		Feedback:    fallback(raw.Feedback, "No feedback available"),
		Score:       clampScore(raw.Score),
		Suggestions: nonNil(raw.Suggestions),
	}, nil
}

func (a *OpenAIAnalyzer) AnalyzeCode(ctx context.Context, code, language, problemTitle string) (*CodeAnalysis, error) {
	content, err := a.complete(ctx, "analyze code",
		"You are a senior software engineer. Analyze the code for correctness, efficiency, and provide suggestions for improvement. Score efficiency from 1-10. Respond with JSON in this format: { 'suggestions': string, 'efficiencyScore': number, 'isCorrect': boolean, 'improvements': string[] }",
		"Problem: "+problemTitle+"\nLanguage: "+language+"\n\nCode:\n"+code,
		true)
	if err != nil {
		return nil, apperror.Analysis("analyze code", err)
	}

	var raw struct {
		Suggestions     string   `json:"suggestions"`
		EfficiencyScore float64  `json:"efficiencyScore"`
		IsCorrect       bool     `json:"isCorrect"`
		Improvements    []string `json:"improvements"`
	}
	if err := decodeAnalysis(content, &raw); err != nil {
		return nil, apperror.Analysis("analyze code", err)
	}

	return &CodeAnalysis{
		Suggestions:     fallback(raw.Suggestions, "No suggestions available"),
		EfficiencyScore: clampScore(raw.EfficiencyScore),
		IsCorrect:       raw.IsCorrect,
		Improvements:    nonNil(raw.Improvements),
	}, nil
}

func (a *OpenAIAnalyzer) AnalyzeResume(ctx context.Context, resumeContent string) (*ResumeAnalysis, error) {
	content, err := a.complete(ctx, "analyze resume",
		"You are a professional resume reviewer. Analyze the resume and provide an overall score (X.X/10), strengths, weaknesses, and improvement suggestions. Respond with JSON in this format: { 'overallScore': string, 'feedback': { 'strengths': string[], 'weaknesses': string[], 'suggestions': string[] } }",
		"Please analyze this resume:\n\n"+resumeContent,
		true)
	if err != nil {
		return nil, apperror.Analysis("analyze resume", err)
	}

	var raw struct {
		OverallScore string `json:"overallScore"`
		Feedback     struct {
			Strengths   []string `json:"strengths"`
			Weaknesses  []string `json:"weaknesses"`
			Suggestions []string `json:"suggestions"`
		} `json:"feedback"`
	}
	if err := decodeAnalysis(content, &raw); err != nil {
		return nil, apperror.Analysis("analyze resume", err)
	}

	return &ResumeAnalysis{
		OverallScore: fallback(raw.OverallScore, "5.0/10"),
		Feedback: model.ResumeComments{
			Strengths:   nonNil(raw.Feedback.Strengths),
			Weaknesses:  nonNil(raw.Feedback.Weaknesses),
			Suggestions: nonNil(raw.Feedback.Suggestions),
		},
	}, nil
}

func (a *OpenAIAnalyzer) SummarizeNotes(ctx context.Context, content, topic string) (string, error) {
	summary, err := a.complete(ctx, "summarize notes",
		"You are an expert technical writer. Create a concise, well-structured summary of the provided notes while maintaining all key concepts and important details.",
		"Topic: "+topic+"\n\nNotes to summarize:\n"+content,
		false)
	if err != nil {
		return "", apperror.Analysis("summarize notes", err)
	}
	if summary == "" {
		summary = "Summary not available"
	}
	return summary, nil
}

// === RESPONSE COERCION ===
//
// Even in JSON mode the model occasionally omits fields or returns a
// score outside [1, 10]. Individual missing pieces get defaults, but a
// body that is not JSON at all is an error: persisting a fabricated
// analysis would be worse than failing the saga.

// decodeAnalysis unmarshals a structured analysis payload. Empty
// content decodes as an empty object so the field defaults apply;
// non-empty content must be valid JSON.
func decodeAnalysis(content string, dst any) error {
	if content == "" {
		return nil
	}
	return json.Unmarshal([]byte(content), dst)
}

// clampScore rounds to the nearest integer and clamps to [1, 10]. A
// missing score (zero) becomes the neutral 5.
func clampScore(score float64) int {
	if score == 0 {
		score = 5
	}
	n := int(math.Round(score))
	if n < 1 {
		n = 1
	}
	if n > 10 {
		n = 10
	}
	return n
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
