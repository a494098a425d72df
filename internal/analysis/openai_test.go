package analysis

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/astralearn/internal/apperror"
)

// newTestAnalyzer points the OpenAI client at a stub server that always
// answers with the given message content.
func newTestAnalyzer(t *testing.T, content string) *OpenAIAnalyzer {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"

	return &OpenAIAnalyzer{
		client: openai.NewClientWithConfig(cfg),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  int
	}{
		{"missing score defaults to neutral", 0, 5},
		{"in range passes through", 7, 7},
		{"rounds half up", 7.5, 8},
		{"rounds down", 7.4, 7},
		{"below range clamps to 1", -3, 1},
		{"above range clamps to 10", 42, 10},
		{"fractional above range clamps", 10.6, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampScore(tt.score))
		})
	}
}

func TestDecodeAnalysis(t *testing.T) {
	type payload struct {
		Feedback string  `json:"feedback"`
		Score    float64 `json:"score"`
	}

	t.Run("valid json populates fields", func(t *testing.T) {
		var p payload
		require.NoError(t, decodeAnalysis(`{"feedback":"good","score":8}`, &p))
		assert.Equal(t, "good", p.Feedback)
		assert.Equal(t, 8.0, p.Score)
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		var p payload
		assert.Error(t, decodeAnalysis(`{"feedback": not json`, &p))
	})

	t.Run("prose content is an error", func(t *testing.T) {
		var p payload
		assert.Error(t, decodeAnalysis("The answer was decent overall.", &p))
	})

	t.Run("empty content is a no-op", func(t *testing.T) {
		var p payload
		require.NoError(t, decodeAnalysis("", &p))
		assert.Empty(t, p.Feedback)
	})

	t.Run("partial json keeps what parsed", func(t *testing.T) {
		var p payload
		require.NoError(t, decodeAnalysis(`{"score": 6}`, &p))
		assert.Empty(t, p.Feedback)
		assert.Equal(t, 6.0, p.Score)
	})
}

func TestAnalyze_ProseContentFails(t *testing.T) {
	a := newTestAnalyzer(t, "I think the answer was decent but lacked depth.")
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"interview", func() error {
			_, err := a.AnalyzeInterview(ctx, "What is a goroutine?", "A lightweight thread.")
			return err
		}},
		{"code", func() error {
			_, err := a.AnalyzeCode(ctx, "func main() {}", "go", "Two Sum")
			return err
		}},
		{"resume", func() error {
			_, err := a.AnalyzeResume(ctx, "Ten years of Go.")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), apperror.ErrAnalysis)
		})
	}
}

func TestAnalyzeInterview_EmptyContentDefaults(t *testing.T) {
	a := newTestAnalyzer(t, "")

	result, err := a.AnalyzeInterview(context.Background(), "Q", "A")
	require.NoError(t, err)
	assert.Equal(t, "No feedback available", result.Feedback)
	assert.Equal(t, 5, result.Score)
	assert.Equal(t, []string{}, result.Suggestions)
}

func TestAnalyzeInterview_FieldDefaults(t *testing.T) {
	a := newTestAnalyzer(t, `{"score": 12}`)

	result, err := a.AnalyzeInterview(context.Background(), "Q", "A")
	require.NoError(t, err)
	assert.Equal(t, "No feedback available", result.Feedback)
	assert.Equal(t, 10, result.Score)
}
