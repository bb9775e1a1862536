package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/phrazzld/bazi-api/internal/config"
	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/platform/logger"
	"github.com/phrazzld/bazi-api/internal/report"
)

type reply struct {
	resp *genai.GenerateContentResponse
	err  error
}

// fakeModels returns scripted replies in order and records prompts.
type fakeModels struct {
	mu      sync.Mutex
	replies []reply
	prompts []string
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	_ *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompts = append(f.prompts, contents[0].Parts[0].Text)
	}
	if len(f.replies) == 0 {
		return nil, errors.New("no scripted reply")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.resp, r.err
}

func textResponse(text string, reason genai.FinishReason) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText(text, genai.RoleModel),
			FinishReason: reason,
		}},
	}
}

func testRequest(t *testing.T) report.ReadingRequest {
	t.Helper()
	chart, err := bazi.NewDefaultEngine().Calculate(bazi.ChartInput{Year: 1990, Month: 1, Day: 1, Hour: 0})
	require.NoError(t, err)
	return report.NewReadingRequest(chart)
}

func newTestNarrator(t *testing.T, models *fakeModels, retries int) (*Narrator, *[]time.Duration) {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	n, err := newNarrator(models, config.LLMConfig{
		ModelName:         "gemini-test",
		MaxRetries:        retries,
		RetryDelaySeconds: 1,
	}, log)
	require.NoError(t, err)

	var waits []time.Duration
	n.wait = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return n, &waits
}

func TestNewNarrator_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewNarrator(context.Background(), config.LLMConfig{ModelName: "m"}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = newNarrator(nil, config.LLMConfig{ModelName: "m"}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = newNarrator(&fakeModels{}, config.LLMConfig{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = newNarrator(&fakeModels{}, config.LLMConfig{ModelName: "m", MaxRetries: -1}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNarrate_Success(t *testing.T) {
	t.Parallel()

	models := &fakeModels{replies: []reply{{resp: textResponse("  Fire in early spring.  ", genai.FinishReasonStop)}}}
	n, waits := newTestNarrator(t, models, 3)

	text, err := n.Narrate(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "Fire in early spring.", text)
	assert.Empty(t, *waits)

	require.Len(t, models.prompts, 1)
	assert.Contains(t, models.prompts[0], "庚午")
	assert.Contains(t, models.prompts[0], "Suggested foods: seaweed")
}

func TestNarrate_Errors(t *testing.T) {
	t.Parallel()

	rateLimited := genai.APIError{Code: http.StatusTooManyRequests, Message: "slow down"}
	badRequest := genai.APIError{Code: http.StatusBadRequest, Message: "bad prompt"}

	tests := []struct {
		name      string
		replies   []reply
		retries   int
		wantText  string
		wantErr   error
		wantWaits int
	}{
		{
			name:      "retries transient then succeeds",
			replies:   []reply{{err: rateLimited}, {err: errors.New("connection reset")}, {resp: textResponse("ok", genai.FinishReasonStop)}},
			retries:   3,
			wantText:  "ok",
			wantWaits: 2,
		},
		{
			name:      "gives up after max retries",
			replies:   []reply{{err: rateLimited}, {err: rateLimited}, {err: rateLimited}},
			retries:   2,
			wantErr:   ErrTransientFailure,
			wantWaits: 2,
		},
		{
			name:    "client error is permanent",
			replies: []reply{{err: badRequest}},
			retries: 3,
			wantErr: badRequest,
		},
		{
			name:    "safety block",
			replies: []reply{{resp: textResponse("", genai.FinishReasonSafety)}},
			retries: 3,
			wantErr: ErrContentBlocked,
		},
		{
			name:    "no candidates",
			replies: []reply{{resp: &genai.GenerateContentResponse{}}},
			retries: 3,
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "blank text",
			replies: []reply{{resp: textResponse("   ", genai.FinishReasonStop)}},
			retries: 3,
			wantErr: ErrInvalidResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			n, waits := newTestNarrator(t, &fakeModels{replies: tc.replies}, tc.retries)

			text, err := n.Narrate(context.Background(), testRequest(t))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, text)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantText, text)
			}
			assert.Len(t, *waits, tc.wantWaits)
		})
	}
}

func TestNarrate_CancelledDuringBackoff(t *testing.T) {
	t.Parallel()

	models := &fakeModels{replies: []reply{{err: errors.New("timeout")}, {resp: textResponse("late", genai.FinishReasonStop)}}}
	n, _ := newTestNarrator(t, models, 3)

	ctx, cancel := context.WithCancel(context.Background())
	n.wait = func(context.Context, time.Duration) error {
		cancel()
		return context.Canceled
	}

	_, err := n.Narrate(ctx, testRequest(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	n, _ := newTestNarrator(t, &fakeModels{}, 3)
	for attempt := 0; attempt < 4; attempt++ {
		full := n.baseDelay * time.Duration(1<<attempt)
		for i := 0; i < 20; i++ {
			d := n.backoff(attempt)
			assert.GreaterOrEqual(t, d, full/2)
			assert.Less(t, d, full)
		}
	}
}

func TestSleepContext(t *testing.T) {
	t.Parallel()

	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
