package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/phrazzld/bazi-api/internal/config"
	"github.com/phrazzld/bazi-api/internal/report"
)

// contentGenerator is the subset of *genai.Models the narrator calls.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Narrator implements report.Narrator with a Gemini model.
type Narrator struct {
	models     contentGenerator
	model      string
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
	// wait blocks for d or until ctx is done; replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

var _ report.Narrator = (*Narrator)(nil)

// NewNarrator creates a Gemini client from cfg and wraps it in a Narrator.
func NewNarrator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Narrator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", ErrInvalidConfig, err)
	}
	return newNarrator(client.Models, cfg, logger)
}

func newNarrator(models contentGenerator, cfg config.LLMConfig, logger *slog.Logger) (*Narrator, error) {
	if models == nil {
		return nil, fmt.Errorf("%w: content generator cannot be nil", ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("%w: max retries cannot be negative", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	delay := time.Duration(cfg.RetryDelaySeconds) * time.Second
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Narrator{
		models:     models,
		model:      cfg.ModelName,
		maxRetries: cfg.MaxRetries,
		baseDelay:  delay,
		logger:     logger.With(slog.String("component", "gemini_narrator"), slog.String("model", cfg.ModelName)),
		wait:       sleepContext,
	}, nil
}

// Narrate implements report.Narrator. Transient failures are retried with
// exponential backoff and jitter; blocked or empty responses are not.
func (n *Narrator) Narrate(ctx context.Context, req report.ReadingRequest) (string, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return "", err
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: 1024,
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	var lastErr error
	for attempt := 0; attempt <= n.maxRetries; attempt++ {
		start := time.Now()
		resp, err := n.models.GenerateContent(ctx, n.model, contents, genCfg)
		if err == nil {
			text, perr := responseText(resp)
			if perr == nil {
				n.logger.InfoContext(ctx, "gemini reading generated",
					slog.Int("attempt", attempt+1),
					slog.Duration("latency", time.Since(start)),
					slog.Int("length", len(text)))
				return text, nil
			}
			n.logger.WarnContext(ctx, "unusable gemini response", slog.String("error", perr.Error()))
			return "", perr
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !isTransient(err) {
			n.logger.WarnContext(ctx, "permanent gemini error, not retrying",
				slog.String("error", err.Error()))
			return "", err
		}

		lastErr = err
		if attempt == n.maxRetries {
			break
		}
		delay := n.backoff(attempt)
		n.logger.InfoContext(ctx, "retrying gemini call",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))
		if err := n.wait(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("%w: exceeded %d retries: %v", ErrTransientFailure, n.maxRetries, lastErr)
}

// backoff is baseDelay * 2^attempt scaled by a jitter factor in [0.5, 1).
func (n *Narrator) backoff(attempt int) time.Duration {
	scale := math.Pow(2, float64(attempt)) * (0.5 + rand.Float64()*0.5)
	return time.Duration(float64(n.baseDelay) * scale)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty text", ErrInvalidResponse)
	}
	return text, nil
}

// isTransient treats rate limits, server errors and non-API failures
// (network, timeouts) as retryable.
func isTransient(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
