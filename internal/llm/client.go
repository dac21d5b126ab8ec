package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/motivity-labs/support-triage/internal/config"
	"github.com/motivity-labs/support-triage/internal/observability"
	"github.com/motivity-labs/support-triage/internal/prompt"
	apperrors "github.com/motivity-labs/support-triage/pkg/util"
)

// Completer abstracts the external text-generation service.
type Completer interface {
	Complete(ctx context.Context, p prompt.Rendered) (string, error)
}

// ImageTextExtractor abstracts the external image-to-text service.
type ImageTextExtractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType string) (string, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client calls an OpenAI-compatible chat completions endpoint. Every call
// carries a deadline; timeouts and 5xx/429 responses are retried with
// linear backoff up to the configured attempt budget.
type Client struct {
	http        *resty.Client
	model       string
	visionModel string
	timeout     time.Duration
	maxRetries  int
	backoff     time.Duration
	logger      *zap.Logger
	metrics     *observability.Metrics
}

// NewClient builds the completion client from config.
func NewClient(cfg config.LLMConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:        http,
		model:       cfg.Model,
		visionModel: cfg.VisionModel,
		timeout:     cfg.Timeout(),
		maxRetries:  cfg.MaxRetries,
		backoff:     cfg.RetryBackoff(),
		logger:      logger,
		metrics:     metrics,
	}
}

// Complete renders one completion for the given prompt.
func (c *Client) Complete(ctx context.Context, p prompt.Rendered) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
	}
	return c.send(ctx, p.Kind, req)
}

func (c *Client) send(ctx context.Context, kind string, req chatRequest) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", apperrors.NewUpstreamTimeout("completion", ctx.Err())
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
			c.logger.Warn("retrying completion call",
				zap.String("kind", kind),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
		}

		text, err := c.sendOnce(ctx, kind, req)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !apperrors.IsRetryable(err) {
			return "", err
		}
	}
	return "", lastErr
}

func (c *Client) sendOnce(ctx context.Context, kind string, req chatRequest) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var res chatResponse
	resp, err := c.http.R().
		SetContext(callCtx).
		SetBody(req).
		SetResult(&res).
		SetError(&res).
		Post("/chat/completions")

	failed := err != nil || resp.IsError()
	c.metrics.RecordUpstreamCall(kind, failed)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", apperrors.NewUpstreamTimeout("completion", err)
		}
		return "", apperrors.NewUpstreamFailure("completion", err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if res.Error != nil && res.Error.Message != "" {
			msg = res.Error.Message
		}
		statusErr := fmt.Errorf("completion backend returned %d: %s", resp.StatusCode(), msg)
		if resp.StatusCode() == 429 || resp.StatusCode() >= 500 {
			return "", apperrors.NewUpstreamTimeout("completion", statusErr)
		}
		return "", apperrors.NewUpstreamFailure("completion", statusErr)
	}
	if len(res.Choices) == 0 {
		return "", apperrors.NewUpstreamFailure("completion", errors.New("empty choices in response"))
	}
	return res.Choices[0].Message.Content, nil
}
