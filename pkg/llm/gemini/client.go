// Package gemini is a minimal Google Gemini generateContent client with a
// single primary-to-fallback model switch.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/atlas/pkg/llm"
	"github.com/artem13815/atlas/pkg/metrics"
)

const (
	DefaultBaseURL       = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel         = "gemini-2.0-flash-lite"
	DefaultFallbackModel = "gemini-1.5-flash"
	DefaultTimeout       = 60 * time.Second

	// APIKeyEnv is read on every call, not at construction.
	APIKeyEnv = "GEMINI_API_KEY"

	maxResponseBytes = 4 << 20
)

// Generation policy. Not caller-tunable.
var generation = generationConfig{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 2048,
}

// Client sends one combined prompt to the primary model and, on a transient
// failure, exactly once more to the fallback model.
type Client struct {
	BaseURL       string
	Model         string
	FallbackModel string

	apiKey  func() string
	httpDo  *http.Client
	timeout time.Duration
	logger  *zap.Logger
	metrics *metrics.Collector
}

type Option func(*Client)

// WithHTTPClient replaces the default client. The client itself is never modified;
// WithTimeout applies to a copy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpDo = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAPIKeySource overrides where the API key comes from. Defaults to os.Getenv(APIKeyEnv).
func WithAPIKeySource(fn func() string) Option {
	return func(c *Client) { c.apiKey = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL, model, fallbackModel string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	c := &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		Model:         model,
		FallbackModel: fallbackModel,
		apiKey:        func() string { return os.Getenv(APIKeyEnv) },
		httpDo: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.httpDo.Timeout != c.timeout {
		hc := *c.httpDo
		hc.Timeout = c.timeout
		c.httpDo = &hc
	}
	return c
}

// outcome tags the result of a single provider attempt.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeTransient
	outcomeFatal
)

type attempt struct {
	outcome outcome
	text    string
	err     error
}

// Ask sends systemPrompt and userPrompt as one text part and returns the reply
// of the first candidate.
func (c *Client) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	apiKey := strings.TrimSpace(c.apiKey())
	if apiKey == "" {
		return "", &llm.ConfigError{Field: APIKeyEnv, Message: "Gemini API key not configured"}
	}

	// Marshalled once: the fallback attempt must carry the same bytes.
	body, err := json.Marshal(newRequest(systemPrompt, userPrompt))
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	res := c.send(ctx, c.Model, apiKey, body)
	if res.outcome == outcomeTransient && c.FallbackModel != "" {
		c.logger.Warn("primary model failed, retrying on fallback",
			zap.String("model", c.Model),
			zap.String("fallback_model", c.FallbackModel),
			zap.Error(res.err),
		)
		c.metrics.RecordFallback()
		res = c.send(ctx, c.FallbackModel, apiKey, body)
	}

	if res.outcome != outcomeSuccess {
		return "", res.err
	}
	return res.text, nil
}

func newRequest(systemPrompt, userPrompt string) generateContentRequest {
	return generateContentRequest{
		Contents: []content{
			{
				Role:  "user",
				Parts: []part{{Text: systemPrompt + "\n\n" + userPrompt}},
			},
		},
		GenerationConfig: generation,
	}
}

func (c *Client) endpoint(model, apiKey string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.BaseURL, url.PathEscape(model), url.QueryEscape(apiKey))
}

func (c *Client) send(ctx context.Context, model, apiKey string, body []byte) attempt {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(model, apiKey), bytes.NewReader(body))
	if err != nil {
		return attempt{outcome: outcomeFatal, err: fmt.Errorf("build gemini request: %w", stripURL(err))}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return c.transportFailure(ctx, model, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.transportFailure(ctx, model, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		transient := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusNotFound
		c.logger.Error("gemini api error",
			zap.String("model", model),
			zap.Int("status", resp.StatusCode),
			zap.Bool("transient", transient),
		)
		pe := &llm.ProviderError{
			Model:      model,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			Transient:  transient,
		}
		if transient {
			c.metrics.RecordProviderAttempt(model, "transient")
			return attempt{outcome: outcomeTransient, err: pe}
		}
		c.metrics.RecordProviderAttempt(model, "fatal")
		return attempt{outcome: outcomeFatal, err: pe}
	}

	var out generateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		c.metrics.RecordProviderAttempt(model, "fatal")
		return attempt{outcome: outcomeFatal, err: fmt.Errorf("decode gemini response: %w", err)}
	}
	text, ok := out.firstText()
	if !ok {
		c.metrics.RecordProviderAttempt(model, "empty")
		return attempt{outcome: outcomeFatal, err: llm.ErrEmptyResponse}
	}
	c.metrics.RecordProviderAttempt(model, "success")
	return attempt{outcome: outcomeSuccess, text: text}
}

// transportFailure classifies a failed round trip. Caller cancellation abandons
// the call; anything else, including the per-attempt timeout, is transient.
func (c *Client) transportFailure(ctx context.Context, model string, err error) attempt {
	if ctxErr := ctx.Err(); ctxErr != nil {
		c.metrics.RecordProviderAttempt(model, "canceled")
		return attempt{outcome: outcomeFatal, err: ctxErr}
	}
	err = stripURL(err)
	c.logger.Error("gemini request failed", zap.String("model", model), zap.Error(err))
	c.metrics.RecordProviderAttempt(model, "transient")
	return attempt{
		outcome: outcomeTransient,
		err:     &llm.ProviderError{Model: model, Transient: true, Cause: err},
	}
}

// stripURL drops the request URL from a *url.Error. The URL carries the API key.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
