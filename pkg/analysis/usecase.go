package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/atlas/pkg/llm"
	"github.com/artem13815/atlas/pkg/metrics"
)

var (
	// ErrInvalidRequest marks caller mistakes; the route layer answers 400.
	ErrInvalidRequest = errors.New("invalid analysis request")
	// ErrAnalysisFailed wraps every other failure, keeping the cause in the chain.
	ErrAnalysisFailed = errors.New("analysis failed")
)

const (
	maxTranscriptionRunes = 100_000
	maxQuestionRunes      = 10_000
	maxPreviousMessages   = 200
)

// UseCase turns a case recording into an assistant reply.
type UseCase interface {
	Analyze(ctx context.Context, req Request) (Result, error)
}

type service struct {
	llm     llm.ChatModel
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewService returns the default implementation. logger and m may be nil.
func NewService(model llm.ChatModel, logger *zap.Logger, m *metrics.Collector) UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		llm:     model,
		logger:  logger.Named("analysis"),
		metrics: m,
	}
}

func (s *service) Analyze(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	// Log fields carry the correlation id only, never clinical text.
	consultID := req.ConsultID
	if consultID == "" {
		consultID = uuid.NewString()
	}
	log := s.logger.With(zap.String("consult_id", consultID))

	if err := validate(req); err != nil {
		log.Warn("analysis rejected", zap.Error(err))
		s.metrics.ObserveAnalysis("invalid", time.Since(start))
		return Result{}, err
	}

	prompt := BuildPrompt(req)

	log.Info("analysis requested",
		zap.Bool("follow_up", req.FollowUpQuestion != ""),
		zap.Int("history_turns", len(req.PreviousMessages)),
	)

	text, err := s.invoke(ctx, prompt)
	if err != nil {
		log.Error("analysis failed", zap.String("reason", failureReason(err)))
		s.metrics.ObserveAnalysis("failed", time.Since(start))
		return Result{}, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	log.Info("analysis generated")
	s.metrics.ObserveAnalysis("ok", time.Since(start))
	return Result{Analysis: text}, nil
}

func (s *service) invoke(ctx context.Context, p Prompt) (string, error) {
	if s.llm == nil {
		return "", &llm.ConfigError{Field: "llm", Message: "LLM is not configured"}
	}
	text, err := s.llm.Ask(ctx, p.System, p.User)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

func validate(req Request) error {
	if utf8.RuneCountInString(req.Transcription) > maxTranscriptionRunes {
		return fmt.Errorf("%w: transcription exceeds %d characters", ErrInvalidRequest, maxTranscriptionRunes)
	}
	if utf8.RuneCountInString(req.FollowUpQuestion) > maxQuestionRunes {
		return fmt.Errorf("%w: followUpQuestion exceeds %d characters", ErrInvalidRequest, maxQuestionRunes)
	}
	if len(req.PreviousMessages) > maxPreviousMessages {
		return fmt.Errorf("%w: more than %d previousMessages", ErrInvalidRequest, maxPreviousMessages)
	}
	return nil
}

func failureReason(err error) string {
	var cfgErr *llm.ConfigError
	var provErr *llm.ProviderError
	switch {
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.Is(err, llm.ErrEmptyResponse):
		return "empty_response"
	case errors.As(err, &provErr):
		if provErr.Transient {
			return "provider_transient"
		}
		return "provider_fatal"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "unknown"
	}
}
