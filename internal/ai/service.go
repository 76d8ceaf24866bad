package ai

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"taskpilot/pkg/circuitbreaker"
	"taskpilot/pkg/logger"
	"taskpilot/pkg/metrics"
)

// Degradation reasons recorded when a fallback is served.
const (
	ReasonUpstreamUnavailable = "upstream_unavailable"
	ReasonRateLimited         = "rate_limited"
	ReasonQuotaExhausted      = "quota_exhausted"
	ReasonCircuitOpen         = "circuit_open"
	ReasonResponseMalformed   = "response_malformed"
)

// Degradation explains why a fallback result was substituted. A nil
// *Degradation means the model response was used as-is.
type Degradation struct {
	Reason string
	Err    error
}

// Annotator runs the full annotation pipeline: render prompt, call the
// completion backend behind a circuit breaker, validate the response, and
// fall back to a static result on any failure. It holds no per-request state
// and is safe for concurrent use.
type Annotator struct {
	client  *Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
	model   string
	now     func() time.Time
}

func NewAnnotator(client *Client, model string, logger *zap.Logger) *Annotator {
	return &Annotator{
		client:  client,
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig()),
		logger:  logger,
		model:   model,
		now:     time.Now,
	}
}

func (a *Annotator) params(maxTokens int) GenerationParams {
	return GenerationParams{
		Model:       a.model,
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	}
}

// complete runs the breaker-guarded backend call and maps failures to
// degradation reasons. The error return is reserved for request-encoding
// failures, which are bugs rather than upstream conditions.
func (a *Annotator) complete(ctx context.Context, kind, prompt string, params GenerationParams) (string, *Degradation, error) {
	var text string
	start := time.Now()

	err := a.breaker.Execute(func() error {
		var callErr error
		text, callErr = a.client.Complete(ctx, prompt, params)
		return callErr
	})

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordAnnotationLatency(kind, status, time.Since(start))

	if err == nil {
		return text, nil, nil
	}

	var reason string
	switch {
	case errors.Is(err, circuitbreaker.ErrOpen):
		reason = ReasonCircuitOpen
	case errors.Is(err, ErrRateLimited):
		reason = ReasonRateLimited
	case errors.Is(err, ErrQuotaExhausted):
		reason = ReasonQuotaExhausted
	case errors.Is(err, ErrUpstreamUnavailable):
		reason = ReasonUpstreamUnavailable
	default:
		// 不是上游错误，是请求构造失败
		return "", nil, err
	}

	return "", &Degradation{Reason: reason, Err: err}, nil
}

func (a *Annotator) degrade(ctx context.Context, kind string, deg *Degradation) {
	metrics.IncrementAnnotationFallback(kind, deg.Reason)
	logger.WithTrace(ctx, a.logger).Warn("annotation degraded to fallback",
		zap.String("kind", kind),
		zap.String("reason", deg.Reason),
		zap.Error(deg.Err),
	)
}

// malformedDegradation logs the offending raw text so bad completions can be
// diagnosed later.
func (a *Annotator) malformedDegradation(ctx context.Context, kind, raw string, err error) *Degradation {
	deg := &Degradation{Reason: ReasonResponseMalformed, Err: err}
	metrics.IncrementAnnotationFallback(kind, deg.Reason)
	logger.WithTrace(ctx, a.logger).Warn("annotation response failed validation",
		zap.String("kind", kind),
		zap.String("raw_completion", raw),
		zap.Error(err),
	)
	return deg
}
