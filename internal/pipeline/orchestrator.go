// Package pipeline implements the resilient decision pipeline: a tiered
// state machine that asks the oracle with a full prompt, retries once with
// a simplified prompt on failure, and falls back to a deterministic
// conservative default when both oracle attempts fail. Escalation is the
// only recovery strategy: no state is revisited, no tier retries, and the
// caller always receives a well-formed result.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/hugo-ops/hugo/internal/audit"
	"github.com/hugo-ops/hugo/internal/decision"
	"github.com/hugo-ops/hugo/internal/oracle"
	"github.com/hugo-ops/hugo/internal/schema"
)

// Default per-tier budgets. The worst case Decide latency is bounded by
// their sum; timeouts are per tier so a slow primary attempt cannot starve
// the fallback attempt's own budget.
const (
	DefaultPrimaryTimeout  = 90 * time.Second
	DefaultFallbackTimeout = 30 * time.Second
)

// Orchestrator composes the prompt builder, oracle client, validator, and
// conservative default providers into a single Decide call. It is stateless
// across invocations; the audit recorder is the only shared sink.
type Orchestrator struct {
	registry        *decision.Registry
	client          oracle.Client
	recorder        audit.Recorder
	tracer          trace.Tracer
	logger          *slog.Logger
	primaryTimeout  time.Duration
	fallbackTimeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRecorder sets the audit sink.
func WithRecorder(r audit.Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithTracer sets the OpenTelemetry tracer used for per-tier spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithTimeouts overrides the per-tier budgets.
func WithTimeouts(primary, fallback time.Duration) Option {
	return func(o *Orchestrator) {
		if primary > 0 {
			o.primaryTimeout = primary
		}
		if fallback > 0 {
			o.fallbackTimeout = fallback
		}
	}
}

// New creates an Orchestrator over the given decision registry and oracle
// client.
func New(registry *decision.Registry, client oracle.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:        registry,
		client:          client,
		recorder:        audit.NopRecorder{},
		tracer:          noop.NewTracerProvider().Tracer("pipeline"),
		logger:          slog.Default(),
		primaryTimeout:  DefaultPrimaryTimeout,
		fallbackTimeout: DefaultFallbackTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Decide runs the tiered state machine for one decision context.
//
// The returned error is non-nil only when the context's decision type has
// no registration, which is a configuration mistake rather than a runtime
// condition. Every runtime failure mode (oracle unreachable, timeout,
// malformed or non-conforming response, caller cancellation) is absorbed
// by escalation and reported through Result.Err and the audit record.
func (o *Orchestrator) Decide(ctx context.Context, dc decision.Context) (decision.Result, error) {
	start := time.Now()
	id := uuid.New()

	ctx, span := o.tracer.Start(ctx, "pipeline.decide", trace.WithAttributes(
		attribute.String("decision.type", dc.DecisionType()),
		attribute.String("decision.id", id.String()),
	))
	defer span.End()

	def, err := o.registry.Get(dc.DecisionType())
	if err != nil {
		return decision.Result{}, err
	}

	var reasons []string

	// AttemptPrimary: full prompt under the primary budget.
	parsed, raw, primaryErr := o.attempt(ctx, def, dc, decision.VariantFull, o.primaryTimeout)
	if primaryErr == nil {
		result := decision.Result{
			ID:          id,
			Decision:    parsed,
			Tier:        decision.TierPrimarySuccess,
			RawResponse: raw,
			Latency:     time.Since(start),
		}
		o.finish(ctx, span, result, reasons)
		return result, nil
	}
	reasons = append(reasons, primaryErr.Error())
	o.logger.Warn("primary attempt failed, escalating",
		"decision_id", id.String(),
		"decision_type", def.Type,
		"error", primaryErr,
	)

	// AttemptFallback: simplified prompt under the fallback budget. A
	// canceled caller context skips straight to the conservative tier
	// instead of spending the fallback budget on a dead context.
	skipFallback := oracle.IsCanceled(primaryErr) || ctx.Err() != nil
	if !skipFallback {
		parsed, raw, fallbackErr := o.attempt(ctx, def, dc, decision.VariantSimplified, o.fallbackTimeout)
		if fallbackErr == nil {
			result := decision.Result{
				ID:          id,
				Decision:    parsed,
				Tier:        decision.TierFallbackSuccess,
				RawResponse: raw,
				Err:         primaryErr,
				Latency:     time.Since(start),
			}
			o.finish(ctx, span, result, reasons)
			return result, nil
		}
		reasons = append(reasons, fallbackErr.Error())
		primaryErr = fallbackErr
		o.logger.Warn("fallback attempt failed, using conservative default",
			"decision_id", id.String(),
			"decision_type", def.Type,
			"error", fallbackErr,
		)
	} else {
		reasons = append(reasons, "caller canceled; fallback attempt skipped")
	}

	// UseConservative: deterministic, oracle-free, cannot fail.
	result := decision.Result{
		ID:       id,
		Decision: def.Conservative(dc),
		Tier:     decision.TierConservativeDefault,
		Err:      primaryErr,
		Latency:  time.Since(start),
	}
	o.finish(ctx, span, result, reasons)
	return result, nil
}

// attempt runs one oracle tier: build the prompt, make exactly one call,
// validate the response against the decision schema.
func (o *Orchestrator) attempt(
	ctx context.Context,
	def decision.Definition,
	dc decision.Context,
	variant decision.Variant,
	timeout time.Duration,
) (decision.Parsed, string, error) {
	ctx, span := o.tracer.Start(ctx, "pipeline.tier", trace.WithAttributes(
		attribute.String("tier.variant", string(variant)),
		attribute.Int64("tier.timeout_ms", timeout.Milliseconds()),
	))
	defer span.End()

	promptText := def.Prompt(dc, variant)

	raw, err := o.client.Generate(ctx, oracle.GenerateRequest{
		Prompt:  promptText,
		Timeout: timeout,
	})
	if err != nil {
		span.RecordError(err)
		return decision.Parsed{}, "", err
	}

	fields, err := schema.Validate(def.Schema, raw)
	if err != nil {
		span.RecordError(err)
		return decision.Parsed{}, raw, err
	}

	return decision.Parsed{Type: def.Type, Fields: fields}, raw, nil
}

// finish logs the outcome, stamps the span, and emits one audit record.
func (o *Orchestrator) finish(ctx context.Context, span trace.Span, result decision.Result, reasons []string) {
	span.SetAttributes(
		attribute.String("decision.tier", result.Tier.String()),
		attribute.Int64("decision.latency_ms", result.Latency.Milliseconds()),
	)

	o.logger.Info("decision complete",
		"decision_id", result.ID.String(),
		"decision_type", result.Decision.Type,
		"tier", result.Tier.String(),
		"latency_ms", result.Latency.Milliseconds(),
	)

	rec := audit.Record{
		ID:                result.ID.String(),
		DecisionType:      result.Decision.Type,
		Tier:              result.Tier.String(),
		LatencyMS:         result.Latency.Milliseconds(),
		EscalationReasons: reasons,
		Timestamp:         time.Now().UTC(),
	}
	if result.Tier.FromOracle() {
		rec.RawResponse = result.RawResponse
	}
	if result.Err != nil {
		rec.Error = result.Err.Error()
	}
	o.recorder.Record(ctx, rec)
}

// DecideAll runs Decide for each context through a bounded worker pool.
// Results are returned in input order. The oracle typically serializes
// requests internally, so limit should stay small; values below one are
// clamped to one.
func (o *Orchestrator) DecideAll(ctx context.Context, contexts []decision.Context, limit int) ([]decision.Result, error) {
	if limit < 1 {
		limit = 1
	}

	results := make([]decision.Result, len(contexts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, dc := range contexts {
		g.Go(func() error {
			result, err := o.Decide(gctx, dc)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
