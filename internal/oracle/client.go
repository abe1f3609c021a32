// Package oracle issues bounded, cancellable calls to the external
// reasoning service. A client makes exactly one network call per Generate
// invocation, enforces the caller's timeout strictly, and reports every
// failure mode as a typed error value rather than a panic.
package oracle

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/hugo-ops/hugo/internal/types"
)

// GenerateRequest is one prompt sent to the oracle with its per-call budget.
type GenerateRequest struct {
	Prompt  string
	Timeout time.Duration
}

// Client is the oracle boundary. Implementations must never retry
// internally; escalation is the orchestrator's job.
type Client interface {
	// Name returns the client name (e.g., "ollama", "mock")
	Name() string

	// Generate sends one prompt and returns the raw response text.
	// The timeout in req bounds the call; overrun yields ORACLE_TIMEOUT
	// and caller cancellation yields ORACLE_CANCELED.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Config holds oracle connection settings, injected at construction so no
// module-level state is consulted per call.
type Config struct {
	BaseURL     string
	Model       string
	Temperature float64
}

// OllamaClient implements Client against an Ollama-compatible generate
// endpoint. The wire body is {model, prompt, stream: false, temperature};
// only the response string is read back.
type OllamaClient struct {
	llm         *ollama.LLM
	model       string
	temperature float64
}

// NewOllamaClient creates a new Ollama-backed oracle client.
func NewOllamaClient(cfg Config) (*OllamaClient, error) {
	serverURL := cfg.BaseURL
	if serverURL == "" {
		serverURL = "http://localhost:11434"
	}

	opts := []ollama.Option{
		ollama.WithServerURL(serverURL),
	}
	if cfg.Model != "" {
		opts = append(opts, ollama.WithModel(cfg.Model))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, types.WrapError(types.ORACLE_CONNECTION_FAILED, "failed to construct ollama client", err)
	}

	return &OllamaClient{
		llm:         client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Name returns the client name
func (c *OllamaClient) Name() string {
	return "ollama"
}

// Generate sends one completion request to the oracle.
func (c *OllamaClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, c.llm, req.Prompt,
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", TranslateError(err)
	}

	return strings.TrimSpace(out), nil
}

// TranslateError converts transport and context errors into the oracle
// error taxonomy. Context errors are checked first so a deadline overrun
// inside the HTTP layer still surfaces as ORACLE_TIMEOUT.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var hugoErr *types.HugoError
	if errors.As(err, &hugoErr) {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled):
		return types.WrapError(types.ORACLE_CANCELED, "oracle call canceled by caller", err)
	case errors.Is(err, context.DeadlineExceeded):
		return &types.HugoError{
			Code:      types.ORACLE_TIMEOUT,
			Message:   "oracle call exceeded its timeout",
			Retryable: true,
			Cause:     err,
		}
	}

	lowerMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lowerMsg, "timeout") || strings.Contains(lowerMsg, "deadline"):
		return &types.HugoError{
			Code:      types.ORACLE_TIMEOUT,
			Message:   "oracle call exceeded its timeout",
			Retryable: true,
			Cause:     err,
		}
	case strings.Contains(lowerMsg, "connection refused") ||
		strings.Contains(lowerMsg, "no such host") ||
		strings.Contains(lowerMsg, "connection reset") ||
		strings.Contains(lowerMsg, "network"):
		return &types.HugoError{
			Code:      types.ORACLE_CONNECTION_FAILED,
			Message:   "cannot reach oracle",
			Retryable: true,
			Cause:     err,
		}
	default:
		return types.WrapError(types.ORACLE_NON_SUCCESS, "oracle returned a non-success result", err)
	}
}

// IsCanceled reports whether err represents caller cancellation. The
// orchestrator uses this to fall straight through to the conservative tier
// instead of spending the fallback budget on a canceled context.
func IsCanceled(err error) bool {
	return types.CodeOf(err) == types.ORACLE_CANCELED
}
