package oracle

import (
	"context"
	"sync"
	"time"
)

// MockCall records one Generate invocation against the mock.
type MockCall struct {
	Prompt  string
	Timeout time.Duration
}

// MockResult scripts one response from the mock oracle. Delay simulates a
// slow oracle; the mock honors the request timeout and caller cancellation
// while waiting, so timeout behavior can be tested with small durations.
type MockResult struct {
	Response string
	Err      error
	Delay    time.Duration
}

// MockClient implements Client for testing. Results are consumed in order;
// when the script runs out the last entry repeats.
type MockClient struct {
	mu      sync.Mutex
	script  []MockResult
	index   int
	calls   []MockCall
}

// NewMockClient creates a mock oracle that replays the given script.
func NewMockClient(script ...MockResult) *MockClient {
	return &MockClient{script: script}
}

// Name returns the client name
func (m *MockClient) Name() string {
	return "mock"
}

// Generate replays the next scripted result.
func (m *MockClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Prompt: req.Prompt, Timeout: req.Timeout})

	var result MockResult
	if len(m.script) == 0 {
		result = MockResult{Err: TranslateError(context.DeadlineExceeded)}
	} else if m.index < len(m.script) {
		result = m.script[m.index]
		m.index++
	} else {
		result = m.script[len(m.script)-1]
	}
	m.mu.Unlock()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	if result.Delay > 0 {
		timer := time.NewTimer(result.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", TranslateError(ctx.Err())
		case <-timer.C:
		}
	}

	if result.Err != nil {
		return "", TranslateError(result.Err)
	}
	return result.Response, nil
}

// Calls returns a copy of all recorded invocations.
func (m *MockClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Generate invocations so far.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
