package oracle

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-ops/hugo/internal/types"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected types.ErrorCode
	}{
		{
			name:     "context canceled",
			err:      context.Canceled,
			expected: types.ORACLE_CANCELED,
		},
		{
			name:     "context deadline exceeded",
			err:      context.DeadlineExceeded,
			expected: types.ORACLE_TIMEOUT,
		},
		{
			name:     "wrapped deadline",
			err:      fmt.Errorf("request failed: %w", context.DeadlineExceeded),
			expected: types.ORACLE_TIMEOUT,
		},
		{
			name:     "connection refused",
			err:      fmt.Errorf("dial tcp 127.0.0.1:11434: connect: connection refused"),
			expected: types.ORACLE_CONNECTION_FAILED,
		},
		{
			name:     "unknown host",
			err:      fmt.Errorf("lookup oracle.internal: no such host"),
			expected: types.ORACLE_CONNECTION_FAILED,
		},
		{
			name:     "timeout by message",
			err:      fmt.Errorf("client timeout exceeded while awaiting headers"),
			expected: types.ORACLE_TIMEOUT,
		},
		{
			name:     "http status error",
			err:      fmt.Errorf("API returned unexpected status code: 500"),
			expected: types.ORACLE_NON_SUCCESS,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translated := TranslateError(tt.err)
			require.Error(t, translated)
			assert.Equal(t, tt.expected, types.CodeOf(translated))
		})
	}
}

func TestTranslateError_Nil(t *testing.T) {
	assert.NoError(t, TranslateError(nil))
}

func TestTranslateError_PreservesHugoError(t *testing.T) {
	original := types.NewError(types.ORACLE_NON_SUCCESS, "status 503")
	translated := TranslateError(original)
	assert.Same(t, original, translated.(*types.HugoError))
}

func TestTranslateError_TimeoutIsRetryable(t *testing.T) {
	translated := TranslateError(context.DeadlineExceeded)
	var hugoErr *types.HugoError
	require.ErrorAs(t, translated, &hugoErr)
	assert.True(t, hugoErr.Retryable)
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, IsCanceled(TranslateError(context.Canceled)))
	assert.False(t, IsCanceled(TranslateError(context.DeadlineExceeded)))
	assert.False(t, IsCanceled(nil))
}

func TestNewOllamaClient_Defaults(t *testing.T) {
	client, err := NewOllamaClient(Config{Model: "gemma:2b", Temperature: 0.2})
	require.NoError(t, err)
	assert.Equal(t, "ollama", client.Name())
}

func TestMockClient_ScriptedResponses(t *testing.T) {
	mock := NewMockClient(
		MockResult{Response: `{"a": 1}`},
		MockResult{Err: fmt.Errorf("connection refused")},
	)

	first, err := mock.Generate(context.Background(), GenerateRequest{Prompt: "p1"})
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, first)

	_, err = mock.Generate(context.Background(), GenerateRequest{Prompt: "p2"})
	require.Error(t, err)
	assert.Equal(t, types.ORACLE_CONNECTION_FAILED, types.CodeOf(err))

	// Script exhausted: last entry repeats.
	_, err = mock.Generate(context.Background(), GenerateRequest{Prompt: "p3"})
	require.Error(t, err)
	assert.Equal(t, types.ORACLE_CONNECTION_FAILED, types.CodeOf(err))

	calls := mock.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "p1", calls[0].Prompt)
	assert.Equal(t, "p3", calls[2].Prompt)
}

func TestMockClient_TimeoutEnforced(t *testing.T) {
	mock := NewMockClient(MockResult{Response: "slow", Delay: 200 * time.Millisecond})

	start := time.Now()
	_, err := mock.Generate(context.Background(), GenerateRequest{
		Prompt:  "p",
		Timeout: 20 * time.Millisecond,
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Equal(t, types.ORACLE_TIMEOUT, types.CodeOf(err))
	assert.Less(t, elapsed, 150*time.Millisecond)
}

func TestMockClient_CallerCancellation(t *testing.T) {
	mock := NewMockClient(MockResult{Response: "slow", Delay: 200 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := mock.Generate(ctx, GenerateRequest{Prompt: "p", Timeout: time.Second})
	require.Error(t, err)
	assert.Equal(t, types.ORACLE_CANCELED, types.CodeOf(err))
	assert.True(t, IsCanceled(err))
}
