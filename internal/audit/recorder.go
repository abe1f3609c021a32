// Package audit captures one record per pipeline invocation: the tier
// reached, cumulative latency, the raw oracle response for oracle tiers,
// and the escalation reasons. Recording is a side channel: failures are
// logged, never propagated, so a broken sink cannot block a decision.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Record is the audit trail entry for one Decide invocation.
type Record struct {
	ID                string    `json:"id"`
	DecisionType      string    `json:"decision_type"`
	Tier              string    `json:"tier"`
	LatencyMS         int64     `json:"latency_ms"`
	RawResponse       string    `json:"raw_response,omitempty"`
	Error             string    `json:"error,omitempty"`
	EscalationReasons []string  `json:"escalation_reasons,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// Recorder is the audit sink. Implementations must support concurrent
// Record calls, writing each record whole so entries never interleave.
type Recorder interface {
	Record(ctx context.Context, rec Record)
}

// NopRecorder discards all records.
type NopRecorder struct{}

// Record implements Recorder
func (NopRecorder) Record(context.Context, Record) {}

// MemoryRecorder keeps records in memory, for tests and inspection.
type MemoryRecorder struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryRecorder creates an empty in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record implements Recorder
func (m *MemoryRecorder) Record(_ context.Context, rec Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
}

// Records returns a copy of all captured records.
func (m *MemoryRecorder) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// JSONLRecorder appends records to a file, one JSON object per line. A
// mutex serializes writes and each record is written with a single Write
// call, so concurrent invocations never corrupt the file.
type JSONLRecorder struct {
	mu     sync.Mutex
	file   *os.File
	logger *slog.Logger
}

// NewJSONLRecorder opens (or creates) the audit file in append mode.
func NewJSONLRecorder(path string, logger *slog.Logger) (*JSONLRecorder, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONLRecorder{file: file, logger: logger}, nil
}

// Record implements Recorder. Failures are logged and swallowed so the
// decision path is never blocked by the audit sink.
func (r *JSONLRecorder) Record(_ context.Context, rec Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		r.logger.Error("failed to marshal audit record",
			"decision_id", rec.ID,
			"error", err,
		)
		return
	}
	data = append(data, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.file.Write(data); err != nil {
		r.logger.Error("failed to write audit record",
			"decision_id", rec.ID,
			"error", err,
		)
	}
}

// Close closes the underlying audit file.
func (r *JSONLRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}
