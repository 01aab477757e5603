package server

import (
	"context"
	"sync"
	"time"

	"github.com/teemow/hebcal/internal/hebcal"
	"github.com/teemow/hebcal/internal/instrumentation"
)

// UpstreamTracker counts hebcal.com round trips and remembers the last
// outcome for /healthz/detailed. It forwards every record to next, so it
// can sit in front of the instrumentation metrics on the shared client.
type UpstreamTracker struct {
	next hebcal.MetricsRecorder

	mu          sync.Mutex
	requests    int64
	failures    int64
	lastOutcome string
	lastAt      time.Time
	lastLatency time.Duration
}

// UpstreamStatus is a snapshot of an UpstreamTracker.
type UpstreamStatus struct {
	Requests      int64      `json:"requests"`
	Failures      int64      `json:"failures"`
	LastOutcome   string     `json:"last_outcome,omitempty"`
	LastRequestAt *time.Time `json:"last_request_at,omitempty"`
	LastLatency   string     `json:"last_latency,omitempty"`
}

// NewUpstreamTracker returns a tracker that forwards to next. next may be nil.
func NewUpstreamTracker(next hebcal.MetricsRecorder) *UpstreamTracker {
	return &UpstreamTracker{next: next}
}

// RecordHebcalRequest implements hebcal.MetricsRecorder.
func (t *UpstreamTracker) RecordHebcalRequest(ctx context.Context, endpoint, outcome string, duration time.Duration) {
	t.mu.Lock()
	t.requests++
	if outcome != instrumentation.StatusSuccess {
		t.failures++
	}
	t.lastOutcome = outcome
	t.lastAt = time.Now().UTC()
	t.lastLatency = duration
	t.mu.Unlock()

	if t.next != nil {
		t.next.RecordHebcalRequest(ctx, endpoint, outcome, duration)
	}
}

// RecordGeoMethod passes the geo method through when next counts them.
func (t *UpstreamTracker) RecordGeoMethod(ctx context.Context, endpoint, geo string) {
	if rec, ok := t.next.(interface {
		RecordGeoMethod(ctx context.Context, endpoint, geo string)
	}); ok {
		rec.RecordGeoMethod(ctx, endpoint, geo)
	}
}

// Snapshot returns the counters and the last outcome.
func (t *UpstreamTracker) Snapshot() UpstreamStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := UpstreamStatus{Requests: t.requests, Failures: t.failures}
	if t.requests > 0 {
		at := t.lastAt
		s.LastOutcome = t.lastOutcome
		s.LastRequestAt = &at
		s.LastLatency = t.lastLatency.Round(time.Millisecond).String()
	}
	return s
}
