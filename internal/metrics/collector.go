// Package metrics provides in-memory request statistics for a session.
package metrics

import (
	"log/slog"
	"math"
	"sync"
	"time"
)

// OperationMetrics holds aggregated metrics for a single operation type.
type OperationMetrics struct {
	Count     int64
	Failures  int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64
	Failures    int64
	TotalTimeMs int64
	AvgTimeMs   float64
	MinTimeMs   int64
	MaxTimeMs   int64
}

// Snapshot represents the session statistics at a point in time.
type Snapshot struct {
	UptimeSeconds   float64
	CharacterSearch *OperationSnapshot
	EpisodeFetch    *OperationSnapshot
}

// Operation names for the collector.
const (
	OpCharacterSearch = "character_search"
	OpEpisodeFetch    = "episode_fetch"
)

// Collector aggregates in-memory request statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*OperationMetrics
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
	}
}

// getOrCreate returns existing metrics or creates new ones for an operation.
// Caller must hold write lock.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{
			MinTime: time.Duration(math.MaxInt64),
		}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records timing for an operation. A non-nil err counts
// the call as a failure.
func (c *Collector) RecordTiming(op string, duration time.Duration, err error) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration
	if err != nil {
		m.Failures++
	}

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// snapshotOp creates a snapshot for an operation, returning nil if no data.
func snapshotOp(m *OperationMetrics) *OperationSnapshot {
	if m == nil || m.Count == 0 {
		return nil
	}

	return &OperationSnapshot{
		Count:       m.Count,
		Failures:    m.Failures,
		TotalTimeMs: m.TotalTime.Milliseconds(),
		AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
		MinTimeMs:   m.MinTime.Milliseconds(),
		MaxTimeMs:   m.MaxTime.Milliseconds(),
	}
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		UptimeSeconds:   time.Since(c.startTime).Seconds(),
		CharacterSearch: snapshotOp(c.ops[OpCharacterSearch]),
		EpisodeFetch:    snapshotOp(c.ops[OpEpisodeFetch]),
	}
}

// LogValue implements slog.LogValuer so a snapshot can be logged directly.
func (s Snapshot) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Float64("uptime_seconds", s.UptimeSeconds)}
	if s.CharacterSearch != nil {
		attrs = append(attrs, slog.Any(OpCharacterSearch, *s.CharacterSearch))
	}
	if s.EpisodeFetch != nil {
		attrs = append(attrs, slog.Any(OpEpisodeFetch, *s.EpisodeFetch))
	}
	return slog.GroupValue(attrs...)
}

// LogValue implements slog.LogValuer.
func (o OperationSnapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("count", o.Count),
		slog.Int64("failures", o.Failures),
		slog.Float64("avg_ms", o.AvgTimeMs),
		slog.Int64("min_ms", o.MinTimeMs),
		slog.Int64("max_ms", o.MaxTimeMs),
	)
}
