package utils

import (
	"sync"
	"time"
)

// MetricsCollector accumulates request and error counts plus per-operation
// latency samples. Each actor records one sample per handled message; the
// health endpoint reads the uptime.
type MetricsCollector struct {
	mu sync.RWMutex

	requests uint64
	errors   uint64

	// latency samples keyed by operation name
	latencies map[string][]time.Duration

	startedAt time.Time
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		latencies: make(map[string][]time.Duration),
		startedAt: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requests++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errors++
}

// AddOperationLatency records one latency sample for the named operation.
func (mc *MetricsCollector) AddOperationLatency(operation string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.latencies[operation] = append(mc.latencies[operation], duration)
}

// OperationCount returns how many samples were recorded for an operation.
func (mc *MetricsCollector) OperationCount(operation string) int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.latencies[operation])
}

// Uptime reports how long the collector (and the process) has been running.
func (mc *MetricsCollector) Uptime() time.Duration {
	return time.Since(mc.startedAt)
}
