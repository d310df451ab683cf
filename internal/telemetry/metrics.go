// Package telemetry provides metrics collection and reporting
// for monitoring the Aristotle gateway.
package telemetry

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// MetricsCollector provides a thread-safe interface for collecting
// application metrics for monitoring and troubleshooting.
type MetricsCollector struct {
	counters   map[string]int64
	timers     map[string][]time.Duration
	latestTime map[string]time.Time
	mu         sync.RWMutex
}

// GatewayMetrics defines constants for metrics related to the proof gateway
const (
	// Submission counts by input type
	MetricSubmissionsLean     = "gateway.submissions.formal_lean"
	MetricSubmissionsInformal = "gateway.submissions.informal"

	// Upstream call outcomes
	MetricUpstreamSuccess = "gateway.upstream.success"
	MetricUpstreamFailure = "gateway.upstream.failure"

	// Status queries and solution handling
	MetricStatusQueries      = "gateway.status_queries"
	MetricSolutionDownloads  = "gateway.solution_downloads"
	MetricSolutionsPersisted = "gateway.solutions_persisted"

	// Listing requests
	MetricListRequests = "gateway.list_requests"

	// Ledger failures (logged, never surfaced to callers)
	MetricLedgerFailures = "gateway.ledger_failures"

	// Upstream round-trip times
	MetricUpstreamTime = "gateway.upstream.response_time"

	// Timestamps
	MetricLastSubmission = "gateway.last_submission"
)

// NewMetricsCollector creates a new MetricsCollector instance
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		counters:   make(map[string]int64),
		timers:     make(map[string][]time.Duration),
		latestTime: make(map[string]time.Time),
	}
}

// IncrementCounter increments a named counter by the specified amount
func (m *MetricsCollector) IncrementCounter(name string, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[name] += amount
}

// RecordTimer records a duration for the specified timer
func (m *MetricsCollector) RecordTimer(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timers[name] = append(m.timers[name], duration)

	// Limit the number of stored durations to avoid unbounded growth
	if len(m.timers[name]) > 100 {
		m.timers[name] = m.timers[name][1:]
	}
}

// RecordTimestamp records the current time for the specified event
func (m *MetricsCollector) RecordTimestamp(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.latestTime[name] = time.Now()
}

// GetCounter retrieves the current value of a counter
func (m *MetricsCollector) GetCounter(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.counters[name]
}

// GetTimerAverage calculates the average duration for a timer
func (m *MetricsCollector) GetTimerAverage(name string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return timerAverage(m.timers[name])
}

// GetTimeSince calculates the time elapsed since a recorded timestamp
func (m *MetricsCollector) GetTimeSince(name string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	timestamp, exists := m.latestTime[name]
	if !exists {
		return 0
	}

	return time.Since(timestamp)
}

// GetReport generates a report of all collected metrics
func (m *MetricsCollector) GetReport() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	report := "Metrics Report:\n"
	report += "==============\n\n"

	report += "Counters:\n"
	for _, name := range sortedKeys(m.counters) {
		report += fmt.Sprintf("  %s: %d\n", name, m.counters[name])
	}

	report += "\nTimers (avg):\n"
	for _, name := range sortedKeys(m.timers) {
		report += fmt.Sprintf("  %s: avg=%v count=%d\n",
			name, timerAverage(m.timers[name]), len(m.timers[name]))
	}

	report += "\nTime Since:\n"
	for _, name := range sortedKeys(m.latestTime) {
		timestamp := m.latestTime[name]
		report += fmt.Sprintf("  %s: %v ago (%s)\n",
			name, time.Since(timestamp), timestamp.Format(time.RFC3339))
	}

	return report
}

// Reset clears all collected metrics
func (m *MetricsCollector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters = make(map[string]int64)
	m.timers = make(map[string][]time.Duration)
	m.latestTime = make(map[string]time.Time)
}

// timerAverage computes the mean of durations; callers hold the lock.
func timerAverage(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range durations {
		total += d
	}

	return total / time.Duration(len(durations))
}

// sortedKeys returns the map keys in stable order for reporting.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
