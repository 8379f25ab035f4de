package server

import (
	"sync/atomic"
	"time"
)

// Stats tracks service counters exposed on the /stats endpoint. All
// counters are updated atomically from connection goroutines.
type Stats struct {
	startTime time.Time

	activeConnections  int64
	totalConnections   uint64
	classifications    uint64
	estimates          uint64
	estimateDurationMs uint64
}

// NewStats creates a Stats tracker anchored at the current time
func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

// ConnectionOpened records a new client connection
func (s *Stats) ConnectionOpened() {
	atomic.AddInt64(&s.activeConnections, 1)
	atomic.AddUint64(&s.totalConnections, 1)
}

// ConnectionClosed records a client disconnect
func (s *Stats) ConnectionClosed() {
	atomic.AddInt64(&s.activeConnections, -1)
}

// RecordClassification counts a served classify_hand or classify_hole request
func (s *Stats) RecordClassification() {
	atomic.AddUint64(&s.classifications, 1)
}

// RecordEstimate counts a completed equity batch and its duration
func (s *Stats) RecordEstimate(elapsed time.Duration) {
	atomic.AddUint64(&s.estimates, 1)
	atomic.AddUint64(&s.estimateDurationMs, uint64(elapsed.Milliseconds()))
}

// ActiveConnections returns the number of currently open connections
func (s *Stats) ActiveConnections() int64 {
	return atomic.LoadInt64(&s.activeConnections)
}

// TotalConnections returns the number of connections accepted since start
func (s *Stats) TotalConnections() uint64 {
	return atomic.LoadUint64(&s.totalConnections)
}

// Classifications returns the number of classification requests served
func (s *Stats) Classifications() uint64 {
	return atomic.LoadUint64(&s.classifications)
}

// Estimates returns the number of completed equity batches
func (s *Stats) Estimates() uint64 {
	return atomic.LoadUint64(&s.estimates)
}

// AvgEstimateDuration returns the mean wall time of completed equity
// batches, or zero when none have run.
func (s *Stats) AvgEstimateDuration() time.Duration {
	n := atomic.LoadUint64(&s.estimates)
	if n == 0 {
		return 0
	}
	totalMs := atomic.LoadUint64(&s.estimateDurationMs)
	return time.Duration(totalMs/n) * time.Millisecond
}

// Uptime returns the time elapsed since the tracker was created
func (s *Stats) Uptime() time.Duration {
	return time.Since(s.startTime).Round(time.Second)
}
