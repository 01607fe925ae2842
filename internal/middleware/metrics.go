package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartquiz/smartquiz-backend/internal/model"
)

// Metrics collects in-process request counters keyed by
// "METHOD:path:status": request counts, latency sums, and error counts.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	latencySum   map[string]float64
	errorCount   map[string]int64
}

// NewMetrics creates an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		latencySum:   make(map[string]float64),
		errorCount:   make(map[string]int64),
	}
}

// Middleware returns a Gin middleware that records every request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		key := fmt.Sprintf("%s:%s:%d", c.Request.Method, c.FullPath(), c.Writer.Status())
		latency := time.Since(start).Seconds()

		m.mu.Lock()
		m.requestCount[key]++
		m.latencySum[key] += latency
		if c.Writer.Status() >= 400 {
			m.errorCount[key]++
		}
		m.mu.Unlock()
	}
}

// Snapshot returns a copy of the collected metrics with average
// latencies computed per key.
func (m *Metrics) Snapshot() model.LocalMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := model.LocalMetrics{
		RequestCount:   make(map[string]int64, len(m.requestCount)),
		AverageLatency: make(map[string]float64, len(m.latencySum)),
		ErrorCount:     make(map[string]int64, len(m.errorCount)),
	}
	var latencyTotal float64
	for k, v := range m.requestCount {
		snap.RequestCount[k] = v
		snap.Summary.TotalRequests += v
		latencyTotal += m.latencySum[k]
		if v > 0 {
			snap.AverageLatency[k] = m.latencySum[k] / float64(v)
		}
	}
	for k, v := range m.errorCount {
		snap.ErrorCount[k] = v
		snap.Summary.TotalErrors += v
	}
	if snap.Summary.TotalRequests > 0 {
		snap.Summary.AverageLatency = latencyTotal / float64(snap.Summary.TotalRequests)
		snap.Summary.ErrorRate = float64(snap.Summary.TotalErrors) / float64(snap.Summary.TotalRequests)
	}
	return snap
}
