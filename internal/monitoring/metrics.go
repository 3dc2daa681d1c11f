package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds application counters. All counters are monotonic and
// updated atomically; maps take the mutex.
type Metrics struct {
	RequestCount int64
	ErrorCount   int64

	AnalysisCount       int64
	NewsItemsFiltered   int64
	NewsItemsScored     int64
	NewsItemsDropped    int64
	NotificationsSent   int64
	NotificationsHeld   int64
	DocumentsIndexed    int64
	AverageResponseTime int64 // nanoseconds

	StartTime time.Time

	AnalysisByLevel map[string]int64
	ExternalAPICall map[string]int64
	ExternalAPIFail map[string]int64
	mu              sync.RWMutex
}

// NewMetrics creates a metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:       time.Now(),
		AnalysisByLevel: make(map[string]int64),
		ExternalAPICall: make(map[string]int64),
		ExternalAPIFail: make(map[string]int64),
	}
}

// IncrementRequest increments the request count.
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count.
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// RecordAnalysis records a completed pipeline run.
func (m *Metrics) RecordAnalysis(level string, filtered, scored, dropped int) {
	atomic.AddInt64(&m.AnalysisCount, 1)
	atomic.AddInt64(&m.NewsItemsFiltered, int64(filtered))
	atomic.AddInt64(&m.NewsItemsScored, int64(scored))
	atomic.AddInt64(&m.NewsItemsDropped, int64(dropped))

	m.mu.Lock()
	m.AnalysisByLevel[level]++
	m.mu.Unlock()
}

// RecordNotification records a notification gate outcome.
func (m *Metrics) RecordNotification(sent bool) {
	if sent {
		atomic.AddInt64(&m.NotificationsSent, 1)
		return
	}
	atomic.AddInt64(&m.NotificationsHeld, 1)
}

// RecordDocumentIndexed records a successful document indexing.
func (m *Metrics) RecordDocumentIndexed() {
	atomic.AddInt64(&m.DocumentsIndexed, 1)
}

// RecordExternalAPICall records a collaborator call and its outcome.
func (m *Metrics) RecordExternalAPICall(apiName string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExternalAPICall[apiName]++
	if !success {
		m.ExternalAPIFail[apiName]++
	}
}

// RecordResponseTime folds a response time into the running average.
func (m *Metrics) RecordResponseTime(duration time.Duration) {
	current := atomic.LoadInt64(&m.AverageResponseTime)
	atomic.StoreInt64(&m.AverageResponseTime, (current+duration.Nanoseconds())/2)
}

// GetStats returns a snapshot for the metrics endpoint.
func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	byLevel := make(map[string]int64, len(m.AnalysisByLevel))
	for k, v := range m.AnalysisByLevel {
		byLevel[k] = v
	}
	apiCalls := make(map[string]int64, len(m.ExternalAPICall))
	for k, v := range m.ExternalAPICall {
		apiCalls[k] = v
	}
	apiFails := make(map[string]int64, len(m.ExternalAPIFail))
	for k, v := range m.ExternalAPIFail {
		apiFails[k] = v
	}
	m.mu.RUnlock()

	return map[string]interface{}{
		"uptime_seconds":         time.Since(m.StartTime).Seconds(),
		"request_count":          atomic.LoadInt64(&m.RequestCount),
		"error_count":            atomic.LoadInt64(&m.ErrorCount),
		"analysis_count":         atomic.LoadInt64(&m.AnalysisCount),
		"analysis_by_level":      byLevel,
		"news_items_filtered":    atomic.LoadInt64(&m.NewsItemsFiltered),
		"news_items_scored":      atomic.LoadInt64(&m.NewsItemsScored),
		"news_items_dropped":     atomic.LoadInt64(&m.NewsItemsDropped),
		"notifications_sent":     atomic.LoadInt64(&m.NotificationsSent),
		"notifications_held":     atomic.LoadInt64(&m.NotificationsHeld),
		"documents_indexed":      atomic.LoadInt64(&m.DocumentsIndexed),
		"external_api_calls":     apiCalls,
		"external_api_failures":  apiFails,
		"avg_response_time_ms":   atomic.LoadInt64(&m.AverageResponseTime) / int64(time.Millisecond),
	}
}
