package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordExternalAPICall(t *testing.T) {
	m := NewMetrics()

	m.RecordExternalAPICall("openai", true)
	m.RecordExternalAPICall("openai", false)
	m.RecordExternalAPICall("news_source", true)

	assert.Equal(t, int64(2), m.ExternalAPICall["openai"])
	assert.Equal(t, int64(1), m.ExternalAPIFail["openai"])
	assert.Equal(t, int64(1), m.ExternalAPICall["news_source"])
	assert.Zero(t, m.ExternalAPIFail["news_source"])
}

func TestGetStatsIncludesExternalAPICounters(t *testing.T) {
	m := NewMetrics()
	m.RecordExternalAPICall("openai", false)
	m.RecordAnalysis("High", 3, 2, 1)

	stats := m.GetStats()

	calls, ok := stats["external_api_calls"].(map[string]int64)
	require.True(t, ok)
	assert.Equal(t, int64(1), calls["openai"])

	fails, ok := stats["external_api_failures"].(map[string]int64)
	require.True(t, ok)
	assert.Equal(t, int64(1), fails["openai"])

	assert.Equal(t, int64(1), stats["analysis_count"])
	assert.Equal(t, int64(1), stats["news_items_dropped"])
}

func TestRecordNotification(t *testing.T) {
	m := NewMetrics()

	m.RecordNotification(true)
	m.RecordNotification(false)
	m.RecordNotification(false)

	assert.Equal(t, int64(1), m.NotificationsSent)
	assert.Equal(t, int64(2), m.NotificationsHeld)
}
