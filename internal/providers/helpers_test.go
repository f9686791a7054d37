package providers

import "time"

// local mocks to avoid an import cycle with testutil

type providerTestLogger struct{}

func (m *providerTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *providerTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *providerTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *providerTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *providerTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *providerTestLogger) Close()                                        {}

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
	views           []string
	clears          int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits(view string) {
	m.hits++
	m.views = append(m.views, view)
}
func (m *mockMetrics) IncCacheMisses(view string) {
	m.misses++
	m.views = append(m.views, view)
}
func (m *mockMetrics) IncCacheInvalidations()                           { m.clears++ }
func (m *mockMetrics) IncCaptures(_ string)                             {}
func (m *mockMetrics) ObserveCaptureDuration(_ time.Duration)           {}
func (m *mockMetrics) IncNotifications(_ string)                        {}
func (m *mockMetrics) SetQueuePending(_ int64)                          {}
func (m *mockMetrics) SetStorageMegabytes(_ string, _ float64)          {}
