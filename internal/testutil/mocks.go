package testutil

import (
	"context"
	"sync"
	"time"

	"doorbelld/internal/models"
	"doorbelld/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu         sync.Mutex
	Data       map[string][]byte
	ClearCalls int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
	m.ClearCalls++
}

func (m *MockCache) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ClearCalls
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu            sync.Mutex
	Captures      map[string]int
	Notifications map[string]int
	Pending       []int64
	Storage       map[string]float64
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Captures:      make(map[string]int),
		Notifications: make(map[string]int),
		Storage:       make(map[string]float64),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits(_ string)                           {}
func (m *MockMetrics) IncCacheMisses(_ string)                         {}
func (m *MockMetrics) IncCacheInvalidations()                          {}
func (m *MockMetrics) ObserveCaptureDuration(_ time.Duration)          {}

func (m *MockMetrics) IncCaptures(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Captures[outcome]++
}

func (m *MockMetrics) IncNotifications(decision string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications[decision]++
}

func (m *MockMetrics) SetQueuePending(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pending = append(m.Pending, n)
}

func (m *MockMetrics) SetStorageMegabytes(partition string, mb float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Storage[partition] = mb
}

func (m *MockMetrics) CaptureCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Captures[outcome]
}

func (m *MockMetrics) NotificationCount(decision string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Notifications[decision]
}

func (m *MockMetrics) StorageValue(partition string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Storage[partition]
	return v, ok
}

// MockCamera implements camera.Camera with injectable behavior. Without a
// function set, snapshots and videos return fixed bytes and there is no
// pending motion.
type MockCamera struct {
	mu            sync.Mutex
	SnapshotFn    func(ctx context.Context) ([]byte, error)
	VideoFn       func(ctx context.Context, duration time.Duration) ([]byte, error)
	MotionFn      func(ctx context.Context, kind string) (*models.RawEvent, error)
	SnapshotCalls []time.Time
	VideoCalls    int
	MotionCalls   int
}

func (m *MockCamera) TakeSnapshot(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	m.SnapshotCalls = append(m.SnapshotCalls, time.Now())
	fn := m.SnapshotFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return []byte("snapshot"), nil
}

func (m *MockCamera) RecordVideo(ctx context.Context, duration time.Duration) ([]byte, error) {
	m.mu.Lock()
	m.VideoCalls++
	fn := m.VideoFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, duration)
	}
	return []byte("video"), nil
}

func (m *MockCamera) LatestMotion(ctx context.Context, kind string) (*models.RawEvent, error) {
	m.mu.Lock()
	m.MotionCalls++
	fn := m.MotionFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, kind)
	}
	return nil, nil
}

func (m *MockCamera) Snapshots() []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Time(nil), m.SnapshotCalls...)
}

// MockSink records every pushed event.
type MockSink struct {
	mu     sync.Mutex
	Events []*models.Event
	Err    error
}

func (m *MockSink) Notify(_ context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return m.Err
}

func (m *MockSink) Received() []*models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Event(nil), m.Events...)
}

// MockMirror implements storage.MirrorInterface.
type MockMirror struct {
	mu        sync.Mutex
	Uploads   []string
	Removes   []string
	UploadErr error
	RemoveErr error
}

func (m *MockMirror) Upload(_ context.Context, day, id, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploads = append(m.Uploads, day+"/"+id)
	return m.UploadErr
}

func (m *MockMirror) Remove(_ context.Context, day, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removes = append(m.Removes, day+"/"+id)
	return m.RemoveErr
}
