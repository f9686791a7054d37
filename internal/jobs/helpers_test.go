package jobs

import (
	"context"
	"sync"

	"doorbelld/internal/models"
)

type mockMotion struct {
	mu       sync.Mutex
	received []models.RawEvent
	err      error
}

func (m *mockMotion) HandleNotification(_ context.Context, raw models.RawEvent) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = append(m.received, raw)
	return m.err == nil, m.err
}

func (m *mockMotion) OnMotionNotification(ctx context.Context, raw models.RawEvent) (*models.Event, error) {
	_, err := m.HandleNotification(ctx, raw)
	return nil, err
}

func (m *mockMotion) Received() []models.RawEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.RawEvent(nil), m.received...)
}

type mockAggregation struct {
	usage models.StorageUsage
	err   error
}

func (m *mockAggregation) HourlyHistogram([]models.DayEvents) []models.HourlyCount { return nil }
func (m *mockAggregation) AverageDailyMotion([]models.DayEvents) (string, error) {
	return "", models.ErrNoDays
}
func (m *mockAggregation) StorageUsage() (models.StorageUsage, error)  { return m.usage, m.err }
func (m *mockAggregation) CountMedia() (models.MediaCounts, error)     { return models.MediaCounts{}, nil }
func (m *mockAggregation) DiskUsage() (*models.DiskUsage, error)       { return nil, nil }
func (m *mockAggregation) Dashboard() (*models.Dashboard, error)       { return nil, nil }
func (m *mockAggregation) Resources() (*models.Resources, error)       { return nil, nil }
func (m *mockAggregation) SubscriptionSavings() (models.SubscriptionSavings, error) {
	return models.SubscriptionSavings{}, nil
}

type mockMqtt struct {
	mu      sync.Mutex
	topic   string
	handler func(topic string, payload []byte)
	err     error
}

func (m *mockMqtt) Publish(string, byte, bool, []byte) error { return nil }

func (m *mockMqtt) Subscribe(topic string, _ byte, handler func(topic string, payload []byte)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.topic = topic
	m.handler = handler
	return nil
}

func (m *mockMqtt) Close() {}

func (m *mockMqtt) deliver(payload string) {
	m.mu.Lock()
	h, topic := m.handler, m.topic
	m.mu.Unlock()
	h(topic, []byte(payload))
}
