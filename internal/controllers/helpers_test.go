package controllers

import (
	"context"
	"time"

	"doorbelld/internal/calendar"
	"doorbelld/internal/models"
	"doorbelld/internal/queue"
	"doorbelld/internal/storage"
)

// --- local mocks (scoped to controller tests) ---

// 14-11-2023 22:13:20 UTC
var testNow = time.UnixMilli(1700000000000).UTC()

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func testCalendar(clock *testClock) *calendar.Calendar {
	cal, err := calendar.NewWithClock("UTC", clock.Now)
	if err != nil {
		panic(err)
	}
	return cal
}

type mockEventService struct {
	events     []models.Event
	event      *models.Event
	video      *models.Media
	err        error
	listCalls  int
	lastFilter models.Filter
	lastOrder  models.Order
	lastInc    bool
	deleted    []string
}

func (m *mockEventService) ListEvents(filter models.Filter, order models.Order, include bool) ([]models.Event, error) {
	m.listCalls++
	m.lastFilter, m.lastOrder, m.lastInc = filter, order, include
	return m.events, m.err
}

func (m *mockEventService) GetEvent(day, id string) (*models.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) GetVideo(day, id string) (*models.Media, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.video, nil
}

func (m *mockEventService) DeleteEvent(_ context.Context, day, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, day+"/"+id)
	return nil
}

type mockAggregation struct {
	dashboard *models.Dashboard
	resources *models.Resources
	err       error
	calls     int
}

func (m *mockAggregation) HourlyHistogram([]models.DayEvents) []models.HourlyCount { return nil }
func (m *mockAggregation) AverageDailyMotion([]models.DayEvents) (string, error) {
	return "", models.ErrNoDays
}
func (m *mockAggregation) StorageUsage() (models.StorageUsage, error) {
	return models.StorageUsage{}, nil
}
func (m *mockAggregation) CountMedia() (models.MediaCounts, error) {
	return models.MediaCounts{}, nil
}
func (m *mockAggregation) SubscriptionSavings() (models.SubscriptionSavings, error) {
	return models.SubscriptionSavings{}, nil
}
func (m *mockAggregation) DiskUsage() (*models.DiskUsage, error) { return nil, nil }

func (m *mockAggregation) Dashboard() (*models.Dashboard, error) {
	m.calls++
	return m.dashboard, m.err
}

func (m *mockAggregation) Resources() (*models.Resources, error) {
	m.calls++
	return m.resources, m.err
}

type mockMotion struct {
	received []models.RawEvent
	accepted bool
	err      error
}

func (m *mockMotion) HandleNotification(_ context.Context, raw models.RawEvent) (bool, error) {
	m.received = append(m.received, raw)
	return m.accepted, m.err
}

func (m *mockMotion) OnMotionNotification(context.Context, models.RawEvent) (*models.Event, error) {
	return nil, m.err
}

type mockQueue struct {
	pending int64
}

func (m *mockQueue) Enqueue(string, queue.Task) (<-chan error, error) {
	return nil, models.ErrQueueClosed
}
func (m *mockQueue) Pending() int64                 { return m.pending }
func (m *mockQueue) Shutdown(context.Context) error { return nil }

type mockMedia struct {
	storage.MediaStoreInterface
	root string
}

func (m *mockMedia) Root() string { return m.root }
