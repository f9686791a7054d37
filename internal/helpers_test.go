package internal

import (
	"context"

	"doorbelld/internal/models"
)

// --- minimal mocks for routes and app tests ---

type routeTestEventService struct {
	deleted []string
}

func (m *routeTestEventService) ListEvents(models.Filter, models.Order, bool) ([]models.Event, error) {
	return []models.Event{}, nil
}
func (m *routeTestEventService) GetEvent(day, id string) (*models.Event, error) {
	return &models.Event{Day: day, Id: id}, nil
}
func (m *routeTestEventService) GetVideo(string, string) (*models.Media, error) {
	return nil, models.ErrNotFound
}
func (m *routeTestEventService) DeleteEvent(_ context.Context, day, id string) error {
	m.deleted = append(m.deleted, day+"/"+id)
	return nil
}

type routeTestAggregation struct{}

func (m *routeTestAggregation) HourlyHistogram([]models.DayEvents) []models.HourlyCount { return nil }
func (m *routeTestAggregation) AverageDailyMotion([]models.DayEvents) (string, error) {
	return "", models.ErrNoDays
}
func (m *routeTestAggregation) StorageUsage() (models.StorageUsage, error) {
	return models.StorageUsage{}, nil
}
func (m *routeTestAggregation) CountMedia() (models.MediaCounts, error) {
	return models.MediaCounts{}, nil
}
func (m *routeTestAggregation) SubscriptionSavings() (models.SubscriptionSavings, error) {
	return models.SubscriptionSavings{}, nil
}
func (m *routeTestAggregation) DiskUsage() (*models.DiskUsage, error) { return nil, nil }
func (m *routeTestAggregation) Dashboard() (*models.Dashboard, error) {
	return &models.Dashboard{TodayEvents: []models.Event{}, HourlyHistogram: []models.HourlyCount{}}, nil
}
func (m *routeTestAggregation) Resources() (*models.Resources, error) {
	return &models.Resources{}, nil
}

type routeTestMotion struct{}

func (m *routeTestMotion) HandleNotification(context.Context, models.RawEvent) (bool, error) {
	return true, nil
}
func (m *routeTestMotion) OnMotionNotification(context.Context, models.RawEvent) (*models.Event, error) {
	return nil, nil
}

type routeTestScheduler struct {
	inits, stops int
}

func (s *routeTestScheduler) Init()          { s.inits++ }
func (s *routeTestScheduler) Stop()          { s.stops++ }
func (s *routeTestScheduler) Restore() error { return nil }
