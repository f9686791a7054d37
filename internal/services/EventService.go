package services

import (
	"context"
	"path/filepath"

	"doorbelld/internal/models"
	"doorbelld/internal/providers"
	"doorbelld/internal/storage"
)

type EventServiceInterface interface {
	ListEvents(filter models.Filter, order models.Order, includeSnapshots bool) ([]models.Event, error)
	GetEvent(day, id string) (*models.Event, error)
	GetVideo(day, id string) (*models.Media, error)
	DeleteEvent(ctx context.Context, day, id string) error
}

type EventService struct {
	repo   storage.EventRepositoryInterface
	mirror storage.MirrorInterface
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func NewEventService(repo storage.EventRepositoryInterface, mirror storage.MirrorInterface, cache providers.CacheProviderInterface, logger providers.Logger) EventServiceInterface {
	return &EventService{repo: repo, mirror: mirror, cache: cache, logger: logger}
}

func (es *EventService) ListEvents(filter models.Filter, order models.Order, includeSnapshots bool) ([]models.Event, error) {
	days, err := es.repo.QueryByWindow(filter, includeSnapshots)
	if err != nil {
		return nil, err
	}
	return es.repo.Flatten(days, order), nil
}

func (es *EventService) GetEvent(day, id string) (*models.Event, error) {
	return es.repo.GetEvent(day, id)
}

// GetVideo returns the recording locator with its length when the file can
// be probed.
func (es *EventService) GetVideo(day, id string) (*models.Media, error) {
	video, err := es.repo.GetVideo(day, id)
	if err != nil {
		return nil, err
	}
	dir, err := es.repo.EventDir(day, id)
	if err != nil {
		return nil, err
	}
	secs, err := storage.ProbeVideoDuration(filepath.Join(dir, storage.VideoName))
	if err != nil {
		es.logger.Debugf(providers.TypeGet, "No duration for %s/%s: %s", day, id, err)
		return video, nil
	}
	video.DurationSeconds = secs
	return video, nil
}

func (es *EventService) DeleteEvent(ctx context.Context, day, id string) error {
	if err := es.repo.DeleteEvent(day, id); err != nil {
		return err
	}
	es.cache.Clear()
	if err := es.mirror.Remove(ctx, day, id); err != nil {
		es.logger.Warnf(providers.TypePost, "Mirror cleanup of %s/%s failed: %s", day, id, err)
	}
	es.logger.Infof(providers.TypePost, "Deleted event %s/%s", day, id)
	return nil
}
