package services

import (
	"context"
	"fmt"
	"time"

	"doorbelld/internal/calendar"
	"doorbelld/internal/camera"
	"doorbelld/internal/models"
	"doorbelld/internal/providers"
	"doorbelld/internal/storage"
	"doorbelld/internal/structures"
)

type CaptureServiceInterface interface {
	Capture(ctx context.Context, t time.Time) (*models.Event, error)
}

type CaptureService struct {
	conf    structures.CaptureConfig
	repo    storage.EventRepositoryInterface
	media   storage.MediaStoreInterface
	camera  camera.Camera
	mirror  storage.MirrorInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewCaptureService(conf *structures.Config, repo storage.EventRepositoryInterface, media storage.MediaStoreInterface, cam camera.Camera, mirror storage.MirrorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) CaptureServiceInterface {
	return &CaptureService{
		conf:    conf.Capture,
		repo:    repo,
		media:   media,
		camera:  cam,
		mirror:  mirror,
		logger:  logger,
		metrics: metrics,
	}
}

// Capture turns a motion trigger at t into a stored event. Snapshot
// failures are logged and skipped; a failed recording fails the capture and
// leaves whatever was already written on disk.
func (s *CaptureService) Capture(ctx context.Context, t time.Time) (*models.Event, error) {
	start := time.Now()

	if err := s.repo.EnsureRoot(); err != nil {
		return nil, fmt.Errorf("%w: store root: %w", models.ErrCaptureFailed, err)
	}
	day, err := s.repo.EnsureDayBucket(t)
	if err != nil {
		return nil, fmt.Errorf("%w: day bucket: %w", models.ErrCaptureFailed, err)
	}
	id := calendar.EventId(t)
	dir, err := s.repo.EnsureEventDir(day, id)
	if err != nil {
		return nil, fmt.Errorf("%w: event dir: %w", models.ErrCaptureFailed, err)
	}

	saved := s.captureSnapshots(ctx, dir, id)

	if s.conf.VideoEnabled {
		if err := s.captureVideo(ctx, dir); err != nil {
			s.metrics.IncCaptures(providers.CaptureOutcomeVideoFailed)
			return nil, fmt.Errorf("%w: %s/%s: %w", models.ErrCaptureFailed, day, id, err)
		}
	}

	event, err := s.repo.GetEvent(day, id)
	if err != nil {
		return nil, err
	}

	if err := s.mirror.Upload(ctx, day, id, dir); err != nil {
		s.logger.Warnf(providers.TypeCapture, "Mirror upload of %s/%s failed: %s", day, id, err)
	}

	outcome := providers.CaptureOutcomeOk
	if saved == 0 {
		outcome = providers.CaptureOutcomeSnapshotError
	}
	s.metrics.IncCaptures(outcome)
	s.metrics.ObserveCaptureDuration(time.Since(start))
	s.logger.Infof(providers.TypeCapture, "Captured %s/%s: %d snapshot(s), video=%t", day, id, saved, s.conf.VideoEnabled)

	return event, nil
}

func (s *CaptureService) captureSnapshots(ctx context.Context, dir, id string) int {
	attempts := max(s.conf.Snapshots, 1)
	saved := 0
	for i := 0; i < attempts; i++ {
		if i > 0 && !sleepCtx(ctx, s.conf.SnapshotInterval) {
			s.logger.Warnf(providers.TypeCapture, "Snapshots for %s cut short: %s", id, ctx.Err())
			break
		}
		if err := s.captureSnapshot(ctx, dir, fmt.Sprintf("%s-%d", id, i)); err != nil {
			s.logger.Errorf(providers.TypeCapture, "Snapshot %d for %s failed: %s", i, id, err)
			continue
		}
		saved++
	}
	return saved
}

func (s *CaptureService) captureSnapshot(ctx context.Context, dir, name string) error {
	ctx, cancel := withOptionalTimeout(ctx, s.conf.SnapshotTimeout)
	defer cancel()

	data, err := s.camera.TakeSnapshot(ctx)
	if err != nil {
		return err
	}
	_, err = s.media.WriteImage(dir, name, data)
	return err
}

func (s *CaptureService) captureVideo(ctx context.Context, dir string) error {
	ctx, cancel := withOptionalTimeout(ctx, s.conf.VideoTimeout)
	defer cancel()

	_, err := s.media.RecordVideo(ctx, dir, s.camera.RecordVideo, s.conf.VideoDuration)
	return err
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
