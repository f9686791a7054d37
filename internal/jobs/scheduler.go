package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"doorbelld/internal/camera"
	"doorbelld/internal/jobs/interfaces"
	"doorbelld/internal/providers"
	"doorbelld/internal/services"
	"doorbelld/internal/storage"
	"doorbelld/internal/structures"
)

const (
	StoragePartitionToday = "today"
	StoragePartitionRest  = "rest"

	storageRefreshInterval = time.Minute
	defaultPollTimeout     = 10 * time.Second
)

// Scheduler drives the background motion sources and housekeeping: camera
// polling, the MQTT listener and the storage gauges.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	camera      camera.Camera
	motion      services.MotionServiceInterface
	aggregation services.AggregationServiceInterface
	repo        storage.EventRepositoryInterface
	cursor      storage.CursorStoreInterface
	listener    *MqttListener
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	pollMu      sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	if s.config.Camera.EventsUrl != "" && s.config.Motion.PollInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Motion.PollInterval), s.PollCamera)
		s.logger.Infof(providers.TypeMotion, "Polling camera events every %s", s.config.Motion.PollInterval)
	}

	s.cron.AddFunc(gron.Every(storageRefreshInterval), s.RefreshStorageGauges)
	s.cron.Start()

	if err := s.listener.Start(); err != nil {
		s.logger.Errorf(providers.TypeMotion, "MQTT subscribe failed: %s", err)
	}
	s.RefreshStorageGauges()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore prepares the store root and reports where dedup resumes from.
func (s *Scheduler) Restore() error {
	if err := s.repo.EnsureRoot(); err != nil {
		return err
	}
	cursor, err := s.cursor.Load()
	if err != nil {
		return err
	}
	if cursor.LastTrackedEventId == "" {
		s.logger.Infof(providers.TypeApp, "No tracked event yet, next notification sets the baseline")
	} else {
		s.logger.Infof(providers.TypeApp, "Resuming after event %s", cursor.LastTrackedEventId)
	}
	return nil
}

// PollCamera asks the camera for its newest motion event and feeds it to the
// motion service. A poll still in flight makes the next tick a no-op.
func (s *Scheduler) PollCamera() {
	if !s.pollMu.TryLock() {
		return
	}
	defer s.pollMu.Unlock()

	timeout := s.config.Camera.Timeout
	if timeout <= 0 {
		timeout = defaultPollTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	raw, err := s.camera.LatestMotion(ctx, s.config.Motion.Kind)
	if err != nil {
		s.logger.Warnf(providers.TypeMotion, "Camera poll failed: %s", err)
		return
	}
	if raw == nil {
		return
	}
	if _, err := s.motion.HandleNotification(ctx, *raw); err != nil {
		s.logger.Errorf(providers.TypeMotion, "Motion event %s: %s", raw.Id, err)
	}
}

func (s *Scheduler) RefreshStorageGauges() {
	usage, err := s.aggregation.StorageUsage()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Storage usage: %s", err)
		return
	}
	s.metrics.SetStorageMegabytes(StoragePartitionToday, usage.Today)
	s.metrics.SetStorageMegabytes(StoragePartitionRest, usage.Rest)
}

func NewScheduler(config *structures.Config, logger providers.Logger, cam camera.Camera, motion services.MotionServiceInterface, aggregation services.AggregationServiceInterface, repo storage.EventRepositoryInterface, cursor storage.CursorStoreInterface, listener *MqttListener, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		camera:      cam,
		motion:      motion,
		aggregation: aggregation,
		repo:        repo,
		cursor:      cursor,
		listener:    listener,
		metrics:     metrics,
	}
}
