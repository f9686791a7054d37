package services

import (
	"context"
	"fmt"
	"time"

	"doorbelld/internal/calendar"
	"doorbelld/internal/models"
	"doorbelld/internal/notify"
	"doorbelld/internal/providers"
	"doorbelld/internal/queue"
	"doorbelld/internal/storage"
	"doorbelld/internal/structures"
)

type MotionServiceInterface interface {
	HandleNotification(ctx context.Context, raw models.RawEvent) (bool, error)
	OnMotionNotification(ctx context.Context, raw models.RawEvent) (*models.Event, error)
}

type captureResult struct {
	event *models.Event
	err   error
}

// MotionService is the entry point for motion notifications from any
// source: dedup first, then one queued capture per accepted id.
type MotionService struct {
	kind    string
	video   bool
	gate    DedupGateInterface
	capture CaptureServiceInterface
	queue   queue.TaskQueueInterface
	sink    notify.Sink
	cache   providers.CacheProviderInterface
	cal     *calendar.Calendar
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	after   func(d time.Duration, f func()) *time.Timer
}

func NewMotionService(conf *structures.Config, gate DedupGateInterface, capture CaptureServiceInterface, q queue.TaskQueueInterface, sink notify.Sink, cache providers.CacheProviderInterface, cal *calendar.Calendar, logger providers.Logger, metrics providers.MetricsProviderInterface) MotionServiceInterface {
	return &MotionService{
		kind:    conf.Motion.Kind,
		video:   conf.Capture.VideoEnabled,
		gate:    gate,
		capture: capture,
		queue:   q,
		sink:    sink,
		cache:   cache,
		cal:     cal,
		logger:  logger,
		metrics: metrics,
		after:   time.AfterFunc,
	}
}

// HandleNotification returns as soon as the capture is queued. accepted is
// false for ignored kinds, duplicates and the baseline id.
func (ms *MotionService) HandleNotification(_ context.Context, raw models.RawEvent) (bool, error) {
	result, err := ms.submit(raw)
	return result != nil, err
}

// OnMotionNotification waits for the queued capture and returns the stored
// event, or nil when the notification did not lead to a capture.
func (ms *MotionService) OnMotionNotification(ctx context.Context, raw models.RawEvent) (*models.Event, error) {
	result, err := ms.submit(raw)
	if err != nil || result == nil {
		return nil, err
	}
	select {
	case r := <-result:
		return r.event, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (ms *MotionService) submit(raw models.RawEvent) (<-chan captureResult, error) {
	if raw.Id == "" {
		return nil, fmt.Errorf("%w: empty raw event id", models.ErrInvalidKey)
	}
	if raw.Kind != "" && ms.kind != "" && raw.Kind != ms.kind {
		ms.metrics.IncNotifications(providers.DecisionIgnored)
		ms.logger.Debugf(providers.TypeMotion, "Ignoring %s event %s", raw.Kind, raw.Id)
		return nil, nil
	}

	decision, err := ms.gate.Decide(raw.Id)
	if err != nil {
		return nil, err
	}
	ms.metrics.IncNotifications(decision.String())
	if decision != DecisionCapture {
		return nil, nil
	}

	result := make(chan captureResult, 1)
	_, err = ms.queue.Enqueue("capture "+raw.Id, func(ctx context.Context) error {
		capturedAt := ms.cal.Now()
		event, err := ms.capture.Capture(ctx, capturedAt)
		if err != nil {
			result <- captureResult{err: err}
			return err
		}
		ms.cache.Clear()
		// listings cached before the video settles still say hasVideo=false
		if wait := storage.VideoSettleTime - ms.cal.Now().Sub(capturedAt); ms.video && wait > 0 {
			ms.after(wait, ms.cache.Clear)
		}
		if err := ms.sink.Notify(ctx, event); err != nil {
			ms.logger.Warnf(providers.TypeMotion, "Notify for %s/%s failed: %s", event.Day, event.Id, err)
		}
		result <- captureResult{event: event}
		return nil
	})
	if err != nil {
		ms.logger.Errorf(providers.TypeMotion, "Dropping event %s: %s", raw.Id, err)
		return nil, err
	}
	ms.logger.Infof(providers.TypeMotion, "Motion event %s accepted", raw.Id)
	return result, nil
}
