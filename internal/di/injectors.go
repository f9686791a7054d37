//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"doorbelld/internal"
	"doorbelld/internal/calendar"
	"doorbelld/internal/camera"
	"doorbelld/internal/controllers"
	"doorbelld/internal/jobs"
	"doorbelld/internal/mqttclient"
	"doorbelld/internal/notify"
	"doorbelld/internal/providers"
	"doorbelld/internal/queue"
	"doorbelld/internal/services"
	"doorbelld/internal/storage"
	"doorbelld/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		calendar.NewCalendar,
		storage.NewMediaStore,
		storage.NewEventRepository,
		storage.NewCursorStore,
		storage.NewMirror,
		camera.NewCamera,
		queue.NewTaskQueue,
		mqttclient.NewClientProvider,
		notify.NewWebsocketHub,
		notify.NewSink,

		services.NewDedupGate,
		services.NewCaptureService,
		services.NewEventService,
		services.NewAggregationService,
		services.NewMotionService,

		jobs.NewMqttListener,
		jobs.NewScheduler,

		controllers.NewEventController,
		controllers.NewDashboardController,
		controllers.NewMotionController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
