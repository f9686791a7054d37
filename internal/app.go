package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"doorbelld/internal/controllers"
	"doorbelld/internal/jobs/interfaces"
	"doorbelld/internal/mqttclient"
	"doorbelld/internal/notify"
	"doorbelld/internal/providers"
	"doorbelld/internal/queue"
	"doorbelld/internal/structures"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	WebServer *http.Server
	conf      *structures.Config
	logger    providers.Logger
	scheduler interfaces.SchedulerInterface
	queue     queue.TaskQueueInterface
	hub       *notify.WebsocketHub
	mqtt      mqttclient.Client
}

func NewApp(healthController *controllers.HealthController, hub *notify.WebsocketHub, scheduler interfaces.SchedulerInterface, q queue.TaskQueueInterface, mqtt mqttclient.Client, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Pattern(), route.Handler)
	}

	// Wrap API routes with metrics middleware and gzip; base64 snapshots
	// compress well
	instrumentedAPI := providers.MetricsMiddleware(metrics, gzhttp.GzipHandler(apiMux))

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	mux.Handle("GET /ws", hub)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	if conf.Media.ServeStatic {
		prefix := "/" + filepath.Base(filepath.Clean(conf.Store.Root)) + "/"
		mux.Handle("GET "+prefix, gzhttp.GzipHandler(staticMediaHandler(conf.Store.Root, prefix)))
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:        conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:     mux,
			ReadTimeout: 5 * time.Second,
			// video payloads can be large
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:      conf,
		logger:    logger,
		scheduler: scheduler,
		queue:     q,
		hub:       hub,
		mqtt:      mqtt,
	}
}

// Run serves until SIGINT/SIGTERM, then stops the motion sources, the HTTP
// server and drains queued captures before closing the notification sinks.
func (app *App) Run() error {
	logger := app.logger
	logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)
	if err := app.scheduler.Restore(); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	app.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if err := app.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	logger.Close()
	return runErr
}

func (app *App) Shutdown() error {
	app.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := app.WebServer.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := app.queue.Shutdown(ctx); err != nil {
		app.logger.Errorf(providers.TypeApp, "Capture queue: %s", err)
		errs = append(errs, err)
	}
	app.hub.Close()
	app.mqtt.Close()

	if len(errs) == 0 {
		app.logger.Infof(providers.TypeApp, "gracefully stopped")
	}
	return errors.Join(errs...)
}
