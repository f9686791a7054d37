package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doorbelld/internal/controllers"
	"doorbelld/internal/mqttclient"
	"doorbelld/internal/notify"
	"doorbelld/internal/queue"
	"doorbelld/internal/storage"
	"doorbelld/internal/structures"
	"doorbelld/internal/testutil"
)

type appFixture struct {
	app       *App
	root      string
	queue     queue.TaskQueueInterface
	scheduler *routeTestScheduler
}

func newTestApp(t *testing.T) *appFixture {
	t.Helper()
	root := filepath.Join(t.TempDir(), "snapshots")
	conf := &structures.Config{
		AppName:   "doorbelld",
		WebServer: structures.Server{Host: "127.0.0.1", Port: 0},
		Store:     structures.StoreConfig{Root: root, Timezone: "UTC"},
		Media:     structures.MediaConfig{Mode: storage.MediaModeUrl, ServeStatic: true},
		Capture:   structures.CaptureConfig{QueueSize: 2},
	}
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	q := queue.NewTaskQueue(conf, logger, metrics)
	mqtt, err := mqttclient.NewClientProvider(conf, logger)
	require.NoError(t, err)
	scheduler := &routeTestScheduler{}

	health := controllers.NewHealthController(q, storage.NewMediaStore(conf))
	app := NewApp(health, notify.NewWebsocketHub(logger), scheduler, q, mqtt, conf, logger, newTestRouter(&routeTestEventService{}), metrics)
	return &appFixture{app: app, root: root, queue: q, scheduler: scheduler}
}

func (f *appFixture) do(method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	f.app.WebServer.Handler.ServeHTTP(rr, req)
	return rr
}

func TestApp_Health(t *testing.T) {
	f := newTestApp(t)
	rr := f.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}

func TestApp_ApiThroughOuterMux(t *testing.T) {
	f := newTestApp(t)

	rr := f.do(http.MethodGet, "/resources", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(http.MethodPost, "/dashboard", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = f.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestApp_MetricsDisabled(t *testing.T) {
	f := newTestApp(t)
	rr := f.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestApp_GzipsLargeResponses(t *testing.T) {
	f := newTestApp(t)
	require.NoError(t, os.MkdirAll(filepath.Join(f.root, "14-11-2023", "1"), 0o755))
	big := strings.Repeat("snapshot ", 1000)
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "14-11-2023", "1", "notes.txt"), []byte(big), 0o644))

	rr := f.do(http.MethodGet, "/snapshots/14-11-2023/1/notes.txt", http.Header{"Accept-Encoding": {"gzip"}})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}

func TestApp_StaticMediaHidesTempFiles(t *testing.T) {
	f := newTestApp(t)
	dir := filepath.Join(f.root, "14-11-2023", "1700000000000")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "video.mp4"), []byte("mp4"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".video.mp4.tmp"), []byte("partial"), 0o644))

	rr := f.do(http.MethodGet, "/snapshots/14-11-2023/1700000000000/video.mp4", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "mp4", rr.Body.String())

	rr = f.do(http.MethodGet, "/snapshots/14-11-2023/1700000000000/.video.mp4.tmp", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(http.MethodGet, "/snapshots/14-11-2023/1700000000000/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "video.mp4")
	assert.NotContains(t, rr.Body.String(), ".tmp")
}

func TestApp_ShutdownDrainsQueue(t *testing.T) {
	f := newTestApp(t)

	ran := make(chan struct{})
	_, err := f.queue.Enqueue("slow", func(context.Context) error {
		time.Sleep(20 * time.Millisecond)
		close(ran)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, f.app.Shutdown())
	select {
	case <-ran:
	default:
		t.Fatal("queued capture did not run before shutdown returned")
	}
	assert.Equal(t, 1, f.scheduler.stops)

	_, err = f.queue.Enqueue("late", func(context.Context) error { return nil })
	assert.Error(t, err)
}
