package camera

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doorbelld/internal/providers"
	"doorbelld/internal/structures"
)

type cameraTestLogger struct{}

func (m *cameraTestLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *cameraTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *cameraTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *cameraTestLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *cameraTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *cameraTestLogger) Close()                                                  {}

func newBridge(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ring" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("webp"))
	})
	mux.HandleFunc("/video", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp4:" + r.URL.Query().Get("duration")))
	})
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"events":[{"ding_id_str":"7301","kind":"` + r.URL.Query().Get("kind") + `"}]}`))
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":[]}`))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestCamera(base string, mutate func(c *structures.CameraConfig)) Camera {
	conf := &structures.Config{Camera: structures.CameraConfig{
		SnapshotUrl: base + "/snapshot",
		VideoUrl:    base + "/video",
		EventsUrl:   base + "/events",
		Username:    "ring",
		Password:    "secret",
		Timeout:     2 * time.Second,
	}}
	if mutate != nil {
		mutate(&conf.Camera)
	}
	return NewCamera(conf, &cameraTestLogger{})
}

func TestHTTPCamera_TakeSnapshot(t *testing.T) {
	srv := newBridge(t)
	cam := newTestCamera(srv.URL, nil)

	data, err := cam.TakeSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("webp"), data)
}

func TestHTTPCamera_TakeSnapshot_BadCredentials(t *testing.T) {
	srv := newBridge(t)
	cam := newTestCamera(srv.URL, func(c *structures.CameraConfig) { c.Password = "wrong" })

	_, err := cam.TakeSnapshot(context.Background())
	assert.ErrorContains(t, err, "401")
}

func TestHTTPCamera_RecordVideo_PassesDuration(t *testing.T) {
	srv := newBridge(t)
	cam := newTestCamera(srv.URL, nil)

	data, err := cam.RecordVideo(context.Background(), 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "mp4:30", string(data))
}

func TestHTTPCamera_LatestMotion(t *testing.T) {
	srv := newBridge(t)
	cam := newTestCamera(srv.URL, nil)

	ev, err := cam.LatestMotion(context.Background(), "motion")
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "7301", ev.Id)
	assert.Equal(t, "motion", ev.Kind)
}

func TestHTTPCamera_LatestMotion_StateFilter(t *testing.T) {
	query := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query <- r.URL.Query().Get("state")
		_, _ = w.Write([]byte(`{"events":[]}`))
	}))
	t.Cleanup(srv.Close)

	conf := &structures.Config{
		Camera: structures.CameraConfig{EventsUrl: srv.URL},
		Motion: structures.MotionConfig{State: "person_detected"},
	}
	_, err := NewCamera(conf, &cameraTestLogger{}).LatestMotion(context.Background(), "motion")
	require.NoError(t, err)
	assert.Equal(t, "person_detected", <-query)

	conf.Motion.State = ""
	_, err = NewCamera(conf, &cameraTestLogger{}).LatestMotion(context.Background(), "motion")
	require.NoError(t, err)
	assert.Empty(t, <-query, "no state filter when unset")
}

func TestHTTPCamera_LatestMotion_Empty(t *testing.T) {
	srv := newBridge(t)
	cam := newTestCamera(srv.URL, func(c *structures.CameraConfig) { c.EventsUrl = srv.URL + "/empty" })

	ev, err := cam.LatestMotion(context.Background(), "motion")
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestHTTPCamera_UpstreamError(t *testing.T) {
	srv := newBridge(t)
	cam := newTestCamera(srv.URL, func(c *structures.CameraConfig) { c.SnapshotUrl = srv.URL + "/broken" })

	_, err := cam.TakeSnapshot(context.Background())
	assert.ErrorContains(t, err, "502")
}

func TestHTTPCamera_NotConfigured(t *testing.T) {
	cam := NewCamera(&structures.Config{}, &cameraTestLogger{})

	_, err := cam.TakeSnapshot(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = cam.RecordVideo(context.Background(), time.Second)
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = cam.LatestMotion(context.Background(), "motion")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestHTTPCamera_RespectsContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	cam := newTestCamera(srv.URL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := cam.TakeSnapshot(ctx)
	assert.Error(t, err)
}
