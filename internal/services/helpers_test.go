package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	mp4ff "github.com/Eyevinn/mp4ff/mp4"
	"github.com/stretchr/testify/require"

	"doorbelld/internal/calendar"
	"doorbelld/internal/storage"
	"doorbelld/internal/structures"
	"doorbelld/internal/testutil"
)

// 1700000000000 ms = 14-11-2023 22:13:20 UTC
const baseId = "1700000000000"

var baseTime = time.UnixMilli(1700000000000).UTC()

type fixture struct {
	conf    *structures.Config
	root    string
	cal     *calendar.Calendar
	media   storage.MediaStoreInterface
	repo    storage.EventRepositoryInterface
	cursor  storage.CursorStoreInterface
	camera  *testutil.MockCamera
	mirror  *testutil.MockMirror
	cache   *testutil.MockCache
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
}

func testConfig(dir string) *structures.Config {
	return &structures.Config{
		Store: structures.StoreConfig{
			Root:       filepath.Join(dir, "snapshots"),
			Timezone:   "UTC",
			CursorFile: filepath.Join(dir, "data.json"),
		},
		Media: structures.MediaConfig{Mode: storage.MediaModeBase64},
		Capture: structures.CaptureConfig{
			Snapshots: 1,
			QueueSize: 4,
		},
		Motion:       structures.MotionConfig{Kind: "motion"},
		Subscription: structures.SubscriptionConfig{FeePerMonth: 10},
	}
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	return newZonedFixture(t, "UTC", now)
}

func newZonedFixture(t *testing.T, tz string, now time.Time) *fixture {
	t.Helper()
	conf := testConfig(t.TempDir())
	conf.Store.Timezone = tz
	cal, err := calendar.NewWithClock(tz, func() time.Time { return now })
	require.NoError(t, err)

	media := storage.NewMediaStore(conf)
	return &fixture{
		conf:    conf,
		root:    conf.Store.Root,
		cal:     cal,
		media:   media,
		repo:    storage.NewEventRepository(media, cal),
		cursor:  storage.NewCursorStore(conf),
		camera:  &testutil.MockCamera{},
		mirror:  &testutil.MockMirror{},
		cache:   testutil.NewMockCache(),
		logger:  &testutil.MockLogger{},
		metrics: testutil.NewMockMetrics(),
	}
}

func (f *fixture) captureService() CaptureServiceInterface {
	return NewCaptureService(f.conf, f.repo, f.media, f.camera, f.mirror, f.logger, f.metrics)
}

func (f *fixture) eventService() EventServiceInterface {
	return NewEventService(f.repo, f.mirror, f.cache, f.logger)
}

func (f *fixture) aggregationService() AggregationServiceInterface {
	return NewAggregationService(f.conf, f.repo, f.media, f.cal, f.logger)
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// seedEvent lays out <root>/<day>/<id>/ with n snapshots of size bytes each.
func seedEvent(t *testing.T, root, day, id string, snapshots, size int) {
	t.Helper()
	dir := filepath.Join(root, day, id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for i := 0; i < snapshots; i++ {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("%s-%d%s", id, i, storage.ImageExt)), make([]byte, size))
	}
}

// mp4Header returns a single-track movie header declaring the given length.
func mp4Header(t *testing.T, millis uint64) []byte {
	t.Helper()
	initSeg := mp4ff.CreateEmptyInit()
	initSeg.AddEmptyTrack(90000, "video", "und")
	initSeg.Moov.Mvhd.Timescale = 1000
	initSeg.Moov.Mvhd.Duration = millis

	var buf bytes.Buffer
	require.NoError(t, initSeg.Encode(&buf))
	return buf.Bytes()
}

func idAt(t time.Time) string {
	return calendar.EventId(t)
}
