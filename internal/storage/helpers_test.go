package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"doorbelld/internal/calendar"
	"doorbelld/internal/providers"
	"doorbelld/internal/structures"
)

// 1700000000000 ms = 14-11-2023 22:13:20 UTC
const baseId = "1700000000000"

var baseTime = time.UnixMilli(1700000000000).UTC()

func testConfig(root, mode string) *structures.Config {
	return &structures.Config{
		Store: structures.StoreConfig{Root: root, Timezone: "UTC", CursorFile: filepath.Join(filepath.Dir(root), "data.json")},
		Media: structures.MediaConfig{Mode: mode, BaseUrl: "http://doorbell.local:3000"},
	}
}

func testCalendar(t *testing.T, now time.Time) *calendar.Calendar {
	t.Helper()
	cal, err := calendar.NewWithClock("UTC", func() time.Time { return now })
	require.NoError(t, err)
	return cal
}

func newTestRepo(t *testing.T, mode string, now time.Time) (*EventRepository, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "snapshots")
	media := NewMediaStore(testConfig(root, mode))
	repo := NewEventRepository(media, testCalendar(t, now)).(*EventRepository)
	return repo, root
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

// seedEvent lays out <root>/<day>/<id>/ with n snapshots and an optional video.
func seedEvent(t *testing.T, root, day, id string, snapshots int, video bool) {
	t.Helper()
	dir := filepath.Join(root, day, id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for i := 0; i < snapshots; i++ {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("%s-%d%s", id, i, ImageExt)), 10)
	}
	if video {
		writeFile(t, filepath.Join(dir, VideoName), 20)
	}
}

type storageTestLogger struct{}

func (m *storageTestLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *storageTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *storageTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *storageTestLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *storageTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *storageTestLogger) Close()                                                  {}
