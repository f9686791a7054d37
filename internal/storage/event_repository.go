package storage

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"doorbelld/internal/calendar"
	"doorbelld/internal/models"
)

// VideoSettleTime hides recordings younger than this from readers.
const VideoSettleTime = time.Minute

type EventRepositoryInterface interface {
	ListDays() ([]string, error)
	ListEvents(day string, includeSnapshots bool) ([]models.Event, error)
	GetEvent(day, id string) (*models.Event, error)
	GetVideo(day, id string) (*models.Media, error)
	DeleteEvent(day, id string) error
	QueryByWindow(filter models.Filter, includeSnapshots bool) ([]models.DayEvents, error)
	Flatten(days []models.DayEvents, order models.Order) []models.Event

	EnsureRoot() error
	EnsureDayBucket(t time.Time) (string, error)
	EnsureEventDir(day, id string) (string, error)
	EventDir(day, id string) (string, error)
}

type EventRepository struct {
	media MediaStoreInterface
	cal   *calendar.Calendar
}

func NewEventRepository(media MediaStoreInterface, cal *calendar.Calendar) EventRepositoryInterface {
	return &EventRepository{media: media, cal: cal}
}

// ListDays returns every day bucket name under the store root. A missing
// root is an empty store.
func (r *EventRepository) ListDays() ([]string, error) {
	entries, err := os.ReadDir(r.media.Root())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	days := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !isHidden(e.Name()) {
			days = append(days, e.Name())
		}
	}
	return days, nil
}

func (r *EventRepository) ListEvents(day string, includeSnapshots bool) ([]models.Event, error) {
	if !validKey(day) {
		return nil, models.ErrInvalidKey
	}
	entries, err := os.ReadDir(filepath.Join(r.media.Root(), day))
	if err != nil {
		return nil, notFoundOr(err)
	}

	events := make([]models.Event, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || isHidden(e.Name()) {
			continue
		}
		ev, err := r.readEvent(day, e.Name(), includeSnapshots)
		if errors.Is(err, models.ErrNotFound) {
			// deleted while listing
			continue
		}
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	slices.SortStableFunc(events, func(a, b models.Event) int {
		return compareIds(a.Id, b.Id)
	})
	return events, nil
}

// GetEvent reads one event with its snapshots. Video files never show up
// as snapshots.
func (r *EventRepository) GetEvent(day, id string) (*models.Event, error) {
	if !validKey(day) || !validKey(id) {
		return nil, models.ErrInvalidKey
	}
	return r.readEvent(day, id, true)
}

func (r *EventRepository) GetVideo(day, id string) (*models.Media, error) {
	if !validKey(day) || !validKey(id) {
		return nil, models.ErrInvalidKey
	}
	locator, err := r.media.ReadMedia(day, id, VideoName)
	if err != nil {
		return nil, err
	}
	return &models.Media{Media: locator, Type: models.MediaVideo}, nil
}

func (r *EventRepository) DeleteEvent(day, id string) error {
	dir, err := r.EventDir(day, id)
	if err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return notFoundOr(err)
	}
	if !info.IsDir() {
		return models.ErrNotFound
	}
	return os.RemoveAll(dir)
}

// QueryByWindow lists every day bucket whose date falls inside the filter's
// window. "all" and "" skip the date check; unparseable bucket names never
// match a real window.
func (r *EventRepository) QueryByWindow(filter models.Filter, includeSnapshots bool) ([]models.DayEvents, error) {
	start, end, filtered, err := r.cal.Window(filter)
	if err != nil {
		return nil, err
	}
	days, err := r.ListDays()
	if err != nil {
		return nil, err
	}

	result := make([]models.DayEvents, 0, len(days))
	for _, day := range days {
		if filtered && !r.cal.InWindow(day, start, end) {
			continue
		}
		events, err := r.ListEvents(day, includeSnapshots)
		if err != nil {
			return nil, err
		}
		result = append(result, models.DayEvents{Day: day, Events: events})
	}
	return result, nil
}

// Flatten merges all day groups into one sequence ordered by day date, then
// by id. Descending order is the exact reverse of ascending.
func (r *EventRepository) Flatten(days []models.DayEvents, order models.Order) []models.Event {
	type keyed struct {
		date  time.Time
		event models.Event
	}

	var items []keyed
	for _, d := range days {
		for _, ev := range d.Events {
			day := ev.Day
			if day == "" {
				day = d.Day
			}
			// invalid names keep the zero time and sort first
			date, _ := r.cal.ParseDay(day)
			items = append(items, keyed{date: date, event: ev})
		}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		if c := a.date.Compare(b.date); c != 0 {
			return c
		}
		return compareIds(a.event.Id, b.event.Id)
	})
	if order == models.OrderDesc {
		slices.Reverse(items)
	}

	events := make([]models.Event, len(items))
	for i, it := range items {
		events[i] = it.event
	}
	return events
}

func (r *EventRepository) EnsureRoot() error {
	return os.MkdirAll(r.media.Root(), dirPerm)
}

// EnsureDayBucket creates the bucket for t's calendar day and returns its name.
func (r *EventRepository) EnsureDayBucket(t time.Time) (string, error) {
	day := r.cal.FormatDay(t)
	if err := mkdirIfAbsent(filepath.Join(r.media.Root(), day)); err != nil {
		return "", err
	}
	return day, nil
}

func (r *EventRepository) EnsureEventDir(day, id string) (string, error) {
	dir, err := r.EventDir(day, id)
	if err != nil {
		return "", err
	}
	if err := mkdirIfAbsent(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func (r *EventRepository) EventDir(day, id string) (string, error) {
	if !validKey(day) || !validKey(id) {
		return "", models.ErrInvalidKey
	}
	return filepath.Join(r.media.Root(), day, id), nil
}

func (r *EventRepository) readEvent(day, id string, includeSnapshots bool) (*models.Event, error) {
	dir := filepath.Join(r.media.Root(), day, id)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, notFoundOr(err)
	}

	ev := &models.Event{Id: id, Day: day}
	videoPresent := false
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || isHidden(name) {
			continue
		}
		if models.MediaTypeOf(name) == models.MediaVideo {
			if name == VideoName {
				videoPresent = true
			}
			continue
		}
		if !includeSnapshots {
			continue
		}
		locator, err := r.media.ReadMedia(day, id, name)
		if err != nil {
			return nil, fmt.Errorf("read %s/%s/%s: %w", day, id, name, err)
		}
		ev.Snapshots = append(ev.Snapshots, models.Media{Media: locator, Type: models.MediaImage})
	}
	ev.HasVideo = videoPresent && r.videoSettled(id)
	return ev, nil
}

func (r *EventRepository) videoSettled(id string) bool {
	captured, ok := r.cal.EventTime(id)
	if !ok {
		return false
	}
	return r.cal.Now().Sub(captured) >= VideoSettleTime
}

func mkdirIfAbsent(dir string) error {
	err := os.Mkdir(dir, dirPerm)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}
	return nil
}

func validKey(key string) bool {
	if key == "" || isHidden(key) || strings.Contains(key, "..") {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}

// compareIds orders numeric ids by value ahead of every non-numeric id,
// which fall back to byte order among themselves.
func compareIds(a, b string) int {
	x, errA := strconv.ParseInt(a, 10, 64)
	y, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(x, y)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
