package calendar

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dromara/carbon/v2"

	"doorbelld/internal/models"
	"doorbelld/internal/structures"
)

// DayLayout is the day bucket name format (DD-MM-YYYY).
const DayLayout = "02-01-2006"

// Calendar answers every "what day/window is it" question for the store in
// a single configured time zone.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func NewCalendar(conf *structures.Config) (*Calendar, error) {
	return NewWithClock(conf.Store.Timezone, time.Now)
}

func NewWithClock(timezone string, now func() time.Time) (*Calendar, error) {
	if timezone == "" {
		timezone = "Local"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}
	return &Calendar{loc: loc, now: now}, nil
}

func (c *Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

func (c *Calendar) FormatDay(t time.Time) string {
	return t.In(c.loc).Format(DayLayout)
}

func (c *Calendar) Today() string {
	return c.FormatDay(c.Now())
}

// ParseDay returns midnight of the bucket's day, or false for names that
// are not DD-MM-YYYY.
func (c *Calendar) ParseDay(day string) (time.Time, bool) {
	if len(day) != len(DayLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DayLayout, day, c.loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Window resolves a filter into inclusive bounds around now. filtered is
// false for "all" and the empty filter, which bypass window checks.
// Bounds are local midnights of the configured zone, the same instants
// ParseDay returns for bucket names.
func (c *Calendar) Window(filter models.Filter) (start, end time.Time, filtered bool, err error) {
	now := c.Now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, c.loc)

	switch filter {
	case models.FilterNone, models.FilterAll:
		return time.Time{}, time.Time{}, false, nil
	case models.FilterToday:
		start = today
		end = start.AddDate(0, 0, 1)
	case models.FilterWeek:
		// weeks start on Monday
		start = today.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
		end = start.AddDate(0, 0, 7)
	case models.FilterMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, c.loc)
		end = start.AddDate(0, 1, 0)
	case models.FilterYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, c.loc)
		end = start.AddDate(1, 0, 0)
	default:
		return time.Time{}, time.Time{}, false, models.ErrInvalidFilter
	}
	return start, end.Add(-time.Nanosecond), true, nil
}

// InWindow reports whether the day bucket falls inside [start, end].
// Unparseable names never match.
func (c *Calendar) InWindow(day string, start, end time.Time) bool {
	t, ok := c.ParseDay(day)
	if !ok {
		return false
	}
	return !t.Before(start) && !t.After(end)
}

// MonthsBetween counts whole calendar months from from to to, compared on
// the local wall clock of the configured zone.
func (c *Calendar) MonthsBetween(from, to time.Time) int64 {
	d := carbon.CreateFromStdTime(c.wallClock(from), carbon.UTC).
		DiffInMonths(carbon.CreateFromStdTime(c.wallClock(to), carbon.UTC))
	if d < 0 {
		return 0
	}
	return d
}

// wallClock restates t's local date and time in UTC so carbon never
// applies a zone offset of its own.
func (c *Calendar) wallClock(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// EventTime interprets an event id as epoch milliseconds.
func (c *Calendar) EventTime(id string) (time.Time, bool) {
	ms, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).In(c.loc), true
}

func EventId(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
