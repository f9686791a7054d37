package models

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

const HoursPerDay = 24

// HourlyCount is one day of the motion histogram. A nil slot means no
// events were recorded in that hour.
type HourlyCount struct {
	Date  string
	Hours [HoursPerDay]*int
}

func NewHourlyCount(date string) HourlyCount {
	return HourlyCount{Date: date}
}

func (h *HourlyCount) Inc(hour int) {
	if hour < 0 || hour >= HoursPerDay {
		return
	}
	if h.Hours[hour] == nil {
		n := 0
		h.Hours[hour] = &n
	}
	*h.Hours[hour]++
}

func HourLabel(hour int) string {
	return strconv.Itoa(hour) + ":00"
}

// MarshalJSON renders {"date": ..., "0:00": n|null, ..., "23:00": n|null}.
func (h HourlyCount) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	date, err := json.Marshal(h.Date)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"date":`)
	buf.Write(date)
	for i, v := range h.Hours {
		buf.WriteString(`,"`)
		buf.WriteString(HourLabel(i))
		buf.WriteString(`":`)
		if v == nil {
			buf.WriteString("null")
		} else {
			buf.WriteString(strconv.Itoa(*v))
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type StorageUsage struct {
	Today float64 `json:"today"`
	Rest  float64 `json:"rest"`
}

type Dashboard struct {
	TodayEvents        []Event       `json:"todayEvents"`
	HourlyHistogram    []HourlyCount `json:"chartData"`
	AverageDailyMotion *string       `json:"averageDailyMotion"`
	StorageUsage       StorageUsage  `json:"storageSpaceUsed"`
}
