package models

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	for _, s := range []string{"", "all", "today", "week", "month", "year"} {
		f, err := ParseFilter(s)
		require.NoError(t, err, s)
		assert.Equal(t, Filter(s), f)
	}
	_, err := ParseFilter("Today")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, OrderAsc, o)

	o, err = ParseOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, OrderDesc, o)

	_, err = ParseOrder("random")
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestMediaTypeOf(t *testing.T) {
	assert.Equal(t, MediaVideo, MediaTypeOf("video.mp4"))
	assert.Equal(t, MediaVideo, MediaTypeOf("VIDEO.MP4"))
	assert.Equal(t, MediaImage, MediaTypeOf("1700000000000-0.webp"))
	assert.Equal(t, MediaImage, MediaTypeOf("legacy.jpg"))
}

func TestHourlyCount_Inc(t *testing.T) {
	h := NewHourlyCount("14-11-2023")
	h.Inc(22)
	h.Inc(22)
	h.Inc(-1)
	h.Inc(HoursPerDay)

	require.NotNil(t, h.Hours[22])
	assert.Equal(t, 2, *h.Hours[22])
	for i, v := range h.Hours {
		if i != 22 {
			assert.Nil(t, v, i)
		}
	}
}

func TestHourlyCount_MarshalJSON(t *testing.T) {
	h := NewHourlyCount("14-11-2023")
	h.Inc(0)
	h.Inc(23)

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"date":"14-11-2023","0:00":1,"1:00":null`))
	assert.True(t, strings.HasSuffix(string(data), `"23:00":1}`))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, HoursPerDay+1)
}

func TestMediaCounts_Add(t *testing.T) {
	sum := MediaCounts{Images: 2, Videos: 1}.Add(MediaCounts{Images: 3})
	assert.Equal(t, MediaCounts{Images: 5, Videos: 1}, sum)
}

func TestDashboard_NullAverage(t *testing.T) {
	data, err := json.Marshal(Dashboard{TodayEvents: []Event{}, HourlyHistogram: []HourlyCount{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"todayEvents":[],"chartData":[],"averageDailyMotion":null,"storageSpaceUsed":{"today":0,"rest":0}}`, string(data))
}
