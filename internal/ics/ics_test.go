package ics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/hebcal/internal/hebcal"
)

var fixedNow = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

func loadShabbat(t *testing.T) *hebcal.Shabbat {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "shabbat_zip.json"))
	require.NoError(t, err)

	var s hebcal.Shabbat
	require.NoError(t, json.Unmarshal(data, &s))
	return &s
}

func parse(t *testing.T, data string) *ical.Calendar {
	t.Helper()
	cal, err := ical.ParseCalendar(strings.NewReader(data))
	require.NoError(t, err)
	return cal
}

func property(ev *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ev.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}

func TestEncode(t *testing.T) {
	s := loadShabbat(t)

	data, err := Encode(s, Options{Now: fixedNow})
	require.NoError(t, err)

	assert.Contains(t, data, "BEGIN:VCALENDAR")
	assert.Contains(t, data, "PRODID:"+DefaultProductID)
	assert.Contains(t, data, "X-WR-CALNAME:Hebcal Beverly Hills March 2024")
	assert.Contains(t, data, "X-WR-TIMEZONE:America/Los_Angeles")

	cal := parse(t, data)
	events := cal.Events()
	require.Len(t, events, len(s.Items))

	for i, ev := range events {
		assert.Equal(t, s.Items[i].Title, property(ev, ical.ComponentPropertySummary))
		assert.Equal(t, "Beverly Hills, CA 90210", property(ev, ical.ComponentPropertyLocation))
		assert.Equal(t, "20240305T120000Z", property(ev, ical.ComponentPropertyDtstamp))
	}
}

func TestEncodeTimedItem(t *testing.T) {
	cal := parse(t, mustEncode(t, loadShabbat(t)))
	candles := cal.Events()[0]

	// 17:39 at -08:00 is 01:39 UTC the next day
	assert.Equal(t, "20240309T013900Z", property(candles, ical.ComponentPropertyDtStart))
	assert.Equal(t, "20240309T013900Z", property(candles, ical.ComponentPropertyDtEnd))
	assert.Equal(t, "Candle lighting", property(candles, ical.ComponentPropertyCategories))
	assert.Equal(t, "TRANSPARENT", property(candles, ical.ComponentPropertyTransp))
}

func TestEncodeAllDayItem(t *testing.T) {
	cal := parse(t, mustEncode(t, loadShabbat(t)))
	parashat := cal.Events()[2]

	start := parashat.GetProperty(ical.ComponentPropertyDtStart)
	require.NotNil(t, start)
	assert.Equal(t, "20240309", start.Value)
	assert.Equal(t, []string{"DATE"}, start.ICalParameters["VALUE"])
	assert.Equal(t, "20240310", property(parashat, ical.ComponentPropertyDtEnd))

	assert.Equal(t, "https://hebcal.com/s/5784/22?us=js&um=api", property(parashat, ical.ComponentPropertyUrl))
	assert.Equal(t, "Parashat", property(parashat, ical.ComponentPropertyCategories))
}

func TestEventUIDsAreStable(t *testing.T) {
	s := loadShabbat(t)

	first := parse(t, mustEncode(t, s)).Events()
	second, err := Encode(s, Options{Now: fixedNow.Add(24 * time.Hour)})
	require.NoError(t, err)

	seen := map[string]bool{}
	for i, ev := range parse(t, second).Events() {
		assert.Equal(t, first[i].Id(), ev.Id())
		assert.True(t, strings.HasSuffix(ev.Id(), "@"+uidDomain))
		assert.False(t, seen[ev.Id()], "duplicate uid %s", ev.Id())
		seen[ev.Id()] = true
	}
}

func TestEventUIDDependsOnLocation(t *testing.T) {
	item := hebcal.Item{Title: "Parashat Vayakhel", Category: hebcal.CategoryParashat}
	item.Date, _ = hebcal.ParseItemDate("2024-03-09")

	id := 281184
	tests := []struct {
		name string
		a, b hebcal.Location
	}{
		{name: "zip", a: hebcal.Location{Zip: "90210"}, b: hebcal.Location{Zip: "10001"}},
		{name: "geonameid", a: hebcal.Location{GeonameID: &id}, b: hebcal.Location{Zip: "90210"}},
		{name: "coordinates", a: hebcal.Location{Latitude: 31.77, Longitude: 35.21}, b: hebcal.Location{Latitude: 40.71, Longitude: -74.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, EventUID(tt.a, item), EventUID(tt.b, item))
			assert.Equal(t, EventUID(tt.a, item), EventUID(tt.a, item))
		})
	}
}

func TestBuildOptions(t *testing.T) {
	s := loadShabbat(t)

	data, err := Encode(s, Options{CalendarName: "Shabbat", ProductID: "-//test//EN", Now: fixedNow})
	require.NoError(t, err)

	assert.Contains(t, data, "X-WR-CALNAME:Shabbat")
	assert.Contains(t, data, "PRODID:-//test//EN")
}

func TestBuildNil(t *testing.T) {
	_, err := Build(nil, Options{})
	assert.Error(t, err)
}

func mustEncode(t *testing.T, s *hebcal.Shabbat) string {
	t.Helper()
	data, err := Encode(s, Options{Now: fixedNow})
	require.NoError(t, err)
	return data
}
