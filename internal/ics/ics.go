package ics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/teemow/hebcal/internal/hebcal"
)

const (
	// DefaultProductID is the PRODID of exported calendars.
	DefaultProductID = "-//teemow//hebcal//EN"

	uidDomain = "hebcal"
)

// uidNamespace scopes the name-based UIDs of exported events.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://www.hebcal.com/shabbat"))

// Options controls calendar metadata.
type Options struct {
	// CalendarName is written as X-WR-CALNAME. Defaults to the result title.
	CalendarName string

	// ProductID is written as PRODID (default: DefaultProductID)
	ProductID string

	// Now is used for DTSTAMP. Defaults to time.Now.
	Now time.Time
}

// Build converts a Shabbat result into a calendar with one event per item.
func Build(s *hebcal.Shabbat, opts Options) (*ical.Calendar, error) {
	if s == nil {
		return nil, fmt.Errorf("nothing to export: result is nil")
	}

	if opts.ProductID == "" {
		opts.ProductID = DefaultProductID
	}
	if opts.CalendarName == "" {
		opts.CalendarName = s.Title
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(opts.ProductID)
	if opts.CalendarName != "" {
		cal.SetXWRCalName(opts.CalendarName)
	}
	if s.Location.TZID != "" {
		cal.SetXWRTimezone(s.Location.TZID)
	}

	for _, item := range s.Items {
		addEvent(cal, s.Location, item, opts.Now)
	}

	return cal, nil
}

// Encode is Build followed by serialization.
func Encode(s *hebcal.Shabbat, opts Options) (string, error) {
	cal, err := Build(s, opts)
	if err != nil {
		return "", err
	}
	return cal.Serialize(), nil
}

func addEvent(cal *ical.Calendar, loc hebcal.Location, item hebcal.Item, now time.Time) {
	event := cal.AddEvent(EventUID(loc, item))
	event.SetDtStampTime(now)
	event.SetSummary(item.Title)

	if item.Date.DateOnly {
		day := item.Date.Time
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
	} else {
		event.SetStartAt(item.Date.Time)
		event.SetEndAt(item.Date.Time)
	}

	if loc.Title != "" {
		event.SetLocation(loc.Title)
	}
	if desc := description(item); desc != "" {
		event.SetDescription(desc)
	}
	if item.Link != "" {
		event.SetURL(item.Link)
	}
	if item.Category != "" {
		event.AddCategory(categoryName(item.Category))
	}
	event.SetTimeTransparency(ical.TransparencyTransparent)
}

// EventUID returns the stable UID of an item at a location.
func EventUID(loc hebcal.Location, item hebcal.Item) string {
	name := strings.Join([]string{
		locationKey(loc),
		item.Date.Format(time.DateOnly),
		item.Category,
		item.Title,
	}, "|")
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@" + uidDomain
}

func locationKey(loc hebcal.Location) string {
	if loc.GeonameID != nil {
		return "geonameid:" + strconv.Itoa(*loc.GeonameID)
	}
	if loc.Zip != "" {
		return "zip:" + loc.Zip
	}
	return fmt.Sprintf("pos:%.4f,%.4f", loc.Latitude, loc.Longitude)
}

func description(item hebcal.Item) string {
	var parts []string
	if item.Hebrew != "" {
		parts = append(parts, item.Hebrew)
	}
	if item.Memo != "" {
		parts = append(parts, item.Memo)
	}
	if item.Link != "" {
		parts = append(parts, item.Link)
	}
	return strings.Join(parts, "\n")
}

func categoryName(category string) string {
	switch category {
	case hebcal.CategoryCandles:
		return "Candle lighting"
	case hebcal.CategoryHavdalah:
		return "Havdalah"
	case hebcal.CategoryParashat:
		return "Parashat"
	case hebcal.CategoryHoliday:
		return "Holiday"
	case hebcal.CategoryRoshChodesh:
		return "Rosh Chodesh"
	default:
		return category
	}
}
