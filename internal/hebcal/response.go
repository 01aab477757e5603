package hebcal

import (
	"encoding/json"
	"fmt"
	"time"
)

// ItemDate is the date of a calendar item. The service sends either a full
// RFC 3339 date-time (candle lighting, havdalah) or a bare date (parashat,
// holidays). A bare date is midnight in the location's timezone with
// DateOnly set.
type ItemDate struct {
	time.Time

	// DateOnly is true when the service sent a date without a time
	DateOnly bool
}

// ParseItemDate parses s as RFC 3339 first and as YYYY-MM-DD second, placing
// bare dates at midnight UTC. Any other format is an error; there is no
// default date.
func ParseItemDate(s string) (ItemDate, error) {
	return ParseItemDateIn(s, time.UTC)
}

// ParseItemDateIn is ParseItemDate with bare dates at midnight in loc.
func ParseItemDateIn(s string, loc *time.Location) (ItemDate, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return ItemDate{Time: t}, nil
	}

	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return ItemDate{}, fmt.Errorf("unrecognized item date %q: expected RFC 3339 date-time or YYYY-MM-DD", s)
	}
	return ItemDate{Time: t, DateOnly: true}, nil
}

// in moves a bare date to midnight of the same calendar day in loc. Full
// date-times are returned unchanged.
func (d ItemDate) in(loc *time.Location) ItemDate {
	if !d.DateOnly {
		return d
	}
	y, m, day := d.Date()
	return ItemDate{Time: time.Date(y, m, day, 0, 0, 0, 0, loc), DateOnly: true}
}

// locationZone loads the location's timezone, or UTC when it is empty or
// unknown to the local tz database.
func locationZone(tzid string) *time.Location {
	if tzid == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tzid)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UnmarshalJSON implements json.Unmarshaler
func (d *ItemDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("item date must be a string: %w", err)
	}
	parsed, err := ParseItemDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler, keeping the format the date arrived in
func (d ItemDate) MarshalJSON() ([]byte, error) {
	if d.DateOnly {
		return json.Marshal(d.Time.Format(time.DateOnly))
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// Location is the resolved location of a request.
type Location struct {
	Title     string  `json:"title"`
	City      string  `json:"city"`
	TZID      string  `json:"tzid"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	CC        string  `json:"cc"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`

	// Geo is the method the service used to resolve the location
	Geo string `json:"geo"`

	GeonameID *int `json:"geonameid,omitempty"`

	// Present for zip code locations
	Zip       string `json:"zip,omitempty"`
	State     string `json:"state,omitempty"`
	StateName string `json:"stateName,omitempty"`
	ASCIIName string `json:"asciiname,omitempty"`
}

// Item is a single calendar entry: candle lighting, parashat, havdalah,
// holiday, etc.
type Item struct {
	Title     string   `json:"title"`
	Date      ItemDate `json:"date"`
	Category  string   `json:"category,omitempty"`
	Subcat    string   `json:"subcat,omitempty"`
	Hebrew    string   `json:"hebrew"`
	Link      string   `json:"link,omitempty"`
	Memo      string   `json:"memo,omitempty"`
	TitleOrig string   `json:"title_orig,omitempty"`
	Yomtov    *bool    `json:"yomtov,omitempty"`

	// Leyning maps reading names to their details. Value shapes vary per
	// reading and are kept verbatim.
	Leyning map[string]json.RawMessage `json:"leyning,omitempty"`
}

// Shabbat is the response of the Shabbat times API.
type Shabbat struct {
	Title    string    `json:"title,omitempty"`
	Date     time.Time `json:"date"`
	Location Location  `json:"location"`

	// Items are in the order returned by the service, which is chronological
	Items []Item `json:"items"`
}

// Wire shapes. Pointer fields distinguish a missing required field from a
// zero value.
type shabbatWire struct {
	Title    *string       `json:"title"`
	Date     *time.Time    `json:"date"`
	Location *locationWire `json:"location"`
	Items    *[]itemWire   `json:"items"`
}

type locationWire struct {
	Title     *string  `json:"title"`
	City      *string  `json:"city"`
	TZID      *string  `json:"tzid"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	CC        *string  `json:"cc"`
	Country   *string  `json:"country"`
	Admin1    *string  `json:"admin1"`
	Geo       *string  `json:"geo"`
	GeonameID *int     `json:"geonameid"`
	Zip       *string  `json:"zip"`
	State     *string  `json:"state"`
	StateName *string  `json:"stateName"`
	ASCIIName *string  `json:"asciiname"`
}

type itemWire struct {
	Title     *string                    `json:"title"`
	Date      *ItemDate                  `json:"date"`
	Category  *string                    `json:"category"`
	Subcat    *string                    `json:"subcat"`
	Hebrew    *string                    `json:"hebrew"`
	Link      *string                    `json:"link"`
	Memo      *string                    `json:"memo"`
	TitleOrig *string                    `json:"title_orig"`
	Yomtov    *bool                      `json:"yomtov"`
	Leyning   map[string]json.RawMessage `json:"leyning"`
}

// missingFieldError names a required field absent from the payload.
type missingFieldError struct {
	Object string
	Field  string
}

func (e *missingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in %s", e.Field, e.Object)
}

// required collects the first missing field of an object.
type required struct {
	object string
	err    error
}

func (r *required) check(field string, present bool) {
	if r.err == nil && !present {
		r.err = &missingFieldError{Object: r.object, Field: field}
	}
}

// UnmarshalJSON implements json.Unmarshaler, enforcing required fields.
func (s *Shabbat) UnmarshalJSON(data []byte) error {
	var w shabbatWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	req := required{object: "shabbat"}
	req.check("date", w.Date != nil)
	req.check("location", w.Location != nil)
	req.check("items", w.Items != nil)
	if req.err != nil {
		return req.err
	}

	location, err := w.Location.toLocation()
	if err != nil {
		return err
	}

	zone := locationZone(location.TZID)
	items := make([]Item, 0, len(*w.Items))
	for i, iw := range *w.Items {
		item, err := iw.toItem()
		if err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
		item.Date = item.Date.in(zone)
		items = append(items, item)
	}

	*s = Shabbat{
		Title:    deref(w.Title),
		Date:     *w.Date,
		Location: location,
		Items:    items,
	}
	return nil
}

func (w *locationWire) toLocation() (Location, error) {
	req := required{object: "location"}
	req.check("title", w.Title != nil)
	req.check("city", w.City != nil)
	req.check("tzid", w.TZID != nil)
	req.check("latitude", w.Latitude != nil)
	req.check("longitude", w.Longitude != nil)
	req.check("cc", w.CC != nil)
	req.check("country", w.Country != nil)
	req.check("admin1", w.Admin1 != nil)
	req.check("geo", w.Geo != nil)
	if req.err != nil {
		return Location{}, req.err
	}

	return Location{
		Title:     *w.Title,
		City:      *w.City,
		TZID:      *w.TZID,
		Latitude:  *w.Latitude,
		Longitude: *w.Longitude,
		CC:        *w.CC,
		Country:   *w.Country,
		Admin1:    *w.Admin1,
		Geo:       *w.Geo,
		GeonameID: w.GeonameID,
		Zip:       deref(w.Zip),
		State:     deref(w.State),
		StateName: deref(w.StateName),
		ASCIIName: deref(w.ASCIIName),
	}, nil
}

func (w itemWire) toItem() (Item, error) {
	req := required{object: "item"}
	req.check("title", w.Title != nil)
	req.check("date", w.Date != nil)
	req.check("hebrew", w.Hebrew != nil)
	if req.err != nil {
		return Item{}, req.err
	}

	return Item{
		Title:     *w.Title,
		Date:      *w.Date,
		Category:  deref(w.Category),
		Subcat:    deref(w.Subcat),
		Hebrew:    *w.Hebrew,
		Link:      deref(w.Link),
		Memo:      deref(w.Memo),
		TitleOrig: deref(w.TitleOrig),
		Yomtov:    w.Yomtov,
		Leyning:   w.Leyning,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ItemsByCategory returns the items of one category, in service order.
func (s *Shabbat) ItemsByCategory(category string) []Item {
	var out []Item
	for _, item := range s.Items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Item categories used by the Shabbat times API.
const (
	CategoryCandles     = "candles"
	CategoryHavdalah    = "havdalah"
	CategoryParashat    = "parashat"
	CategoryHoliday     = "holiday"
	CategoryRoshChodesh = "roshchodesh"
)
