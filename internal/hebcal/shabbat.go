package hebcal

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/teemow/hebcal/internal/instrumentation"
	"github.com/teemow/hebcal/internal/logging"
)

// EndpointShabbat is the path of the Shabbat times API.
const EndpointShabbat = "/shabbat"

// ErrNoClient is returned by Send on a handler created without a client.
var ErrNoClient = errors.New("shabbat handler has no client")

// ShabbatHandler accumulates the options of one /shabbat request.
// A handler is not safe for concurrent use; create one per request with
// Client.Shabbat.
type ShabbatHandler struct {
	client  *Client
	options ShabbatOptions
}

// NewShabbatHandler returns an empty handler bound to client. A nil client
// gives a handler that only builds options; Send fails with ErrNoClient.
func NewShabbatHandler(client *Client) *ShabbatHandler {
	return &ShabbatHandler{client: client}
}

// Havdalah sets the minutes after sundown for havdalah (m).
func (h *ShabbatHandler) Havdalah(minutes int) *ShabbatHandler {
	h.options.Havdalah = ptr(minutes)
	return h
}

// MinutesBeforeSunset sets candle-lighting minutes before sunset (b).
func (h *ShabbatHandler) MinutesBeforeSunset(minutes int) *ShabbatHandler {
	h.options.MinutesBeforeSunset = ptr(minutes)
	return h
}

// Transliteration sets the transliteration dialect (a).
func (h *ShabbatHandler) Transliteration(t Transliteration) *ShabbatHandler {
	h.options.Transliteration = ptr(t)
	return h
}

// Leyning turns Torah reading details on or off.
func (h *ShabbatHandler) Leyning(l Leyning) *ShabbatHandler {
	h.options.Leyning = ptr(l)
	return h
}

// Geo sets the location method explicitly. A location field assigned
// afterwards selects its own method again.
func (h *ShabbatHandler) Geo(g Geo) *ShabbatHandler {
	h.options.Geo = ptr(g)
	return h
}

// GeonameID selects a GeoNames.org location.
func (h *ShabbatHandler) GeonameID(id int) *ShabbatHandler {
	h.options.GeonameID = ptr(id)
	h.options.assign(FieldGeonameID)
	return h
}

// Zip selects a US zip code location.
func (h *ShabbatHandler) Zip(zip string) *ShabbatHandler {
	h.options.Zip = ptr(zip)
	h.options.assign(FieldZip)
	return h
}

// City selects one of the service's legacy city identifiers.
func (h *ShabbatHandler) City(city string) *ShabbatHandler {
	h.options.City = ptr(city)
	h.options.assign(FieldCity)
	return h
}

// Latitude selects coordinates mode.
func (h *ShabbatHandler) Latitude(latitude float64) *ShabbatHandler {
	h.options.Latitude = ptr(latitude)
	h.options.assign(FieldLatitude)
	return h
}

// Longitude selects coordinates mode.
func (h *ShabbatHandler) Longitude(longitude float64) *ShabbatHandler {
	h.options.Longitude = ptr(longitude)
	h.options.assign(FieldLongitude)
	return h
}

// TZID sets the Olson timezone of a coordinates location, selecting
// coordinates mode even before latitude and longitude are given.
func (h *ShabbatHandler) TZID(tzid string) *ShabbatHandler {
	h.options.TZID = ptr(tzid)
	h.options.assign(FieldTZID)
	return h
}

// GregorianYear sets gy.
func (h *ShabbatHandler) GregorianYear(year int) *ShabbatHandler {
	h.options.GregorianYear = ptr(year)
	return h
}

// GregorianMonth sets gm. Values are not range checked.
func (h *ShabbatHandler) GregorianMonth(month int) *ShabbatHandler {
	h.options.GregorianMonth = ptr(month)
	return h
}

// GregorianDay sets gd. Values are not range checked.
func (h *ShabbatHandler) GregorianDay(day int) *ShabbatHandler {
	h.options.GregorianDay = ptr(day)
	return h
}

// Date sets gy, gm and gd from t.
func (h *ShabbatHandler) Date(t time.Time) *ShabbatHandler {
	return h.GregorianYear(t.Year()).
		GregorianMonth(int(t.Month())).
		GregorianDay(t.Day())
}

// Options returns a copy of the accumulated options
func (h *ShabbatHandler) Options() ShabbatOptions {
	return h.options.Clone()
}

// Send dispatches exactly one request with a snapshot of the current
// options and decodes the result.
func (h *ShabbatHandler) Send(ctx context.Context) (*Shabbat, error) {
	if h.client == nil {
		return nil, ErrNoClient
	}

	snapshot := h.options.Clone()

	if err := snapshot.Validate(); err != nil {
		h.client.logger.Warn("sending incomplete location, the service will likely reject it",
			logging.Operation("hebcal.shabbat"),
			logging.Err(err))
	}

	var geo string
	if snapshot.Geo != nil {
		geo = string(*snapshot.Geo)
	}

	h.client.logger.Debug("shabbat request",
		logging.GeoMethod(geo),
		logging.Location(snapshot.Latitude, snapshot.Longitude),
		slog.Bool("has_date", snapshot.GregorianYear != nil || snapshot.GregorianMonth != nil || snapshot.GregorianDay != nil))

	if rec, ok := h.client.metrics.(geoRecorder); ok {
		rec.RecordGeoMethod(ctx, strings.TrimPrefix(EndpointShabbat, "/"), geo)
	}

	attrs := instrumentation.NewSpanAttributeBuilder().WithGeo(geo).Build()

	var result Shabbat
	if err := h.client.get(ctx, EndpointShabbat, snapshot.Values(), &result, attrs...); err != nil {
		return nil, err
	}
	return &result, nil
}
