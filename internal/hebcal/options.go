package hebcal

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Leyning controls whether Torah reading details are included.
type Leyning string

const (
	LeyningOn  Leyning = "on"
	LeyningOff Leyning = "off"
)

// ParseLeyning parses "on"/"off" (also accepts true/false).
func ParseLeyning(s string) (Leyning, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes":
		return LeyningOn, nil
	case "off", "false", "no":
		return LeyningOff, nil
	default:
		return "", fmt.Errorf("invalid leyning %q, must be one of: on, off", s)
	}
}

// Transliteration selects the Hebrew-to-Latin convention for rendered titles.
type Transliteration int

const (
	Ashkenazic Transliteration = iota + 1
	Sephardic
)

// String returns the human-readable name
func (t Transliteration) String() string {
	switch t {
	case Ashkenazic:
		return "ashkenazic"
	case Sephardic:
		return "sephardic"
	default:
		return "unknown"
	}
}

// wireValue is the value of the "a" parameter: the service's flag is
// "Ashkenazic transliterations", so Sephardic is "off".
func (t Transliteration) wireValue() string {
	if t == Ashkenazic {
		return "on"
	}
	return "off"
}

// ParseTransliteration parses "ashkenazic" or "sephardic" (case-insensitive,
// "ashkenazi"/"sephardi" accepted).
func ParseTransliteration(s string) (Transliteration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ashkenazic", "ashkenazi", "a":
		return Ashkenazic, nil
	case "sephardic", "sephardi", "s":
		return Sephardic, nil
	default:
		return 0, fmt.Errorf("invalid transliteration %q, must be one of: ashkenazic, sephardic", s)
	}
}

// Wire parameter names for the /shabbat endpoint. Location fields are sent
// under LocationField.String.
const (
	paramHavdalah            = "m"
	paramMinutesBeforeSunset = "b"
	paramTransliteration     = "a"
	paramLeyning             = "leyning"
	paramGeo                 = "geo"
	paramGregorianYear       = "gy"
	paramGregorianMonth      = "gm"
	paramGregorianDay        = "gd"
	paramConfig              = "cfg"

	configJSON = "json"
)

// ShabbatOptions is the accumulated parameter set of a /shabbat request.
// A nil field was never assigned and is left to the service default; a
// pointer to a zero value is sent as zero.
type ShabbatOptions struct {
	Havdalah            *int
	MinutesBeforeSunset *int
	Transliteration     *Transliteration
	Leyning             *Leyning

	// Geo is the active location method, maintained by nextGeo
	Geo *Geo

	GeonameID *int
	Zip       *string
	City      *string
	Latitude  *float64
	Longitude *float64
	TZID      *string

	GregorianYear  *int
	GregorianMonth *int
	GregorianDay   *int
}

// assign records that a location field was set and moves the geo method.
func (o *ShabbatOptions) assign(field LocationField) {
	var current Geo
	if o.Geo != nil {
		current = *o.Geo
	}
	g := nextGeo(current, field)
	o.Geo = &g
}

// Values serializes the options into wire query parameters. Only the
// location fields of the active geo method are included; cfg=json is
// always present.
func (o ShabbatOptions) Values() url.Values {
	v := url.Values{}

	if o.Havdalah != nil {
		v.Set(paramHavdalah, strconv.Itoa(*o.Havdalah))
	}
	if o.MinutesBeforeSunset != nil {
		v.Set(paramMinutesBeforeSunset, strconv.Itoa(*o.MinutesBeforeSunset))
	}
	if o.Transliteration != nil {
		v.Set(paramTransliteration, o.Transliteration.wireValue())
	}
	if o.Leyning != nil {
		v.Set(paramLeyning, string(*o.Leyning))
	}

	if o.Geo != nil {
		v.Set(paramGeo, string(*o.Geo))
		for _, field := range fieldsFor(*o.Geo) {
			o.setLocationField(v, field)
		}
	}

	if o.GregorianYear != nil {
		v.Set(paramGregorianYear, strconv.Itoa(*o.GregorianYear))
	}
	if o.GregorianMonth != nil {
		v.Set(paramGregorianMonth, strconv.Itoa(*o.GregorianMonth))
	}
	if o.GregorianDay != nil {
		v.Set(paramGregorianDay, strconv.Itoa(*o.GregorianDay))
	}

	v.Set(paramConfig, configJSON)
	return v
}

func (o ShabbatOptions) setLocationField(v url.Values, field LocationField) {
	if value, ok := o.locationValue(field); ok {
		v.Set(field.String(), value)
	}
}

// locationValue returns the wire value of a location field, if it is set.
func (o ShabbatOptions) locationValue(field LocationField) (string, bool) {
	switch field {
	case FieldGeonameID:
		if o.GeonameID != nil {
			return strconv.Itoa(*o.GeonameID), true
		}
	case FieldZip:
		if o.Zip != nil {
			return *o.Zip, true
		}
	case FieldCity:
		if o.City != nil {
			return *o.City, true
		}
	case FieldLatitude:
		if o.Latitude != nil {
			return strconv.FormatFloat(*o.Latitude, 'f', -1, 64), true
		}
	case FieldLongitude:
		if o.Longitude != nil {
			return strconv.FormatFloat(*o.Longitude, 'f', -1, 64), true
		}
	case FieldTZID:
		if o.TZID != nil {
			return *o.TZID, true
		}
	}
	return "", false
}

// ActiveGeo returns the location method that will be sent, or "" when no
// location was set.
func (o ShabbatOptions) ActiveGeo() Geo {
	if o.Geo == nil {
		return ""
	}
	return *o.Geo
}

// LocationString describes the location fields that will be sent, e.g.
// "zip=90210" or "latitude=31.77,longitude=35.21".
func (o ShabbatOptions) LocationString() string {
	var parts []string
	for _, field := range fieldsFor(o.ActiveGeo()) {
		if value, ok := o.locationValue(field); ok {
			parts = append(parts, field.String()+"="+value)
		}
	}
	return strings.Join(parts, ",")
}

// Validate reports a coordinates location that lacks latitude or longitude.
// It never rejects ranges; the service is the authority on those.
func (o ShabbatOptions) Validate() error {
	if o.Geo == nil || *o.Geo != GeoPos {
		return nil
	}

	var missing []string
	if o.Latitude == nil {
		missing = append(missing, FieldLatitude.String())
	}
	if o.Longitude == nil {
		missing = append(missing, FieldLongitude.String())
	}
	if len(missing) > 0 {
		return &IncompleteLocationError{Missing: missing}
	}
	return nil
}

// Clone returns a deep copy, so later builder calls cannot reach a
// snapshot that has been dispatched.
func (o ShabbatOptions) Clone() ShabbatOptions {
	return ShabbatOptions{
		Havdalah:            clonePtr(o.Havdalah),
		MinutesBeforeSunset: clonePtr(o.MinutesBeforeSunset),
		Transliteration:     clonePtr(o.Transliteration),
		Leyning:             clonePtr(o.Leyning),
		Geo:                 clonePtr(o.Geo),
		GeonameID:           clonePtr(o.GeonameID),
		Zip:                 clonePtr(o.Zip),
		City:                clonePtr(o.City),
		Latitude:            clonePtr(o.Latitude),
		Longitude:           clonePtr(o.Longitude),
		TZID:                clonePtr(o.TZID),
		GregorianYear:       clonePtr(o.GregorianYear),
		GregorianMonth:      clonePtr(o.GregorianMonth),
		GregorianDay:        clonePtr(o.GregorianDay),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptr[T any](v T) *T {
	return &v
}
