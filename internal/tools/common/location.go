package common

import (
	"github.com/teemow/hebcal/internal/hebcal"
)

// Location argument names shared by the hebcal tools, in the order the
// tools apply them to a request.
const (
	ArgGeonameID = "geonameid"
	ArgZip       = "zip"
	ArgCity      = "city"
	ArgLatitude  = "latitude"
	ArgLongitude = "longitude"
	ArgTZID      = "tzid"
)

// ApplyLocationArgs sets the location arguments on h in a fixed order:
// geonameid, zip, city, latitude, longitude, tzid. Numbers must be JSON
// numbers and empty strings are skipped. The builder decides the method,
// so the last argument applied wins.
func ApplyLocationArgs(h *hebcal.ShabbatHandler, args map[string]interface{}) *hebcal.ShabbatHandler {
	if v, ok := args[ArgGeonameID].(float64); ok {
		h.GeonameID(int(v))
	}
	if v, ok := args[ArgZip].(string); ok && v != "" {
		h.Zip(v)
	}
	if v, ok := args[ArgCity].(string); ok && v != "" {
		h.City(v)
	}
	if v, ok := args[ArgLatitude].(float64); ok {
		h.Latitude(v)
	}
	if v, ok := args[ArgLongitude].(float64); ok {
		h.Longitude(v)
	}
	if v, ok := args[ArgTZID].(string); ok && v != "" {
		h.TZID(v)
	}
	return h
}

// LocationFromArgs returns the geo method a tool call will send and a short
// description of its location, e.g. "zip=90210". Both come from the same
// builder the tools use, so audit entries match the request.
func LocationFromArgs(args map[string]interface{}) (geo, location string) {
	if args == nil {
		return "", ""
	}

	opts := ApplyLocationArgs(hebcal.NewShabbatHandler(nil), args).Options()
	return string(opts.ActiveGeo()), opts.LocationString()
}
