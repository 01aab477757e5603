package shabbat_tools

import (
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/hebcal/internal/hebcal"
	"github.com/teemow/hebcal/internal/tools/common"
)

// Non-location argument names
const (
	argHavdalah        = "havdalah"
	argCandleMinutes   = "candle_minutes"
	argTransliteration = "transliteration"
	argLeyning         = "leyning"
	argDate            = "date"
	argFormat          = "format"
	argCalendarName    = "calendar_name"
)

// locationOptions are the location arguments of the single-location tools
func locationOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber(common.ArgGeonameID,
			mcp.Description("GeoNames.org location ID, e.g. 281184 for Jerusalem"),
		),
		mcp.WithString(common.ArgZip,
			mcp.Description("US zip code, e.g. '90210'"),
		),
		mcp.WithString(common.ArgCity,
			mcp.Description("Legacy city identifier, e.g. 'IL-Jerusalem'"),
		),
		mcp.WithNumber(common.ArgLatitude,
			mcp.Description("Latitude in decimal degrees (requires longitude and tzid)"),
		),
		mcp.WithNumber(common.ArgLongitude,
			mcp.Description("Longitude in decimal degrees (requires latitude and tzid)"),
		),
		mcp.WithString(common.ArgTZID,
			mcp.Description("Olson timezone for coordinates, e.g. 'Asia/Jerusalem'"),
		),
	}
}

// preferenceOptions are the non-location arguments shared by every tool
func preferenceOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber(argHavdalah,
			mcp.Description("Havdalah minutes after sundown. Omit for the default (tzeit hakochavim)"),
		),
		mcp.WithNumber(argCandleMinutes,
			mcp.Description("Candle-lighting minutes before sunset (default: 18)"),
		),
		mcp.WithString(argTransliteration,
			mcp.Description("Transliteration of titles: 'ashkenazic' or 'sephardic'"),
		),
		mcp.WithString(argLeyning,
			mcp.Description("Include Torah reading details: 'on' or 'off'"),
		),
		mcp.WithString(argDate,
			mcp.Description("Any date in the week to look up (YYYY-MM-DD). Defaults to the current week"),
		),
	}
}

// buildRequest applies the tool arguments to a new request.
func buildRequest(client *hebcal.Client, args map[string]interface{}) (*hebcal.ShabbatHandler, error) {
	h := client.Shabbat()
	common.ApplyLocationArgs(h, args)
	if err := applyPreferences(h, args); err != nil {
		return nil, err
	}
	return h, nil
}

// applyPreferences sets the non-location arguments
func applyPreferences(h *hebcal.ShabbatHandler, args map[string]interface{}) error {
	if v, ok := args[argHavdalah].(float64); ok {
		h.Havdalah(int(v))
	}
	if v, ok := args[argCandleMinutes].(float64); ok {
		h.MinutesBeforeSunset(int(v))
	}
	if v, ok := args[argTransliteration].(string); ok && v != "" {
		t, err := hebcal.ParseTransliteration(v)
		if err != nil {
			return err
		}
		h.Transliteration(t)
	}
	if v, ok := args[argLeyning].(string); ok && v != "" {
		l, err := hebcal.ParseLeyning(v)
		if err != nil {
			return err
		}
		h.Leyning(l)
	}
	if v, ok := args[argDate].(string); ok && v != "" {
		date, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
		}
		h.Date(date)
	}

	return nil
}

// errorResult reports a failed request with its classification, so the
// caller can tell a rejected location from an unreachable service.
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("hebcal.com request failed (%s): %v", hebcal.Kind(err), err))
}
