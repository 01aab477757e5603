package shabbat_tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/hebcal/internal/hebcal"
	"github.com/teemow/hebcal/internal/server"
	"github.com/teemow/hebcal/internal/tools/batch"
)

const argLocations = "locations"

const locationsDescription = "Locations to look up. Each entry is a US zip code ('90210' or 'zip:90210'), " +
	"'geonameid:281184', 'city:IL-Jerusalem', or 'pos:<latitude>,<longitude>,<tzid>'"

// applyLocationEntry sets the location described by one batch entry
func applyLocationEntry(h *hebcal.ShabbatHandler, entry string) error {
	entry = strings.TrimSpace(entry)

	kind, value, found := strings.Cut(entry, ":")
	if !found {
		kind, value = "zip", entry
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("location %q has no value", entry)
	}

	switch strings.ToLower(kind) {
	case "zip":
		h.Zip(value)
	case "geonameid":
		id, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid geonameid %q", value)
		}
		h.GeonameID(id)
	case "city":
		h.City(value)
	case "pos":
		parts := strings.Split(value, ",")
		if len(parts) != 3 {
			return fmt.Errorf("invalid position %q, expected <latitude>,<longitude>,<tzid>", value)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q", parts[0])
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q", parts[1])
		}
		h.Latitude(lat).Longitude(lon).TZID(strings.TrimSpace(parts[2]))
	default:
		return fmt.Errorf("unknown location kind %q, must be one of: zip, geonameid, city, pos", kind)
	}
	return nil
}

func handleShabbatBatch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	locations, err := batch.ParseStringOrArray(args[argLocations], argLocations)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Preferences are validated once up front rather than per location
	if err := applyPreferences(sc.Client().Shabbat(), args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.Process(ctx, locations, batch.DefaultWorkers, func(ctx context.Context, entry string) (any, error) {
		h := sc.Client().Shabbat()
		if err := applyLocationEntry(h, entry); err != nil {
			return nil, err
		}
		if err := applyPreferences(h, args); err != nil {
			return nil, err
		}

		result, err := h.Send(ctx)
		if err != nil {
			return nil, fmt.Errorf("hebcal.com request failed (%s): %w", hebcal.Kind(err), err)
		}
		return result, nil
	})

	out, err := batch.FormatResults(results)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}
