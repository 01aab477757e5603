package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/hebcal/internal/config"
	"github.com/teemow/hebcal/internal/hebcal"
	"github.com/teemow/hebcal/internal/server"
)

// Resource URIs
const (
	URIProfile = "hebcal://profile"
	URIService = "hebcal://service"
)

const mimeJSON = "application/json"

// RegisterProfileResources registers the read-only resources describing
// the configured profile and the upstream service.
func RegisterProfileResources(s *mcpserver.MCPServer, sc *server.ServerContext, profile *config.Config) error {
	if profile == nil {
		return fmt.Errorf("profile is required")
	}

	profileResource := mcp.NewResource(
		URIProfile,
		"Default Location and Preferences",
		mcp.WithResourceDescription("The profile of this server: default location, candle-lighting and havdalah preferences, and export settings"),
		mcp.WithMIMEType(mimeJSON),
	)
	s.AddResource(profileResource, profileHandler(profile))

	serviceResource := mcp.NewResource(
		URIService,
		"Hebcal Service",
		mcp.WithResourceDescription("The hebcal.com endpoint this server queries and the location methods it accepts"),
		mcp.WithMIMEType(mimeJSON),
	)
	s.AddResource(serviceResource, serviceHandler(sc))

	return nil
}

func profileHandler(profile *config.Config) mcpserver.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data := map[string]interface{}{
			"location":    profile.Location,
			"preferences": profile.Preferences,
			"export":      profile.Export,
			"configured":  !profile.Location.IsZero(),
		}
		return jsonContents(request.Params.URI, data)
	}
}

func serviceHandler(sc *server.ServerContext) mcpserver.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		client := sc.Client()
		if client == nil {
			return nil, fmt.Errorf("no hebcal client configured")
		}

		data := map[string]interface{}{
			"base_url": client.BaseURL(),
			"endpoint": hebcal.EndpointShabbat,
			"location_methods": []string{
				string(hebcal.GeoGeoname),
				string(hebcal.GeoZip),
				string(hebcal.GeoCity),
				string(hebcal.GeoPos),
			},
		}
		return jsonContents(request.Params.URI, data)
	}
}

func jsonContents(uri string, data interface{}) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource %s: %w", uri, err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(jsonData),
		},
	}, nil
}
