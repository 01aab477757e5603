package shabbat_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/trace"

	"github.com/teemow/hebcal/internal/hebcal"
	"github.com/teemow/hebcal/internal/ics"
	"github.com/teemow/hebcal/internal/instrumentation"
	"github.com/teemow/hebcal/internal/server"
	"github.com/teemow/hebcal/internal/tools/batch"
	"github.com/teemow/hebcal/internal/tools/common"
)

// Tool names
const (
	ToolShabbatTimes = "hebcal_shabbat_times"
	ToolShabbatICS   = "hebcal_shabbat_ics"
	ToolShabbatBatch = "hebcal_shabbat_batch"
)

const (
	formatJSON = "json"
	formatText = "text"

	icsMIMEType = "text/calendar"
)

var endpoint = strings.TrimPrefix(hebcal.EndpointShabbat, "/")

// RegisterShabbatTools registers the Shabbat times tools with the MCP server
func RegisterShabbatTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	timesOpts := []mcp.ToolOption{
		mcp.WithDescription("Get candle-lighting, Torah portion (parashat) and havdalah times for the Shabbat of a given week and location"),
		mcp.WithTitleAnnotation("Shabbat times"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString(argFormat,
			mcp.Description("Output format: 'json' (default) or 'text'"),
			mcp.Enum(formatJSON, formatText),
		),
	}
	timesTool := mcp.NewTool(ToolShabbatTimes, append(append(timesOpts, locationOptions()...), preferenceOptions()...)...)

	s.AddTool(timesTool, common.InstrumentedToolHandler(ToolShabbatTimes, endpoint, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleShabbatTimes(ctx, request, sc)
		}))

	icsOpts := []mcp.ToolOption{
		mcp.WithDescription("Export the Shabbat times of a given week and location as an iCalendar (.ics) document"),
		mcp.WithTitleAnnotation("Shabbat times as iCalendar"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString(argCalendarName,
			mcp.Description("Calendar name (X-WR-CALNAME). Defaults to the result title"),
		),
	}
	icsTool := mcp.NewTool(ToolShabbatICS, append(append(icsOpts, locationOptions()...), preferenceOptions()...)...)

	s.AddTool(icsTool, common.InstrumentedToolHandler(ToolShabbatICS, endpoint, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleShabbatICS(ctx, request, sc)
		}))

	batchOpts := []mcp.ToolOption{
		mcp.WithDescription("Get Shabbat times for several locations at once. Each location fails or succeeds on its own"),
		mcp.WithTitleAnnotation("Shabbat times for several locations"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithArray(argLocations,
			mcp.Required(),
			mcp.Description(locationsDescription),
			mcp.WithStringItems(),
			mcp.MaxItems(batch.MaxEntries),
		),
	}
	batchTool := mcp.NewTool(ToolShabbatBatch, append(batchOpts, preferenceOptions()...)...)

	s.AddTool(batchTool, common.InstrumentedToolHandler(ToolShabbatBatch, endpoint, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleShabbatBatch(ctx, request, sc)
		}))

	return nil
}

// fetch sends the request described by the tool arguments
func fetch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*hebcal.Shabbat, *mcp.CallToolResult) {
	h, err := buildRequest(sc.Client(), request.GetArguments())
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}

	result, err := h.Send(ctx)
	if err != nil {
		return nil, errorResult(err)
	}

	instrumentation.AddSpanEvent(trace.SpanFromContext(ctx), "shabbat.decoded",
		instrumentation.NewSpanAttributeBuilder().WithItemCount(len(result.Items)).Build()...)
	return result, nil
}

func handleShabbatTimes(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	format := formatJSON
	if v, ok := request.GetArguments()[argFormat].(string); ok && v != "" {
		format = strings.ToLower(v)
	}
	if format != formatJSON && format != formatText {
		return mcp.NewToolResultError(fmt.Sprintf("invalid format %q, must be one of: json, text", format)), nil
	}

	result, errResult := fetch(ctx, request, sc)
	if errResult != nil {
		return errResult, nil
	}

	if format == formatText {
		return mcp.NewToolResultText(result.Text()), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleShabbatICS(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	result, errResult := fetch(ctx, request, sc)
	if errResult != nil {
		return errResult, nil
	}

	opts := ics.Options{}
	if v, ok := request.GetArguments()[argCalendarName].(string); ok {
		opts.CalendarName = v
	}

	data, err := ics.Encode(result, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to export calendar: %v", err)), nil
	}

	summary := fmt.Sprintf("Exported %d events for %s", len(result.Items), result.Location.Title)
	return mcp.NewToolResultResource(summary, mcp.TextResourceContents{
		URI:      "hebcal://shabbat.ics",
		MIMEType: icsMIMEType,
		Text:     data,
	}), nil
}
