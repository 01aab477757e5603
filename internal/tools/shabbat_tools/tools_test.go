package shabbat_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/hebcal/internal/hebcal"
	"github.com/teemow/hebcal/internal/server"
)

// fakeService serves a canned response and remembers the last query
type fakeService struct {
	mu     sync.Mutex
	status int
	body   []byte
	query  url.Values
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.query = r.URL.Query()
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = w.Write(f.body)
}

func (f *fakeService) lastQuery() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

func setup(t *testing.T, status int, body []byte) (*mcpserver.MCPServer, *fakeService) {
	t.Helper()

	fake := &fakeService{status: status, body: body}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := hebcal.NewClient(hebcal.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	sc, err := server.NewServerContext(context.Background(), client)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })

	mcpSrv := mcpserver.NewMCPServer("test-server", "1.0.0",
		mcpserver.WithToolCapabilities(true),
	)
	if err := RegisterShabbatTools(mcpSrv, sc); err != nil {
		t.Fatalf("RegisterShabbatTools() error = %v", err)
	}
	return mcpSrv, fake
}

func fixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/shabbat_zip.json")
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	return data
}

func call(t *testing.T, s *mcpserver.MCPServer, tool string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()

	st := s.GetTool(tool)
	if st == nil {
		t.Fatalf("tool %s not registered", tool)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      tool,
			Arguments: args,
		},
	}
	result, err := st.Handler(context.Background(), request)
	if err != nil {
		t.Fatalf("%s returned error: %v", tool, err)
	}
	if result == nil {
		t.Fatalf("%s returned nil result", tool)
	}
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return tc.Text
}

func TestRegisterShabbatTools(t *testing.T) {
	s, _ := setup(t, http.StatusOK, fixture(t))

	tools := s.ListTools()
	for _, name := range []string{ToolShabbatTimes, ToolShabbatICS} {
		st, ok := tools[name]
		if !ok {
			t.Errorf("expected tool %s to be registered", name)
			continue
		}
		if st.Tool.Annotations.ReadOnlyHint == nil || !*st.Tool.Annotations.ReadOnlyHint {
			t.Errorf("expected %s to be read-only", name)
		}
		if _, ok := st.Tool.InputSchema.Properties["zip"]; !ok {
			t.Errorf("expected %s to accept a zip argument", name)
		}
	}
}

func TestShabbatTimesJSON(t *testing.T) {
	s, fake := setup(t, http.StatusOK, fixture(t))

	result := call(t, s, ToolShabbatTimes, map[string]interface{}{
		"zip":      "90210",
		"havdalah": float64(50),
		"leyning":  "off",
		"date":     "2024-03-08",
	})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", text(t, result))
	}

	var decoded hebcal.Shabbat
	if err := json.Unmarshal([]byte(text(t, result)), &decoded); err != nil {
		t.Fatalf("result is not a valid Shabbat document: %v", err)
	}
	if len(decoded.Items) != 4 {
		t.Errorf("expected 4 items, got %d", len(decoded.Items))
	}
	if decoded.Location.Zip != "90210" {
		t.Errorf("expected zip 90210, got %q", decoded.Location.Zip)
	}

	q := fake.lastQuery()
	want := map[string]string{
		"geo": "zip", "zip": "90210", "m": "50", "leyning": "off",
		"gy": "2024", "gm": "3", "gd": "8", "cfg": "json",
	}
	for key, value := range want {
		if got := q.Get(key); got != value {
			t.Errorf("query %s = %q, want %q", key, got, value)
		}
	}
}

func TestShabbatTimesText(t *testing.T) {
	s, _ := setup(t, http.StatusOK, fixture(t))

	result := call(t, s, ToolShabbatTimes, map[string]interface{}{
		"zip":    "90210",
		"format": "text",
	})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", text(t, result))
	}
	if !strings.Contains(text(t, result), "Candle lighting: 5:39pm") {
		t.Errorf("expected candle lighting line, got %s", text(t, result))
	}
}

func TestShabbatTimesCoordinatesWinOverZip(t *testing.T) {
	s, fake := setup(t, http.StatusOK, fixture(t))

	call(t, s, ToolShabbatTimes, map[string]interface{}{
		"zip":       "90210",
		"latitude":  31.77,
		"longitude": 35.21,
		"tzid":      "Asia/Jerusalem",
	})

	q := fake.lastQuery()
	if q.Get("geo") != "pos" {
		t.Errorf("geo = %q, want pos", q.Get("geo"))
	}
	if q.Has("zip") {
		t.Errorf("zip must not be sent in coordinates mode, got %q", q.Get("zip"))
	}
	if q.Get("latitude") != "31.77" || q.Get("longitude") != "35.21" || q.Get("tzid") != "Asia/Jerusalem" {
		t.Errorf("unexpected coordinates in query: %v", q)
	}
}

func TestShabbatTimesServiceError(t *testing.T) {
	s, _ := setup(t, http.StatusBadRequest, []byte(`{"error":"Sorry, can't find ZIP code: 00000"}`))

	result := call(t, s, ToolShabbatTimes, map[string]interface{}{"zip": "00000"})
	if !result.IsError {
		t.Fatal("expected error result")
	}
	msg := text(t, result)
	if !strings.Contains(msg, "(service)") || !strings.Contains(msg, "can't find ZIP code") {
		t.Errorf("expected classified service error, got %q", msg)
	}
}

func TestShabbatTimesDecodeError(t *testing.T) {
	s, _ := setup(t, http.StatusOK, []byte(`<html>maintenance</html>`))

	result := call(t, s, ToolShabbatTimes, map[string]interface{}{"zip": "90210"})
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(text(t, result), "(decode)") {
		t.Errorf("expected decode error, got %q", text(t, result))
	}
}

func TestShabbatTimesInvalidArguments(t *testing.T) {
	s, _ := setup(t, http.StatusOK, fixture(t))

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{name: "format", args: map[string]interface{}{"format": "xml"}, want: "invalid format"},
		{name: "transliteration", args: map[string]interface{}{"transliteration": "yiddish"}, want: "invalid transliteration"},
		{name: "leyning", args: map[string]interface{}{"leyning": "maybe"}, want: "invalid leyning"},
		{name: "date", args: map[string]interface{}{"date": "03/08/2024"}, want: "invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := call(t, s, ToolShabbatTimes, tt.args)
			if !result.IsError {
				t.Fatal("expected error result")
			}
			if !strings.Contains(text(t, result), tt.want) {
				t.Errorf("expected %q in %q", tt.want, text(t, result))
			}
		})
	}
}

func TestShabbatICS(t *testing.T) {
	s, _ := setup(t, http.StatusOK, fixture(t))

	result := call(t, s, ToolShabbatICS, map[string]interface{}{
		"zip":           "90210",
		"calendar_name": "Shabbat in Beverly Hills",
	})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", text(t, result))
	}
	if !strings.Contains(text(t, result), "Exported 4 events") {
		t.Errorf("unexpected summary %q", text(t, result))
	}

	if len(result.Content) != 2 {
		t.Fatalf("expected summary and resource content, got %d items", len(result.Content))
	}
	embedded, ok := result.Content[1].(mcp.EmbeddedResource)
	if !ok {
		t.Fatalf("expected embedded resource, got %T", result.Content[1])
	}
	resource, ok := embedded.Resource.(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected text resource, got %T", embedded.Resource)
	}
	if resource.MIMEType != "text/calendar" {
		t.Errorf("MIMEType = %q, want text/calendar", resource.MIMEType)
	}
	if !strings.Contains(resource.Text, "BEGIN:VCALENDAR") || !strings.Contains(resource.Text, "X-WR-CALNAME:Shabbat in Beverly Hills") {
		t.Errorf("unexpected calendar:\n%s", resource.Text)
	}
	if got := strings.Count(resource.Text, "BEGIN:VEVENT"); got != 4 {
		t.Errorf("expected 4 events, got %d", got)
	}
}

func TestShabbatICSServiceError(t *testing.T) {
	s, _ := setup(t, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))

	result := call(t, s, ToolShabbatICS, map[string]interface{}{"zip": "90210"})
	if !result.IsError {
		t.Fatal("expected error result")
	}
}
