package shabbat_tools

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/teemow/hebcal/internal/hebcal"
	"github.com/teemow/hebcal/internal/tools/batch"
)

func TestApplyLocationEntry(t *testing.T) {
	tests := []struct {
		entry   string
		wantGeo hebcal.Geo
		want    map[string]string
	}{
		{entry: "90210", wantGeo: hebcal.GeoZip, want: map[string]string{"zip": "90210"}},
		{entry: "zip: 10001", wantGeo: hebcal.GeoZip, want: map[string]string{"zip": "10001"}},
		{entry: "geonameid:281184", wantGeo: hebcal.GeoGeoname, want: map[string]string{"geonameid": "281184"}},
		{entry: "city:IL-Jerusalem", wantGeo: hebcal.GeoCity, want: map[string]string{"city": "IL-Jerusalem"}},
		{
			entry:   "pos:31.77, 35.21, Asia/Jerusalem",
			wantGeo: hebcal.GeoPos,
			want:    map[string]string{"latitude": "31.77", "longitude": "35.21", "tzid": "Asia/Jerusalem"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			h := hebcal.Default().Shabbat()
			if err := applyLocationEntry(h, tt.entry); err != nil {
				t.Fatalf("applyLocationEntry() error = %v", err)
			}
			v := h.Options().Values()
			if got := v.Get("geo"); got != string(tt.wantGeo) {
				t.Errorf("geo = %q, want %q", got, tt.wantGeo)
			}
			for key, value := range tt.want {
				if got := v.Get(key); got != value {
					t.Errorf("%s = %q, want %q", key, got, value)
				}
			}
		})
	}
}

func TestApplyLocationEntryInvalid(t *testing.T) {
	for _, entry := range []string{"zip:", "geonameid:jerusalem", "pos:31.77,35.21", "pos:north,35.21,UTC", "pos:31.77,east,UTC", "country:IL"} {
		t.Run(entry, func(t *testing.T) {
			if err := applyLocationEntry(hebcal.Default().Shabbat(), entry); err == nil {
				t.Errorf("applyLocationEntry(%q) expected error", entry)
			}
		})
	}
}

func TestShabbatBatch(t *testing.T) {
	s, fake := setup(t, http.StatusOK, fixture(t))

	result := call(t, s, ToolShabbatBatch, map[string]interface{}{
		"locations":      []interface{}{"90210", "geonameid:oops"},
		"candle_minutes": float64(30),
	})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", text(t, result))
	}

	var br struct {
		Total      int `json:"total"`
		Successful int `json:"successful"`
		Failed     int `json:"failed"`
		Results    []struct {
			Key    string          `json:"key"`
			Status string          `json:"status"`
			Result json.RawMessage `json:"result"`
			Error  string          `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(text(t, result)), &br); err != nil {
		t.Fatalf("result is not a batch document: %v", err)
	}

	if br.Total != 2 || br.Successful != 1 || br.Failed != 1 {
		t.Fatalf("unexpected summary %+v", br)
	}
	if br.Results[0].Key != "90210" || br.Results[0].Status != batch.StatusSuccess {
		t.Errorf("results[0] = %+v", br.Results[0])
	}
	var decoded hebcal.Shabbat
	if err := json.Unmarshal(br.Results[0].Result, &decoded); err != nil {
		t.Errorf("results[0] is not a Shabbat document: %v", err)
	}
	if br.Results[1].Status != batch.StatusError || !strings.Contains(br.Results[1].Error, "invalid geonameid") {
		t.Errorf("results[1] = %+v", br.Results[1])
	}

	if got := fake.lastQuery().Get("b"); got != "30" {
		t.Errorf("b = %q, want 30", got)
	}
}

func TestShabbatBatchServiceErrors(t *testing.T) {
	s, _ := setup(t, http.StatusBadRequest, []byte(`{"error":"Sorry, can't find ZIP code"}`))

	result := call(t, s, ToolShabbatBatch, map[string]interface{}{
		"locations": `["00000", "00001"]`,
	})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", text(t, result))
	}

	out := text(t, result)
	if !strings.Contains(out, `"failed": 2`) {
		t.Errorf("expected both locations to fail:\n%s", out)
	}
	if !strings.Contains(out, "(service)") {
		t.Errorf("expected classified errors:\n%s", out)
	}
}

func TestShabbatBatchInvalidArgs(t *testing.T) {
	s, fake := setup(t, http.StatusOK, fixture(t))

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{name: "missing locations", args: map[string]interface{}{}},
		{name: "empty locations", args: map[string]interface{}{"locations": []interface{}{}}},
		{name: "invalid leyning", args: map[string]interface{}{"locations": "90210", "leyning": "sometimes"}},
		{name: "invalid date", args: map[string]interface{}{"locations": []interface{}{"90210", "10001"}, "date": "next friday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := call(t, s, ToolShabbatBatch, tt.args)
			if !result.IsError {
				t.Errorf("expected error result, got %s", text(t, result))
			}
		})
	}

	if q := fake.lastQuery(); q != nil {
		t.Errorf("expected no request, got %v", q)
	}
}
