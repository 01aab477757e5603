package cmd

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// fakeService serves a canned response and remembers the last query
type fakeService struct {
	mu     sync.Mutex
	status int
	body   []byte
	query  url.Values
	calls  int
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.query = r.URL.Query()
	f.calls++
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

// startFakeService points HEBCAL_BASE_URL at a fake service and the
// profile at an empty temp dir for the duration of the test.
func startFakeService(t *testing.T, status int, body []byte) *fakeService {
	t.Helper()

	fake := &fakeService{status: status, body: body}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	t.Setenv("HEBCAL_BASE_URL", srv.URL)
	useProfile(t, filepath.Join(t.TempDir(), "config.yaml"))
	return fake
}

// useProfile sets --config for the duration of the test
func useProfile(t *testing.T, path string) {
	t.Helper()
	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })
}

func fixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/shabbat_zip.json")
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	return data
}
