package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RiverChu0/TikTokDownloader/internal/config"
	"github.com/RiverChu0/TikTokDownloader/internal/home"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("storage:\n  format: csv\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	mgr, err := config.NewManager(cfgPath)
	if err != nil {
		t.Fatalf("config.NewManager() error = %v", err)
	}

	h, err := home.New(filepath.Join(t.TempDir(), "home"))
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}
	if err := h.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}

	srv, err := New(Config{ConfigManager: mgr, HomeDir: h})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestExtractEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/extract", map[string]any{
		"type": "single-work",
		"items": []map[string]any{
			{
				"aweme_id": "7001",
				"desc":     "hello",
				"video": map[string]any{
					"play_addr": map[string]any{"url_list": []string{"a", "b"}},
				},
			},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		RequestID string           `json:"request_id"`
		Count     int              `json:"count"`
		Records   []map[string]any `json:"records"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if resp.RequestID == "" {
		t.Error("request_id missing")
	}
	if resp.Records[0]["id"] != "7001" {
		t.Errorf("record id = %v, want 7001", resp.Records[0]["id"])
	}
	if resp.Records[0]["downloads"] != "b" {
		t.Errorf("downloads = %v, want b", resp.Records[0]["downloads"])
	}
}

func TestExtractUnknownType(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/extract", map[string]any{
		"type": "bogus",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestExtractBadDate(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/extract", map[string]any{
		"type":     "user-timeline",
		"earliest": "not-a-date",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestExtractSave(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/extract", map[string]any{
		"type": "single-work",
		"save": true,
		"items": []map[string]any{
			{"aweme_id": "42"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Export string `json:"export"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Export == "" {
		t.Fatal("export path missing")
	}

	f, err := os.Open(resp.Export)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("export rows = %d, want header + 1 record", len(rows))
	}
}
