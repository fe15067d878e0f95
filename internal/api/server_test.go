package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/planline/planline/pkg/history"
	"github.com/planline/planline/pkg/layout"
	"github.com/planline/planline/pkg/pipeline"
)

func newTestServer(t *testing.T) (*Server, *history.MemoryStore) {
	t.Helper()
	store := history.NewMemoryStore()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, store, logger)
	return NewServer(runner, store, logger, ""), store
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCheck(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/check", `{
		"sequence": ["the", "cat", "sat", "on"],
		"links": [{"from": "the", "to": "sat"}, {"from": "cat", "to": "on"}]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp checkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Report.Planar || resp.Report.Crossings != 1 {
		t.Errorf("report = %+v", resp.Report)
	}
}

func TestCheckErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed", `{"sequence": [`, http.StatusBadRequest},
		{"duplicate point", `{"sequence": ["a", "a"]}`, http.StatusBadRequest},
		{"unknown point", `{"sequence": ["a"], "links": [{"from": "a", "to": "b"}]}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/v1/check", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), `"code"`) {
				t.Errorf("error body missing code: %s", rec.Body.String())
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	s, store := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/generate", `{
		"dictionary": [
			{"point": "cat", "connectors": ["S"]},
			{"point": "mat", "connectors": ["O"]}
		],
		"roots": ["sat:S,O"]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := strings.Join(resp.Layout.Sequence, " "); got != "sat cat mat" {
		t.Errorf("sequence = %q", got)
	}
	if !resp.Report.Planar || len(resp.Layout.Links) != 2 {
		t.Errorf("response = %+v", resp)
	}
	if resp.RunID == "" {
		t.Fatal("expected a run id")
	}

	// The run is retrievable through the history endpoints.
	id, err := uuid.Parse(resp.RunID)
	if err != nil {
		t.Fatalf("run id: %v", err)
	}
	if _, err := store.Get(context.Background(), id); err != nil {
		t.Errorf("run not recorded: %v", err)
	}

	rec = doRequest(t, s, http.MethodGet, "/v1/runs/"+resp.RunID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get run status = %d: %s", rec.Code, rec.Body.String())
	}
	var run history.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	if !run.Planar || len(run.Links) != 2 {
		t.Errorf("run = %+v", run)
	}
}

func TestGenerateErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"no roots", `{"dictionary": [{"point": "a", "connectors": ["X"]}]}`, http.StatusBadRequest},
		{"bad root spec", `{"dictionary": [{"point": "a", "connectors": ["X"]}], "roots": [":X"]}`, http.StatusBadRequest},
		{"bad section", `{"dictionary": [{"point": "", "connectors": ["X"]}], "roots": ["a:X"]}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/v1/generate", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestListRuns(t *testing.T) {
	s, store := newTestServer(t)

	run := history.NewRun()
	run.Sequence = []string{"a", "b"}
	run.Links = []layout.Link{{From: "a", To: "b"}}
	run.Planar = true
	if err := store.Save(context.Background(), run); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, s, http.MethodGet, "/v1/runs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp listRunsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Runs) != 1 || resp.Runs[0].ID != run.ID {
		t.Errorf("runs = %+v", resp.Runs)
	}

	rec = doRequest(t, s, http.MethodGet, "/v1/runs?limit=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d", rec.Code)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/v1/runs/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/v1/runs/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestStartShutdown(t *testing.T) {
	s, _ := newTestServer(t)
	s.server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
