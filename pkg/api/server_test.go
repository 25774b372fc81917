package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/psantana5/chronograph/pkg/chronograph"
	"github.com/psantana5/chronograph/pkg/logging"
)

func newTestRouter(reg *chronograph.Registry) *mux.Router {
	logger := logging.NewLogger(logging.ERROR, false)
	logger.SetOutput(io.Discard)

	router := mux.NewRouter()
	NewHandler(reg, logger).RegisterRoutes(router)
	return router
}

func TestListChronographs(t *testing.T) {
	reg := chronograph.NewRegistry()
	cg := reg.GetOrCreate("listed", chronograph.Options{})
	cg.Start("a")
	time.Sleep(50 * time.Millisecond)
	cg.Stop()

	router := newTestRouter(reg)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/chronographs", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var result struct {
		Chronographs []Summary `json:"chronographs"`
		Count        int       `json:"count"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Count != 1 || len(result.Chronographs) != 1 {
		t.Fatalf("count = %d, chronographs = %d, want 1 each", result.Count, len(result.Chronographs))
	}

	got := result.Chronographs[0]
	if got.Name != "listed" {
		t.Errorf("name = %q, want listed", got.Name)
	}
	if got.Splits != 1 {
		t.Errorf("splits = %d, want 1", got.Splits)
	}
	if got.Running {
		t.Error("stopped chronograph reported as running")
	}
	if got.TotalSeconds <= 0 {
		t.Errorf("total_seconds = %f, want > 0", got.TotalSeconds)
	}
}

func TestGetChronograph(t *testing.T) {
	reg := chronograph.NewRegistry()
	cg := reg.GetOrCreate("detailed", chronograph.Options{})
	cg.Start("phase1")
	cg.Split("phase2")

	router := newTestRouter(reg)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/chronographs/detailed", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var detail Detail
	if err := json.NewDecoder(rr.Body).Decode(&detail); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if detail.Name != "detailed" || detail.ID == "" {
		t.Errorf("identity fields = %q/%q", detail.Name, detail.ID)
	}
	if !detail.Running {
		t.Error("chronograph with open split not reported as running")
	}
	if len(detail.Splits) != 2 {
		t.Fatalf("got %d splits, want 2", len(detail.Splits))
	}
	if detail.Splits[0].Label != "phase1" || detail.Splits[1].Label != "phase2" {
		t.Errorf("labels = [%q, %q]", detail.Splits[0].Label, detail.Splits[1].Label)
	}
	if detail.Splits[0].Stop == nil {
		t.Error("first split should be closed")
	}
	if detail.Splits[1].Stop != nil {
		t.Error("second split should be open")
	}

	cg.Stop()
}

func TestGetChronographNotFound(t *testing.T) {
	router := newTestRouter(chronograph.NewRegistry())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/chronographs/missing", nil))

	if rr.Code != 404 {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestGetReport(t *testing.T) {
	reg := chronograph.NewRegistry()
	cg := reg.GetOrCreate("reported", chronograph.Options{})
	cg.Start("a")
	cg.Stop()

	router := newTestRouter(reg)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/chronographs/reported/report", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Split a:") || !strings.Contains(body, "Total elapsed time:") {
		t.Errorf("unexpected report body:\n%s", body)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(chronograph.NewRegistry())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health body: %s", rr.Body.String())
	}
}
