package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/psantana5/chronograph/pkg/chronograph"
)

func TestExporterServesRegistryState(t *testing.T) {
	reg := chronograph.NewRegistry()
	cg := reg.GetOrCreate("scraped", chronograph.Options{})
	cg.Start("work")
	time.Sleep(50 * time.Millisecond)
	cg.Stop()

	exporter := NewExporter(reg)
	handler, err := exporter.Handler()
	if err != nil {
		t.Fatalf("Handler failed: %v", err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()

	for _, want := range []string{
		`chronograph_total_elapsed_seconds{chronograph="scraped"}`,
		`chronograph_splits{chronograph="scraped"} 1`,
		`chronograph_running{chronograph="scraped"} 0`,
		`chronograph_last_split_seconds{chronograph="scraped"}`,
		`chronograph_exporter_uptime_seconds`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q:\n%s", want, body)
		}
	}
}

func TestExporterRunningGauge(t *testing.T) {
	reg := chronograph.NewRegistry()
	cg := reg.GetOrCreate("live", chronograph.Options{})
	cg.Start("open")

	exporter := NewExporter(reg)
	handler, err := exporter.Handler()
	if err != nil {
		t.Fatalf("Handler failed: %v", err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	if !strings.Contains(rr.Body.String(), `chronograph_running{chronograph="live"} 1`) {
		t.Errorf("running chronograph not reported as running:\n%s", rr.Body.String())
	}
	cg.Stop()
}
