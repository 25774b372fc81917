package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/psantana5/chronograph/pkg/chronograph"
)

// Exporter exposes every Chronograph in a registry as Prometheus metrics.
// It implements prometheus.Collector, reading timing state at scrape time.
type Exporter struct {
	registry  *chronograph.Registry
	startTime time.Time

	totalElapsed *prometheus.Desc
	splits       *prometheus.Desc
	running      *prometheus.Desc
	lastSplit    *prometheus.Desc
	uptime       *prometheus.Desc
}

// NewExporter creates a new Prometheus exporter over reg.
func NewExporter(reg *chronograph.Registry) *Exporter {
	return &Exporter{
		registry:  reg,
		startTime: time.Now(),
		totalElapsed: prometheus.NewDesc(
			"chronograph_total_elapsed_seconds",
			"Total elapsed time accumulated across all splits",
			[]string{"chronograph"}, nil,
		),
		splits: prometheus.NewDesc(
			"chronograph_splits",
			"Number of recorded splits",
			[]string{"chronograph"}, nil,
		),
		running: prometheus.NewDesc(
			"chronograph_running",
			"Whether the chronograph currently has an open split (0 or 1)",
			[]string{"chronograph"}, nil,
		),
		lastSplit: prometheus.NewDesc(
			"chronograph_last_split_seconds",
			"Duration of the last completed split",
			[]string{"chronograph"}, nil,
		),
		uptime: prometheus.NewDesc(
			"chronograph_exporter_uptime_seconds",
			"Time since the exporter started",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- e.totalElapsed
	ch <- e.splits
	ch <- e.running
	ch <- e.lastSplit
	ch <- e.uptime
}

// Collect implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	e.registry.Each(func(c *chronograph.Chronograph) {
		name := c.Name()
		ch <- prometheus.MustNewConstMetric(e.totalElapsed, prometheus.GaugeValue, c.Seconds(), name)
		ch <- prometheus.MustNewConstMetric(e.splits, prometheus.GaugeValue, float64(c.SplitCount()), name)
		runningVal := 0.0
		if c.Running() {
			runningVal = 1.0
		}
		ch <- prometheus.MustNewConstMetric(e.running, prometheus.GaugeValue, runningVal, name)
		ch <- prometheus.MustNewConstMetric(e.lastSplit, prometheus.GaugeValue, c.LastSplitDuration().Seconds(), name)
	})
	ch <- prometheus.MustNewConstMetric(e.uptime, prometheus.GaugeValue, time.Since(e.startTime).Seconds())
}

// Handler returns an HTTP handler serving the exporter's metrics in
// Prometheus text format.
func (e *Exporter) Handler() (http.Handler, error) {
	promReg := prometheus.NewRegistry()
	if err := promReg.Register(e); err != nil {
		return nil, err
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		families, err := promReg.Gather()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
		enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
		for _, mf := range families {
			if err := enc.Encode(mf); err != nil {
				return
			}
		}
	}), nil
}
