package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/chronograph/internal/probes"
	"github.com/psantana5/chronograph/pkg/api"
	"github.com/psantana5/chronograph/pkg/auth"
	"github.com/psantana5/chronograph/pkg/chronograph"
	"github.com/psantana5/chronograph/pkg/logging"
	"github.com/psantana5/chronograph/pkg/metrics"
	"github.com/psantana5/chronograph/pkg/ratelimit"
	"github.com/psantana5/chronograph/pkg/shutdown"
	"github.com/psantana5/chronograph/pkg/tracing"
)

var (
	listenAddr    string
	probeInterval time.Duration
	rateRPS       float64
	rateBurst     int
	otlpEndpoint  string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chronograph registry over HTTP",
	Long:  `Run a background probe loop that keeps timing host probes, and expose the process-wide registry over an HTTP API with Prometheus metrics and optional OTLP tracing.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", ":8080", "listen address")
	serveCmd.Flags().DurationVar(&probeInterval, "interval", 30*time.Second, "probe cycle interval")
	serveCmd.Flags().Float64Var(&rateRPS, "rate-rps", 10, "API rate limit in requests per second per client")
	serveCmd.Flags().IntVar(&rateBurst, "rate-burst", 20, "API rate limit burst size")
	serveCmd.Flags().StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP HTTP endpoint; enables split-to-span export when set")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(logging.ParseLevel(logLevel), logJSON)

	if viper.GetString("listen") != "" && !cmd.Flags().Changed("listen") {
		listenAddr = viper.GetString("listen")
	}

	registry := chronograph.Default()
	cg := registry.GetOrCreate("host-probes", chronograph.Options{
		Verbosity: verbosity,
		Logger:    logger,
		LogLevel:  logging.DEBUG,
	})

	// Tracing
	provider, err := tracing.InitTracer(tracing.Config{
		ServiceName:    "chrono",
		ServiceVersion: "1.0.0",
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        otlpEndpoint != "",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	// HTTP API
	router := mux.NewRouter()
	api.NewHandler(registry, logger).RegisterRoutes(router)

	exporter := metrics.NewExporter(registry)
	metricsHandler, err := exporter.Handler()
	if err != nil {
		return fmt.Errorf("failed to build metrics handler: %w", err)
	}
	router.Handle("/metrics", metricsHandler).Methods("GET")

	// Middleware: rate limiting always, API key when configured
	keys := auth.NewKeyManager()
	if apiKey != "" {
		if err := keys.AddKey(apiKey); err != nil {
			return err
		}
		logger.Info("API key authentication enabled")
	}
	limiter := ratelimit.NewLimiter(rateRPS, rateBurst)
	handler := limiter.Middleware(nil)(keys.Middleware(router))

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background probe loop
	done := make(chan struct{})
	go probeLoop(cg, provider, logger, done)

	go func() {
		logger.Info("Serving chronograph registry", map[string]interface{}{
			"listen": listenAddr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	mgr := shutdown.New(10*time.Second, logger)
	mgr.Register(func(ctx context.Context) error {
		close(done)
		return nil
	})
	mgr.Register(shutdown.StopHTTPServer(srv))
	mgr.Register(provider.Shutdown)
	mgr.Wait()
	return nil
}

// probeLoop runs one probe cycle per tick, exporting each cycle's new
// splits as spans.
func probeLoop(cg *chronograph.Chronograph, provider *tracing.Provider, logger *logging.Logger, done <-chan struct{}) {
	exported := 0
	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()

	runCycle := func() {
		if err := probes.Run(cg, probes.Defaults()); err != nil {
			logger.Warn("Probe cycle reported an error", map[string]interface{}{
				"error": err.Error(),
			})
		}
		splits := cg.Splits()
		provider.ExportRecords(context.Background(), cg.Name(), cg.ID(), splits[exported:])
		exported = len(splits)
		logger.Debug("Probe cycle complete", map[string]interface{}{
			"splits":        len(splits),
			"total_seconds": cg.Seconds(),
		})
	}

	runCycle()
	for {
		select {
		case <-ticker.C:
			runCycle()
		case <-done:
			return
		}
	}
}
