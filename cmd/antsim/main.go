// Command antsim runs the Ant System TSP engine, either headless for a fixed
// number of iterations or as an HTTP + WebSocket service for a renderer.
//
//	antsim -config configs/square.yaml -iterations 200 -chart-dir out
//	antsim -config configs/random.yaml -serve -http-addr :8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/katalvlaran/antcolony/chart"
	"github.com/katalvlaran/antcolony/colony"
	"github.com/katalvlaran/antcolony/config"
	"github.com/katalvlaran/antcolony/driver"
	"github.com/katalvlaran/antcolony/logger"
	"github.com/katalvlaran/antcolony/metrics"
	"github.com/katalvlaran/antcolony/server"
)

const defaultHeadlessIterations = 100

func main() {
	var (
		configPath string
		logLevel   string
		logFormat  string
		seed       int64
		iterations int
		serve      bool
		httpAddr   string
		chartDir   string
	)

	flag.StringVar(&configPath, "config", "", "scenario YAML file")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 selects the default seed)")
	flag.IntVar(&iterations, "iterations", 0, "iterations to run (0 = config value, unlimited when serving)")
	flag.BoolVar(&serve, "serve", false, "serve HTTP and WebSocket instead of running headless")
	flag.StringVar(&httpAddr, "http-addr", ":8080", "HTTP listen address")
	flag.StringVar(&chartDir, "chart-dir", "", "directory for convergence and tour charts")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "seed":
			cfg.Seed = seed
		case "iterations":
			cfg.Run.MaxIterations = iterations
		case "http-addr":
			cfg.HTTP.Addr = httpAddr
		case "chart-dir":
			cfg.Chart.Dir = chartDir
		}
	})

	logger.SetDefault(logger.NewFormat(cfg.LogFormat, cfg.LogLevel, os.Stdout))

	if err := run(cfg, serve); err != nil {
		logger.Error("antsim failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, serve bool) error {
	cities, err := cfg.BuildCities()
	if err != nil {
		return fmt.Errorf("build cities: %w", err)
	}

	engine, err := colony.NewEngine(cities,
		colony.WithSeed(cfg.Seed),
		colony.WithInitialLevel(cfg.Run.InitialPheromone),
	)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	collector := metrics.New()
	opts := []driver.Option{
		driver.WithLogger(logger.Default),
		driver.WithObserver(collector),
		driver.WithInterval(cfg.Interval()),
		driver.WithMaxIterations(cfg.Run.MaxIterations),
	}

	if !serve {
		limit := cfg.Run.MaxIterations
		if limit == 0 {
			limit = defaultHeadlessIterations
		}
		opts = append(opts, driver.WithHistoryLimit(limit), driver.WithPaused())
		d, err := driver.New(engine, cfg.Params, opts...)
		if err != nil {
			return fmt.Errorf("create driver: %w", err)
		}
		return runHeadless(d, limit, cfg.Chart.Dir)
	}

	d, err := driver.New(engine, cfg.Params, opts...)
	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}
	return runServer(d, collector, cfg)
}

func runHeadless(d *driver.Driver, iterations int, chartDir string) error {
	logger.Info("running headless", "run_id", d.RunID(), "iterations", iterations, "params", d.Params())

	started := time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := d.Step(); err != nil {
			return fmt.Errorf("iteration %d: %w", i+1, err)
		}
	}

	snap := d.Latest().Snapshot
	logger.Info("run finished",
		"iterations", snap.Iteration,
		"best_length", snap.BestLength,
		"best_tour", snap.BestTour,
		"took", time.Since(started),
	)
	return writeCharts(d, chartDir)
}

func runServer(d *driver.Driver, collector *metrics.Collector, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(d,
		server.WithLogger(logger.Default),
		server.WithMetrics(collector.Handler()),
		server.WithToggleRadius(cfg.Run.ToggleRadius),
	)
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	driverDone := make(chan error, 1)
	go func() {
		driverDone <- d.Run(ctx)
	}()

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown requested")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	if err := <-driverDone; err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("driver stopped", "error", err)
	}

	return writeCharts(d, cfg.Chart.Dir)
}

func writeCharts(d *driver.Driver, dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}

	snap := d.Latest().Snapshot
	convergence := filepath.Join(dir, "convergence.png")
	if err := chart.Convergence(d.History(), convergence); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			logger.Warn("no iterations to chart")
			return nil
		}
		return err
	}
	tour := filepath.Join(dir, "tour.png")
	if err := chart.Tour(snap.Cities, snap.BestTour, tour); err != nil {
		return err
	}
	trails := filepath.Join(dir, "trails.png")
	if err := chart.Trails(snap, trails); err != nil {
		return err
	}

	logger.Info("charts written", "convergence", convergence, "tour", tour, "trails", trails)
	return nil
}
