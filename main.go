package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/garland/components"
	"github.com/pthm-cable/garland/config"
	"github.com/pthm-cable/garland/layout"
	"github.com/pthm-cable/garland/systems"
	"github.com/pthm-cable/garland/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV reports and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed for scattered lights (0 = time-based)")
	logLevel := flag.String("log-level", "", "Override logging.level (debug, info, warn, error)")
	logStats := flag.Bool("log-stats", false, "Log coverage and timing stats via slog")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *logLevel != "" {
		level, err := config.ParseLevel(*logLevel)
		if err != nil {
			slog.Error("invalid log level", "error", err)
			os.Exit(1)
		}
		cfg.Derived.LogLevel = level
	}
	slog.SetDefault(cfg.NewLogger())

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	if err := run(cfg, rngSeed, *outputDir, *logStats); err != nil {
		slog.Error("layout failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, seed int64, outputDir string, logStats bool) error {
	perf := telemetry.NewPerfCollector()
	perf.Start()

	// Malformed input fails here, before any placement runs.
	perf.StartPhase(telemetry.PhasePrepare)
	if _, err := layout.Prepare(cfg); err != nil {
		return err
	}

	perf.StartPhase(telemetry.PhaseSolve)
	l, err := layout.NewCache().Get(cfg, seed)
	if err != nil {
		return err
	}
	slog.Info("layout built", append([]any{"seed", seed}, l.Summary()...)...)

	perf.StartPhase(telemetry.PhaseScene)
	scene := systems.NewScene(l, cfg.Scene)
	for k := components.Kind(0); int(k) < components.KindCount(); k++ {
		slog.Debug("scene items", "kind", k.String(), "count", scene.Count(k))
	}

	perf.StartPhase(telemetry.PhaseCoverage)
	cov := telemetry.LayoutCoverage(l, cfg.Telemetry.CoverageSectors)

	perf.StartPhase(telemetry.PhaseOutput)
	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}
	if err := om.WriteLayout(l, cov, cfg.Telemetry.ProfileSamples); err != nil {
		return err
	}
	perf.End()

	stats := perf.Stats()
	if err := om.WritePerf(stats); err != nil {
		return err
	}

	if logStats {
		telemetry.LogCoverage(cov)
		stats.LogStats()
	}
	if om != nil {
		slog.Info("reports written", "dir", om.Dir())
	}
	return nil
}
