// Command tune fits the ship's speed and friction to a target handling
// feel: the top speed under sustained thrust and how long it takes to coast
// to a stop once thrust is released.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/pixelstep/config"
)

// formatDuration formats a duration as MM:SS or HH:MM:SS for longer runs.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	topSpeed := flag.Float64("top-speed", 60, "Target top speed in units/s")
	glide := flag.Duration("glide", 1500*time.Millisecond, "Target time to coast to a stop")
	stop := flag.Float64("stop", 0.05, "Fraction of top speed that counts as stopped")
	maxEvals := flag.Int("max-evals", 400, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		fatal("--output is required")
	}
	if *topSpeed <= 0 || *glide <= 0 || *stop <= 0 || *stop >= 1 {
		fatal("targets must be positive and --stop must be in (0, 1)")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fatal("failed to create output directory", "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("failed to load config", "error", err)
	}
	slog.SetDefault(cfg.Log.NewLogger(os.Stdout))

	var records []EvalRecord
	startTime := time.Now()
	tuner := &Tuner{
		Params:   NewParamVector(),
		Base:     cfg.Params,
		TickRate: cfg.Clock.TickRate,
		Targets:  Targets{TopSpeed: *topSpeed, Glide: *glide, Stop: *stop},
		MaxEvals: *maxEvals,
		OnEval: func(r EvalRecord) {
			records = append(records, r)
			if r.Eval%25 == 0 {
				slog.Info("evaluation",
					"eval", r.Eval,
					"fitness", r.Fitness,
					"speed", r.Speed,
					"friction", r.Friction,
					"elapsed", formatDuration(time.Since(startTime)),
				)
			}
		},
	}

	slog.Info("starting Nelder-Mead tuning",
		"tick_rate", cfg.Clock.TickRate,
		"top_speed", *topSpeed,
		"glide", glide.String(),
		"max_evals", *maxEvals,
	)

	best, err := tuner.Run()
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if best.Evals == 0 {
		fatal("no evaluations ran")
	}

	slog.Info("tuning complete",
		"evals", best.Evals,
		"elapsed", formatDuration(time.Since(startTime)),
		"fitness", best.Fitness,
		"speed", best.Params.Speed,
		"friction", best.Params.Friction,
		"top_speed", best.Measurement.TopSpeed,
		"glide", best.Measurement.Glide.String(),
	)

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	f, err := os.Create(logPath)
	if err != nil {
		fatal("failed to create log file", "error", err)
	}
	if err := gocsv.MarshalFile(&records, f); err != nil {
		slog.Error("failed to write evaluation log", "error", err)
	}
	f.Close()

	cfg.Params = best.Params
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(configOutPath); err != nil {
		slog.Error("failed to write best config", "error", err)
	} else {
		slog.Info("best config saved", "path", configOutPath)
	}
}

func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
