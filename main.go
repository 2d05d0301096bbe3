package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pthm-cable/pixelstep/config"
	"github.com/pthm-cable/pixelstep/game"
	"github.com/pthm-cable/pixelstep/terminal"
	"github.com/pthm-cable/pixelstep/window"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	model := flag.String("model", "", "Movement model: shmup, ship or bounce (empty = use config)")
	scaling := flag.String("scaling", "", "Scaling mode: native, buffer, fixed or native-fixed (empty = use config)")
	headless := flag.Bool("headless", false, "Run without a window on a simulated display")
	term := flag.Bool("terminal", false, "Render to the terminal instead of a window")
	frames := flag.Int("frames", 0, "Stop after N frames (0 = config for headless, unlimited otherwise)")
	refresh := flag.Float64("refresh", 0, "Simulated display rate in Hz for headless runs (0 = use config)")
	hold := flag.String("hold", "", "Actions held for the whole headless run, e.g. thrust,rotateRight")
	screenshot := flag.String("screenshot", "", "Write the final headless frame to this PNG")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	trace := flag.Bool("trace", false, "Write a per-tick trace (requires an output directory)")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// CLI overrides, re-validated before use
	if *model != "" {
		cfg.Movement.Model = *model
	}
	if *scaling != "" {
		cfg.Scaling.Mode = *scaling
	}
	if *refresh > 0 {
		cfg.Headless.Refresh = *refresh
	}
	if *hold != "" {
		cfg.Headless.Hold = *hold
	}
	if err := cfg.Resolve(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOut, closeLog, err := logOutput(*term, *outputDir)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(cfg.Log.NewLogger(logOut))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := game.Options{
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Trace:     *trace,
		MaxFrames: *frames,
	}

	switch {
	case *headless:
		err = runHeadless(ctx, cfg, opts, *screenshot)
	case *term:
		err = runTerminal(ctx, cfg, opts)
	default:
		err = window.Run(ctx, cfg, opts)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}

// logOutput picks the log destination. The terminal frontend owns stdout,
// so its logs go to a file in the output directory or nowhere.
func logOutput(terminalMode bool, outputDir string) (io.Writer, func(), error) {
	if !terminalMode {
		return os.Stdout, func() {}, nil
	}
	if outputDir == "" {
		return io.Discard, func() {}, nil
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(filepath.Join(outputDir, "pixelstep.log"))
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func runHeadless(ctx context.Context, cfg *config.Config, opts game.Options, screenshot string) error {
	n := cfg.Headless.Frames
	if opts.MaxFrames > 0 {
		n = opts.MaxFrames
	}
	h, err := game.NewHeadless(cfg, opts, game.HeadlessOptions{
		Frames:     n,
		Refresh:    cfg.Headless.Refresh,
		Hold:       cfg.Derived.Hold,
		Screenshot: screenshot,
	})
	if err != nil {
		return err
	}

	sum, err := h.Run(ctx)
	if cerr := h.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	slog.Info("headless run complete", "summary", sum)
	return nil
}

func runTerminal(ctx context.Context, cfg *config.Config, opts game.Options) error {
	t, err := terminal.New(cfg, opts)
	if err != nil {
		return err
	}
	err = t.Run(ctx)
	if cerr := t.Close(); err == nil {
		err = cerr
	}
	return err
}
