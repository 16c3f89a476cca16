// Command clipstitch is the CLI entrypoint for the recorder clip stitcher.
//
// It parses flags, validates configuration and folders, and either runs
// system diagnostics (-check) or the convert/merge pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/clipstitch/internal/check"
	"github.com/backmassage/clipstitch/internal/config"
	"github.com/backmassage/clipstitch/internal/display"
	"github.com/backmassage/clipstitch/internal/host"
	"github.com/backmassage/clipstitch/internal/logging"
	"github.com/backmassage/clipstitch/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.LoadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "clipstitch: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "clipstitch: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "clipstitch: %v\n", err)
		return 1
	}

	// Check mode runs with a console-only logger so it never creates log
	// files in folders the user may not have passed.
	if cfg.CheckOnly {
		cfg.LogDir = ""
	} else if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "clipstitch: cannot create log folder %s: %v\n", cfg.LogDir, err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipstitch: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	if err := ensureFolders(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("=== ClipStitch v%s ===", config.Version())
	if cfg.Convert {
		log.Info("Source:    %s", cfg.SourceDir)
	}
	log.Info("Converted: %s", cfg.ConvertedDir)
	if cfg.Merge {
		log.Info("Merged:    %s", cfg.MergedDir)
	}
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
	log.Info("")

	// Fail fast if ffmpeg/ffprobe are unavailable.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling. Cancel the context on SIGINT/SIGTERM so the
	// pipeline stops at the next batch boundary without partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current batch")
		cancel()
	}()

	// Phase 4: Run the two passes.
	console := host.NewConsole(log, !cfg.Verbose && !cfg.DryRun)
	defer console.Finish()

	stats := pipeline.Run(ctx, &cfg, log, console)

	if stats.Failed > 0 {
		return 1
	}
	return 0
}

// ensureFolders verifies the source folder exists and creates the output
// folders. The source folder is the recorder's; it is never created here.
func ensureFolders(cfg *config.Config) error {
	if cfg.Convert {
		if fi, err := os.Stat(cfg.SourceDir); err != nil || !fi.IsDir() {
			return fmt.Errorf("source folder not found: %s", cfg.SourceDir)
		}
	}
	for _, dir := range []string{cfg.ConvertedDir, cfg.MergedDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create folder %s: %v", dir, err)
		}
	}
	return nil
}
