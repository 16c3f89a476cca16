// Package pipeline orchestrates the two passes over the recorder folders:
// transcoding raw clips into a standard container, then scanning the
// converted folder for contiguous runs and writing merged recordings with
// timestamp subtitles.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/clipstitch/internal/clipname"
	"github.com/backmassage/clipstitch/internal/config"
	"github.com/backmassage/clipstitch/internal/display"
	"github.com/backmassage/clipstitch/internal/ffmpeg"
	"github.com/backmassage/clipstitch/internal/host"
	"github.com/backmassage/clipstitch/internal/logging"
	"github.com/backmassage/clipstitch/internal/naming"
	"github.com/backmassage/clipstitch/internal/probe"
	"github.com/backmassage/clipstitch/internal/timeline"
)

// Run is the top-level entry point: convert pass, then merge pass, then a
// summary. Failures are contained to the file or batch they hit; the run
// always continues to the end unless the context is cancelled.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, h host.Host) RunStats {
	var stats RunStats

	if cfg.Convert {
		runConvertPass(ctx, cfg, log, h, &stats)
	}
	if cfg.Merge && ctx.Err() == nil {
		runMergePass(ctx, cfg, log, h, &stats)
	}
	if ctx.Err() != nil {
		log.Warn("Interrupted")
	}

	h.RefreshFiles(cfg.MergedDir)
	logSummary(cfg, log, &stats)
	return stats
}

// runConvertPass transcodes every recorder clip in the source folder into
// the configured container. Already-converted clips are skipped so the pass
// is re-runnable.
func runConvertPass(ctx context.Context, cfg *config.Config, log *logging.Logger, h host.Host, stats *RunStats) {
	files, err := Discover(h, cfg.SourceDir, cfg.SourceExts)
	if err != nil {
		log.Error("Source folder scan failed: %v", err)
		stats.Failed++
		return
	}
	stats.SourceTotal = len(files)
	h.Status(fmt.Sprintf("Convert pass: %d clip(s) in %s", len(files), cfg.SourceDir))

	for i, name := range files {
		if ctx.Err() != nil {
			return
		}
		log.Info("[%d/%d] %s", i+1, len(files), name)
		convertOne(ctx, cfg, log, name, stats)
		stats.Processed++
		h.ReportProgress(stats.Percent())
	}
}

func convertOne(ctx context.Context, cfg *config.Config, log *logging.Logger, name string, stats *RunStats) {
	src := filepath.Join(cfg.SourceDir, name)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	dst := filepath.Join(cfg.ConvertedDir, stem+cfg.ConvertExt)

	if _, err := os.Stat(dst); err == nil {
		log.Debug("Already converted: %s", filepath.Base(dst))
		stats.Skipped++
		return
	}
	if cfg.DryRun {
		log.Success("[DRY] Would convert -> %s", filepath.Base(dst))
		stats.Converted++
		return
	}

	out, err := ffmpeg.Convert(ctx, src, dst)
	log.Raw("convert "+name, out)
	if err != nil {
		log.Error("Convert failed: %v", err)
		os.Remove(dst)
		stats.Failed++
		return
	}
	log.Success("Converted -> %s", filepath.Base(dst))
	stats.Converted++
}

// runMergePass scans the converted folder in name order, feeds each clip
// through the batch accumulator, and writes out every batch that closes.
// A malformed or unprobeable clip is skipped; the scan itself never aborts.
func runMergePass(ctx context.Context, cfg *config.Config, log *logging.Logger, h host.Host, stats *RunStats) {
	files, err := Discover(h, cfg.ConvertedDir, cfg.MergeExts)
	if err != nil {
		log.Error("Converted folder scan failed: %v", err)
		stats.Failed++
		return
	}
	stats.ScanTotal = len(files)
	h.Status(fmt.Sprintf("Merge pass: %d clip(s) in %s", len(files), cfg.ConvertedDir))
	if len(files) == 0 {
		log.Warn("No clips to merge")
		return
	}

	cache := openProbeCache(cfg, log)
	if cache != nil {
		defer cache.Close()
	}
	prober := probe.NewProber(cache)
	acc := timeline.NewAccumulator(cfg.SizeCeiling)
	resolver := naming.NewCollisionResolver()

	for _, name := range files {
		entry, ok := scanOne(ctx, cfg, log, prober, name, stats)
		stats.Processed++
		h.ReportProgress(stats.Percent())
		if !ok {
			continue
		}

		closed, events := acc.Feed(entry)
		logEvents(log, events)
		if closed != nil {
			// Batch boundaries are the cancellation points of the merge
			// pass, so an interrupt never leaves a half-written recording.
			if ctx.Err() != nil {
				return
			}
			finalizeBatch(ctx, cfg, log, resolver, closed, stats)
		}
	}

	if final := acc.Flush(); final != nil && ctx.Err() == nil {
		finalizeBatch(ctx, cfg, log, resolver, final, stats)
	}
}

// openProbeCache opens the sqlite duration cache; a cache failure downgrades
// to uncached probing rather than failing the run.
func openProbeCache(cfg *config.Config, log *logging.Logger) *probe.Cache {
	if !cfg.ProbeCache {
		return nil
	}
	cache, err := probe.OpenCache(cfg.ProbeCachePath)
	if err != nil {
		log.Warn("Probe cache unavailable (%v), probing without it", err)
		return nil
	}
	return cache
}

// scanOne parses and probes a single converted clip. A false return means
// the clip was skipped and logged.
func scanOne(ctx context.Context, cfg *config.Config, log *logging.Logger, prober *probe.Prober, name string, stats *RunStats) (timeline.Entry, bool) {
	parsed, err := clipname.Parse(name)
	if err != nil {
		var malformed *clipname.MalformedFilenameError
		if errors.As(err, &malformed) {
			log.Warn("Skipping %s: %s", name, malformed.Reason)
		} else {
			log.Warn("Skipping %s: %v", name, err)
		}
		stats.Skipped++
		return timeline.Entry{}, false
	}

	info, err := prober.Probe(ctx, cfg.ConvertedDir, name)
	if err != nil {
		log.Warn("Skipping %s: probe failed: %v", name, err)
		stats.Skipped++
		return timeline.Entry{}, false
	}

	return timeline.Entry{
		Filename: name,
		Name:     parsed,
		Duration: info.Duration,
		Size:     info.Size,
	}, true
}

// logEvents reports accumulator decisions that the operator must see:
// discarded duplicates and ceiling overshoot.
func logEvents(log *logging.Logger, events []timeline.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case timeline.EventReplaceDuplicate, timeline.EventSkipDuplicate:
			log.Warn("Duplicate interval: keeping %s (%s), discarding %s (%s)",
				ev.Clip.Filename, display.FormatBytes(ev.Clip.Size),
				ev.Discarded.Filename, display.FormatBytes(ev.Discarded.Size))
		case timeline.EventSizeCeilingRisk:
			log.Warn("Batch exceeds size ceiling by %s after duplicate replacement",
				display.FormatBytes(ev.OverBy))
		}
	}
}

// finalizeBatch writes one merged recording: collision-resolved output path,
// concat (or a plain copy for a single clip), then the subtitle sidecar.
func finalizeBatch(ctx context.Context, cfg *config.Config, log *logging.Logger, resolver *naming.CollisionResolver, b *timeline.Batch, stats *RunStats) {
	outputPath := resolver.Resolve(b.First().Filename, filepath.Join(cfg.MergedDir, b.OutputName()))
	span := fmt.Sprintf("%s .. %s", b.First().Name.StartStamp(), b.Last().Name.EndStamp())

	if cfg.DryRun {
		log.Success("[DRY] Would merge %d clip(s) [%s] -> %s", len(b.Entries), span, filepath.Base(outputPath))
		stats.Merged++
		return
	}

	log.Info("Merging %d clip(s) [%s] -> %s", len(b.Entries), span, filepath.Base(outputPath))

	var err error
	if len(b.Entries) == 1 {
		// One clip needs no remux; a byte-for-byte copy is exact and fast.
		err = copyFile(filepath.Join(cfg.ConvertedDir, b.First().Filename), outputPath)
	} else {
		inputs := make([]string, len(b.Entries))
		for i, e := range b.Entries {
			inputs[i] = filepath.Join(cfg.ConvertedDir, e.Filename)
		}
		var out string
		out, err = ffmpeg.Concat(ctx, inputs, outputPath)
		log.Raw("concat "+filepath.Base(outputPath), out)
	}
	if err != nil {
		log.Error("Merge failed: %v", err)
		os.Remove(outputPath)
		stats.Failed++
		return
	}

	if cfg.Subtitles {
		if err := writeSubtitle(naming.SubtitlePath(outputPath), b); err != nil {
			log.Error("Subtitle write failed: %v", err)
			stats.Failed++
			return
		}
	}

	stats.TotalInputBytes += b.Size
	if fi, err := os.Stat(outputPath); err == nil {
		stats.TotalOutputBytes += fi.Size()
	}
	stats.Merged++
	log.Success("Merged -> %s (%s)", filepath.Base(outputPath), display.FormatBytes(b.Size))
}

func writeSubtitle(path string, b *timeline.Batch) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := timeline.WriteSRT(f, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d converted, %d merged, %d skipped, %d failed",
		stats.Converted, stats.Merged, stats.Skipped, stats.Failed)
	if cfg.DryRun {
		log.Info("  Bytes written: n/a (dry run)")
		return
	}
	log.Info("  Merged input: %s, output: %s",
		display.FormatBytes(stats.TotalInputBytes),
		display.FormatBytes(stats.TotalOutputBytes))
}
