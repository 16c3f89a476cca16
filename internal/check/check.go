// Package check provides system diagnostics (-check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg and ffprobe.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/backmassage/clipstitch/internal/config"
	"github.com/backmassage/clipstitch/internal/display"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive -check flow: tool versions, concat demuxer
// availability, and free space on the configured destinations. It is
// informational only and does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkTool(log, "ffmpeg")
	checkTool(log, "ffprobe")
	checkConcatDemuxer(log)
	checkFreeSpace(cfg, log)
}

// CheckDeps is the pre-pipeline validation: both ffmpeg and ffprobe must be
// on PATH. Returns a sentinel error on failure.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// checkTool verifies a tool is on PATH and logs its version line.
func checkTool(log Logger, name string) {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("%s not found", name)
		return
	}
	out, err := exec.Command(name, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return
	}
	log.Success("%s: %s", name, firstLine(string(out)))
}

// checkConcatDemuxer confirms the stream-copy merge path is available in
// this ffmpeg build.
func checkConcatDemuxer(log Logger) {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-demuxers").Output()
	if err != nil {
		log.Warn("Could not list demuxers: %v", err)
		return
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "concat" {
			log.Success("concat demuxer available")
			return
		}
	}
	log.Error("concat demuxer not available; merging will fail")
}

// checkFreeSpace reports free space where merged output lands. A destination
// that cannot hold even one ceiling-sized recording gets a warning.
func checkFreeSpace(cfg *config.Config, log Logger) {
	for _, p := range []struct{ label, dir string }{
		{"converted", cfg.ConvertedDir},
		{"merged", cfg.MergedDir},
	} {
		if p.dir == "" {
			continue
		}
		usage, err := disk.Usage(p.dir)
		if err != nil {
			log.Warn("Cannot stat %s folder %s: %v", p.label, p.dir, err)
			continue
		}
		free := int64(usage.Free)
		if free < cfg.SizeCeiling {
			log.Warn("%s folder %s: %s free, below the %s recording ceiling",
				p.label, p.dir, display.FormatBytes(free), display.FormatBytes(cfg.SizeCeiling))
		} else {
			log.Success("%s folder %s: %s free", p.label, p.dir, display.FormatBytes(free))
		}
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}
