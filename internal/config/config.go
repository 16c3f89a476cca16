// Package config holds runtime configuration: defaults, env-file overlay,
// CLI flag parsing, and validation. Folder paths and pass toggles mirror the
// recorder workflow: convert DAV clips into a standard container, then merge
// contiguous clips and write timestamp subtitles.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid from a .env file, and then mutated by [ParseFlags]
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Folder paths (set from positional args or CLIPSTITCH_* env vars).
	SourceDir    string // Recorder clips; input of the convert pass.
	ConvertedDir string // Converted clips; convert output and merge input.
	MergedDir    string // Merged recordings and their subtitle files.

	// Pass toggles.
	Convert   bool // Default: true. Cleared by -no-convert.
	Merge     bool // Default: true. Cleared by -no-merge.
	Subtitles bool // Default: true. Cleared by -no-subtitles.

	// Merge tuning.
	SizeCeiling int64 // Max merged-output bytes. Default: 2,000,000,000.

	// File extensions (lowercase, leading dot).
	SourceExts []string // Clips picked up by the convert pass. Default: .dav.
	MergeExts  []string // Clips picked up by the merge scan. Default: .mp4, .avi.
	ConvertExt string   // Container extension for converted clips. Default: .mp4.

	// Probe cache.
	ProbeCache     bool   // Default: true. Cleared by -no-probe-cache.
	ProbeCachePath string // Default: <converted>/clipstitch-probe.db (derived in Validate).

	// Behavior flags.
	DryRun bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogDir    string    // Folder for the two run logs. Default: ConvertedDir.
	CheckOnly bool      // Run -check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before the env overlay and [ParseFlags] from the CLI.
func DefaultConfig() Config {
	return Config{
		Convert:     true,
		Merge:       true,
		Subtitles:   true,
		SizeCeiling: 2_000_000_000,
		SourceExts:  []string{".dav"},
		MergeExts:   []string{".mp4", ".avi"},
		ConvertExt:  ".mp4",
		ProbeCache:  true,
		ColorMode:   ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and folder requirements, then derives
// dependent defaults (log folder, probe cache path). The converted folder is
// required whenever any pass runs; the source folder only for the convert
// pass and the merged folder only for the merge pass. Configured folders
// must be pairwise distinct.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.SizeCeiling <= 0 {
		return errors.New("size ceiling must be positive")
	}
	if c.ConvertExt != "" && !strings.HasPrefix(c.ConvertExt, ".") {
		c.ConvertExt = "." + c.ConvertExt
	}

	if c.CheckOnly {
		return nil
	}

	if !c.Convert && !c.Merge {
		return errors.New("both passes disabled: nothing to do")
	}
	if c.ConvertedDir == "" {
		return errors.New("converted folder is required")
	}
	if c.Convert && c.SourceDir == "" {
		return errors.New("source folder is required for the convert pass")
	}
	if c.Merge && c.MergedDir == "" {
		return errors.New("merged folder is required for the merge pass")
	}
	if err := c.checkDistinctDirs(); err != nil {
		return err
	}

	if c.LogDir == "" {
		c.LogDir = c.ConvertedDir
	}
	if c.ProbeCache && c.ProbeCachePath == "" {
		c.ProbeCachePath = c.ConvertedDir + "/clipstitch-probe.db"
	}
	return nil
}

// checkDistinctDirs rejects configurations where two of the three folders
// coincide; a merge scan over its own output folder would feed on itself.
func (c *Config) checkDistinctDirs() error {
	seen := make(map[string]string)
	for _, p := range []struct{ label, dir string }{
		{"source", c.SourceDir},
		{"converted", c.ConvertedDir},
		{"merged", c.MergedDir},
	} {
		if p.dir == "" {
			continue
		}
		if other, dup := seen[p.dir]; dup {
			return fmt.Errorf("%s and %s folder must differ (both %q)", other, p.label, p.dir)
		}
		seen[p.dir] = p.label
	}
	return nil
}

// splitExts parses a comma-separated extension list into lowercase,
// dot-prefixed form. Empty elements are dropped.
func splitExts(raw string) []string {
	var exts []string
	for _, part := range strings.Split(raw, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}
