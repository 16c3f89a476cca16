package config

// This file implements the env-file overlay and CLI flag parsing.
// Negated flags (e.g. -no-merge) are applied after Parse so Config defaults
// hold unless set. Flags win over CLIPSTITCH_* env vars, which win over
// compiled defaults.

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// version is shown in -version and help; override at build time with -ldflags "-X ...config.version=".
var version = "1.0.0-dev"

// Version returns the build version string.
func Version() string { return version }

// LoadEnv overlays cfg with CLIPSTITCH_* environment variables, reading a
// .env file from the working directory first when present. A missing .env
// is not an error.
func LoadEnv(cfg *Config) error {
	_ = godotenv.Load()

	if v := os.Getenv("CLIPSTITCH_SOURCE_DIR"); v != "" {
		cfg.SourceDir = NormalizeDirArg(v)
	}
	if v := os.Getenv("CLIPSTITCH_CONVERTED_DIR"); v != "" {
		cfg.ConvertedDir = NormalizeDirArg(v)
	}
	if v := os.Getenv("CLIPSTITCH_MERGED_DIR"); v != "" {
		cfg.MergedDir = NormalizeDirArg(v)
	}
	if v := os.Getenv("CLIPSTITCH_LOG_DIR"); v != "" {
		cfg.LogDir = NormalizeDirArg(v)
	}
	if v := os.Getenv("CLIPSTITCH_SIZE_CEILING"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("CLIPSTITCH_SIZE_CEILING must be a positive byte count (got %q)", v)
		}
		cfg.SizeCeiling = n
	}
	if v := os.Getenv("CLIPSTITCH_PROBE_CACHE"); v != "" {
		cfg.ProbeCachePath = v
	}
	return nil
}

// ParseFlags parses os.Args into cfg. On -help or -version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, wrong positional
// arg count).
func ParseFlags(cfg *Config) error {
	fs := flag.NewFlagSet("clipstitch", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var negated negatedFlags
	var sourceExts, mergeExts string

	definePassFlags(fs, cfg, &negated)
	defineMergeFlags(fs, cfg, &sourceExts, &mergeExts)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "clipstitch v"+version)
		os.Exit(0)
	}

	if sourceExts != "" {
		cfg.SourceExts = splitExts(sourceExts)
	}
	if mergeExts != "" {
		cfg.MergeExts = splitExts(mergeExts)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	noConvert    bool
	noMerge      bool
	noSubtitles  bool
	noProbeCache bool
	forceColor   bool
	noColor      bool
	showVersion  bool
	showHelp     bool
}

// definePassFlags registers the pass toggles and -dry-run.
func definePassFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.noConvert, "no-convert", false, "Skip the convert pass (merge existing converted clips)")
	fs.BoolVar(&n.noMerge, "no-merge", false, "Skip the merge pass (convert only)")
	fs.BoolVar(&n.noSubtitles, "no-subtitles", false, "Do not write timestamp subtitle files")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not convert, merge, or write files")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as -dry-run")
}

// defineMergeFlags registers size ceiling, extension filters, and probe cache flags.
func defineMergeFlags(fs *flag.FlagSet, cfg *Config, sourceExts, mergeExts *string) {
	fs.Int64Var(&cfg.SizeCeiling, "size-ceiling", cfg.SizeCeiling, "Max merged-output size in bytes")
	fs.StringVar(sourceExts, "source-ext", "", "Comma-separated source clip extensions (default: dav)")
	fs.StringVar(mergeExts, "merge-ext", "", "Comma-separated merge scan extensions (default: mp4,avi)")
	fs.StringVar(&cfg.ConvertExt, "convert-ext", cfg.ConvertExt, "Container extension for converted clips")
	fs.StringVar(&cfg.ProbeCachePath, "probe-cache", cfg.ProbeCachePath, "Path to the persistent probe cache database")
}

// defineDisplayFlags registers color, verbose, and log folder flags.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as -verbose")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Folder for the run's two log files (default: converted folder)")
}

// defineUtilityFlags registers -check, -no-probe-cache, -version and -help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as -check")
	fs.BoolVar(&n.noProbeCache, "no-probe-cache", false, "Disable the persistent probe cache")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as -version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as -help")
}

// applyNegatedFlags copies negated flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noConvert {
		cfg.Convert = false
	}
	if n.noMerge {
		cfg.Merge = false
	}
	if n.noSubtitles {
		cfg.Subtitles = false
	}
	if n.noProbeCache {
		cfg.ProbeCache = false
		cfg.ProbeCachePath = ""
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets the three folders from positional args. Zero
// positionals is accepted so folders can come entirely from the env overlay.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 3:
		cfg.SourceDir = NormalizeDirArg(args[0])
		cfg.ConvertedDir = NormalizeDirArg(args[1])
		cfg.MergedDir = NormalizeDirArg(args[2])
		return nil
	default:
		return fmt.Errorf("need source_dir, converted_dir and merged_dir (got %d args)", len(args))
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "clipstitch v" + version + ": stitch surveillance clips into continuous recordings"},
		{"", ""},
		{"  clipstitch [OPTIONS] <source_dir> <converted_dir> <merged_dir>", ""},
		{"", ""},
		{"Passes", ""},
		{"  -no-convert", "Skip the convert pass"},
		{"  -no-merge", "Skip the merge pass"},
		{"  -no-subtitles", "Do not write timestamp subtitle files"},
		{"  -d, -dry-run", "Preview only; no files are written"},
		{"", ""},
		{"Merge", ""},
		{"  -size-ceiling <bytes>", "Max merged-output size (default: 2000000000)"},
		{"  -source-ext <list>", "Source clip extensions (default: dav)"},
		{"  -merge-ext <list>", "Merge scan extensions (default: mp4,avi)"},
		{"  -convert-ext <ext>", "Converted clip container (default: mp4)"},
		{"", ""},
		{"Probe cache", ""},
		{"  -probe-cache <path>", "Persistent probe cache database path"},
		{"  -no-probe-cache", "Disable the persistent probe cache"},
		{"", ""},
		{"Display", ""},
		{"  -color", "Force colored logs"},
		{"  -no-color", "Disable colored logs"},
		{"  -v, -verbose", "Verbose output"},
		{"  -log-dir <dir>", "Folder for the two run logs (default: converted folder)"},
		{"", ""},
		{"Utility", ""},
		{"  -c, -check", "System diagnostics (ffmpeg, ffprobe, free space)"},
		{"  -V, -version", "Print version and exit"},
		{"  -h, -help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
