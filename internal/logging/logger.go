// Package logging provides the run's two append-only log streams: a
// user-facing summary log and a verbose diagnostic log that additionally
// carries raw external-process output for postmortem debugging. Both files
// are opened once per run in a caller-specified folder and stay open for the
// run's duration; construct with NewLogger and Close at teardown.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/backmassage/clipstitch/internal/config"
)

// Names of the two per-run log files.
const (
	SummaryFileName = "clipstitch-log.txt"
	DebugFileName   = "clipstitch-debug.txt"
)

// ANSI colors (empty when disabled)
var (
	Red     = ""
	Green   = ""
	Yellow  = ""
	Blue    = ""
	Cyan    = ""
	Magenta = ""
	NC      = ""
)

// Logger writes leveled, optionally colored console output plus the two file
// sinks. Every summary line is mirrored into the diagnostic stream with a
// "---- " prefix so the diagnostic log reads as a superset of the summary.
type Logger struct {
	mu      sync.Mutex
	summary *os.File
	debug   *os.File
	verbose bool
}

// NewLogger initializes colors from cfg and opens both log files in
// cfg.LogDir. An empty LogDir yields a console-only logger (used by tests
// and --check mode). Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	l := &Logger{verbose: cfg.Verbose}

	enable := false
	switch cfg.ColorMode {
	case config.ColorAlways:
		enable = true
	case config.ColorNever:
		enable = false
	case config.ColorAuto:
		enable = isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
	if enable {
		Red = "\033[1;91m"
		Green = "\033[1;92m"
		Yellow = "\033[1;93m"
		Blue = "\033[1;94m"
		Cyan = "\033[1;96m"
		Magenta = "\033[1;95m"
		NC = "\033[0m"
	} else {
		Red, Green, Yellow, Blue, Cyan, Magenta, NC = "", "", "", "", "", "", ""
	}

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
			return nil, err
		}
		summary, err := openAppend(filepath.Join(cfg.LogDir, SummaryFileName))
		if err != nil {
			return nil, err
		}
		debug, err := openAppend(filepath.Join(cfg.LogDir, DebugFileName))
		if err != nil {
			summary.Close()
			return nil, err
		}
		l.summary = summary
		l.debug = debug
	}
	return l, nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Close closes both log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var firstErr error
	for _, f := range []**os.File{&l.summary, &l.debug} {
		if *f != nil {
			if err := (*f).Close(); err != nil && firstErr == nil {
				firstErr = err
			}
			*f = nil
		}
	}
	return firstErr
}

// line writes one summary-level record: console, summary file, and the
// mirrored diagnostic copy.
func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()

	plain := ts + " [" + level + "] " + text + "\n"
	out := os.Stdout
	if level == "ERROR" {
		out = os.Stderr
	}
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.summary != nil {
		_, _ = io.WriteString(l.summary, plain)
	}
	if l.debug != nil {
		_, _ = io.WriteString(l.debug, "---- "+plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), also to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", Red, fmt.Sprintf(format, args...))
}

// Debug writes to the diagnostic file only; it reaches the console (cyan)
// when verbose mode is on. Debug lines are not mirrored to the summary.
func (l *Logger) Debug(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.verbose {
		if Cyan != "" {
			_, _ = io.WriteString(os.Stdout, ts+" "+Cyan+"[DEBUG]"+NC+" "+text+"\n")
		} else {
			_, _ = io.WriteString(os.Stdout, ts+" [DEBUG] "+text+"\n")
		}
	}
	if l.debug != nil {
		_, _ = io.WriteString(l.debug, ts+" [DEBUG] "+text+"\n")
	}
}

// Raw dumps raw external-process output into the diagnostic stream under a
// label. It never touches the console or the summary log; the summary stays
// readable while the diagnostic log keeps everything ffmpeg/ffprobe said.
func (l *Logger) Raw(label, output string) {
	if output == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.debug == nil {
		return
	}
	_, _ = io.WriteString(l.debug, "==== "+label+"\n")
	_, _ = io.WriteString(l.debug, output)
	if !strings.HasSuffix(output, "\n") {
		_, _ = io.WriteString(l.debug, "\n")
	}
}
