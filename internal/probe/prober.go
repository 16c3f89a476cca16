package probe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Info holds the disk-derived facts for one clip file.
type Info struct {
	Path     string    // Full path that was probed.
	Duration float64   // True playable duration in seconds.
	Size     int64     // File size in bytes.
	ModTime  time.Time // Modification time at probe time (cache key component).
}

// Error reports a failed duration/size query. Output carries the raw
// external-process output for the diagnostic log; the orchestrator skips the
// affected file and continues.
type Error struct {
	Path   string
	Output string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("probe %q: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Prober queries clip durations through ffprobe and memoizes the results for
// the lifetime of a run. An optional persistent Cache short-circuits the
// external call across runs. Methods are goroutine-safe, though the scan
// that uses a Prober is strictly sequential.
type Prober struct {
	mu    sync.Mutex
	memo  map[string]Info
	cache *Cache // nil when persistent caching is disabled
}

// NewProber returns a Prober. cache may be nil.
func NewProber(cache *Cache) *Prober {
	return &Prober{memo: make(map[string]Info), cache: cache}
}

// Probe returns the probed facts for filename inside folder. The first call
// per path stats the file and runs ffprobe; later calls within the run are
// served from memory. When a persistent cache row matches the file's size
// and mtime the external call is skipped entirely.
func (p *Prober) Probe(ctx context.Context, folder, filename string) (Info, error) {
	path := filepath.Join(folder, filename)

	p.mu.Lock()
	if info, ok := p.memo[path]; ok {
		p.mu.Unlock()
		return info, nil
	}
	p.mu.Unlock()

	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, &Error{Path: path, Err: err}
	}

	info := Info{Path: path, Size: fi.Size(), ModTime: fi.ModTime()}

	if p.cache != nil {
		if dur, ok := p.cache.Lookup(path, info.Size, info.ModTime); ok {
			info.Duration = dur
			p.remember(path, info)
			return info, nil
		}
	}

	dur, raw, err := runFfprobe(ctx, path)
	if err != nil {
		return Info{}, &Error{Path: path, Output: raw, Err: err}
	}
	info.Duration = dur

	if p.cache != nil {
		// Cache write failures are non-fatal; the probe result is still good.
		_ = p.cache.Store(path, info.Size, info.ModTime, info.Duration)
	}
	p.remember(path, info)
	return info, nil
}

func (p *Prober) remember(path string, info Info) {
	p.mu.Lock()
	p.memo[path] = info
	p.mu.Unlock()
}

// runFfprobe asks ffprobe for the container duration in seconds. The compact
// print format yields a single numeric line on success. Raw combined output
// is returned in both cases for the diagnostic log.
func runFfprobe(ctx context.Context, path string) (float64, string, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "compact=print_section=0:nokey=1:escape=csv",
		"-show_entries", "format=duration",
		path,
	)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		return 0, buf.String(), fmt.Errorf("ffprobe: %w", err)
	}

	dur, err := ParseDuration(buf.Bytes())
	if err != nil {
		return 0, buf.String(), err
	}
	return dur, buf.String(), nil
}

// ParseDuration converts raw ffprobe output into seconds. Exported for
// testing without a real ffprobe binary.
func ParseDuration(out []byte) (float64, error) {
	s := strings.TrimSpace(string(out))
	if s == "" {
		return 0, fmt.Errorf("ffprobe returned no duration")
	}
	dur, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe returned non-numeric duration %q", s)
	}
	if dur < 0 {
		return 0, fmt.Errorf("ffprobe returned negative duration %v", dur)
	}
	return dur, nil
}
