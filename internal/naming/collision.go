// Package naming resolves merged-output file paths: collision handling for
// distinct batches that map to the same output name, and the subtitle
// sidecar convention.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CollisionResolver tracks output paths claimed by batches and resolves
// duplicates by appending " - dupN" suffixes. Paths already present on disk
// count as claimed too, so re-runs never overwrite earlier recordings.
// All methods are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // output path -> batch key that owns it
	counters map[string]int    // base output path -> next dup counter
	exists   func(string) bool
}

// NewCollisionResolver creates a resolver that consults the filesystem for
// pre-existing outputs.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
		exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// Resolve returns the final output path for the batch identified by key,
// handling collisions. If requestedOutput is unclaimed (or already owned by
// key), it is returned as-is. Otherwise a " - dupN" variant is generated.
func (cr *CollisionResolver) Resolve(key, requestedOutput string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.free(key, requestedOutput) {
		cr.owners[requestedOutput] = key
		return requestedOutput
	}

	dir := filepath.Dir(requestedOutput)
	base := filepath.Base(requestedOutput)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	counter := cr.counters[requestedOutput]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
		if cr.free(key, candidate) {
			cr.counters[requestedOutput] = counter + 1
			cr.owners[candidate] = key
			return candidate
		}
		counter++
	}
}

// free reports whether path can be claimed by key: not owned by another
// batch this run and not already sitting on disk from an earlier run.
func (cr *CollisionResolver) free(key, path string) bool {
	if owner, claimed := cr.owners[path]; claimed {
		return owner == key
	}
	return !cr.exists(path)
}
