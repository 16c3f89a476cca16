// Package probe obtains disk-derived clip facts: the true playable duration
// (one external ffprobe call per file) and the byte size. Probed duration is
// the ground truth for subtitle cue timing and routinely disagrees with the
// duration implied by the clip filename; the two clocks are never mixed.
//
// Probing is the expensive step of a scan, so results are memoized per run
// and optionally persisted in a sqlite cache keyed by path, size, and mtime
// (cache.go). A size or mtime change invalidates the cached row.
package probe
