// Package host abstracts the surface the stitching engine reports to. The
// engine never talks to a console directly; it asks its Host for file
// listings and hands it progress and status lines. The Console host renders
// to stdout, other hosts can render elsewhere.
package host

import (
	"os"
	"sort"
)

// Host is the embedding surface for a pipeline run.
type Host interface {
	// ReportProgress receives overall completion in percent (0..100).
	ReportProgress(percent float64)
	// Status receives a short human-readable line about the current step.
	Status(line string)
	// ListFiles returns the plain-file names directly inside folder,
	// sorted lexicographically. Subfolders are not descended into.
	ListFiles(folder string) ([]string, error)
	// RefreshFiles tells the host a folder's contents changed and any
	// cached view of it should be re-read.
	RefreshFiles(folder string)
}

// listDir is the shared ListFiles implementation: non-recursive, files only,
// sorted so runs are deterministic.
func listDir(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
