package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/backmassage/clipstitch/internal/host"
)

// Discover lists the files in folder whose extension is in exts. The host
// returns names sorted lexicographically, and recorder filenames start with
// the camera prefix and timestamp, so the result is already in named
// timeline order. Matching is case-insensitive on the extension.
func Discover(h host.Host, folder string, exts []string) ([]string, error) {
	names, err := h.ListFiles(folder)
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}
	var files []string
	for _, name := range names {
		if allowed[strings.ToLower(filepath.Ext(name))] {
			files = append(files, name)
		}
	}
	return files, nil
}
