package naming

import (
	"path/filepath"
	"strings"
)

// SubtitlePath returns the SRT sidecar path for a merged recording. The
// sidecar shares the recording's full stem, including any collision suffix,
// so players pick it up automatically.
func SubtitlePath(videoPath string) string {
	ext := filepath.Ext(videoPath)
	return strings.TrimSuffix(videoPath, ext) + ".srt"
}
