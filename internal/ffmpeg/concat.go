package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MergeFailedError reports a failed concatenation. The batch's destination
// file is absent after this error; the orchestrator logs it and moves on to
// the next batch.
type MergeFailedError struct {
	Dst    string
	Output string
	Err    error
}

func (e *MergeFailedError) Error() string {
	return fmt.Sprintf("merge into %q: %v", e.Dst, e.Err)
}

func (e *MergeFailedError) Unwrap() error { return e.Err }

// Concat joins inputs into dst in the given order via the concat demuxer
// with stream copy, no re-encoding. The inputs must share a codec, which
// holds for clips cut from one camera stream. The list file is written to
// the system temp directory under a unique name and removed on all paths.
func Concat(ctx context.Context, inputs []string, dst string) (string, error) {
	if len(inputs) < 2 {
		return "", &MergeFailedError{Dst: dst, Err: fmt.Errorf("need at least 2 inputs, got %d", len(inputs))}
	}

	listPath := filepath.Join(os.TempDir(), "clipstitch-concat-"+uuid.NewString()+".txt")
	if err := writeConcatList(listPath, inputs); err != nil {
		return "", &MergeFailedError{Dst: dst, Err: err}
	}
	defer os.Remove(listPath)

	res := run(ctx,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-y",
		"-c", "copy",
		dst,
	)
	if res.Err != nil {
		return res.Output, &MergeFailedError{Dst: dst, Output: res.Output, Err: res.Err}
	}
	return res.Output, nil
}

// writeConcatList renders the demuxer list file: one "file '<path>'" line
// per input. A single quote inside a path is spliced as close-quote,
// escaped quote, reopen-quote, which is what the demuxer expects.
func writeConcatList(path string, inputs []string) error {
	var sb strings.Builder
	for _, in := range inputs {
		sb.WriteString("file '")
		sb.WriteString(strings.ReplaceAll(in, "'", `'\''`))
		sb.WriteString("'\n")
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
