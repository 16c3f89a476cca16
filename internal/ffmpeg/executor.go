package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
)

// Result holds the outcome of one external invocation. Output is the
// combined stdout+stderr regardless of success; the diagnostic log wants it
// either way.
type Result struct {
	Args   []string
	Output string
	Err    error
}

// run executes the ffmpeg binary with args, blocking until it exits. The
// process inherits no stdin; output is captured, never streamed.
func run(ctx context.Context, args ...string) Result {
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	return Result{
		Args:   append([]string{"ffmpeg"}, args...),
		Output: buf.String(),
		Err:    err,
	}
}
