package ffmpeg

import (
	"context"
	"fmt"
)

// ConvertError reports a failed single-file transcode.
type ConvertError struct {
	Src    string
	Output string
	Err    error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("convert %q: %v", e.Src, e.Err)
}

func (e *ConvertError) Unwrap() error { return e.Err }

// Convert transcodes one source clip into dst, overwriting any existing
// file. Container and codec selection are left to ffmpeg's defaults for the
// destination extension, matching how recorder DAV clips are lifted into a
// standard container. The raw process output is returned for the diagnostic
// log even on success.
func Convert(ctx context.Context, src, dst string) (string, error) {
	res := run(ctx, "-y", "-i", src, dst)
	if res.Err != nil {
		return res.Output, &ConvertError{Src: src, Output: res.Output, Err: res.Err}
	}
	return res.Output, nil
}
