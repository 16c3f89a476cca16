// Package ffmpeg wraps the two external media collaborators: single-file
// transcode (Convert) and stream-copy concatenation (Concat). Both shell out
// to the ffmpeg binary and capture its combined output so the diagnostic log
// gets raw postmortem data on every invocation, success or failure.
//
// Concatenation uses the concat demuxer with -c copy: inputs are joined in
// the given order with no re-encode, per the demuxer recipe
// (-f concat -safe 0 -i list.txt -c copy out).
package ffmpeg
