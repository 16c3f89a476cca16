// Package clipname parses recorder-produced clip filenames into structured
// metadata. NVRs name each clip with a camera/channel prefix followed by the
// recording interval as two 14-digit civil timestamps, e.g.
//
//	NVR-CH04-MAIN-20230101120000-20230101120459.dav
//	CAM1-20230101120000_20230101120005_1.mp4
//
// Everything up to the first timestamp is the prefix; clips with different
// prefixes belong to different cameras and are never merged. An optional
// trailing "_1" marks a duplicate recording of the same interval and is
// ignored here (duplicate resolution happens downstream on the parsed
// interval). Parsing is pure string work; nothing in this package touches
// the disk.
package clipname

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

// TimestampLayout is the 14-digit civil timestamp format used by recorder
// filenames and by merged-output names.
const TimestampLayout = "20060102150405"

// namePattern matches the first occurrence of two consecutive 14-digit
// groups separated by '-', '_' or space. The leading group is non-greedy so
// the earliest timestamp pair in the name wins.
var namePattern = regexp.MustCompile(`^(.*?)(\d{14})[-_ ](\d{14})`)

// ClipName holds the metadata encoded in a clip filename. Start and End are
// civil timestamps: the recorder writes local wall-clock digits with no zone,
// so they are parsed in a fixed zone and only ever compared to each other.
type ClipName struct {
	Prefix string    // Camera/channel identifier, everything before the first timestamp.
	Start  time.Time // Named recording start.
	End    time.Time // Named recording end (inclusive).
	Ext    string    // Filename extension including the dot, case preserved.
}

// MalformedFilenameError reports a filename that does not carry a parseable
// timestamp pair. Files with such names are skipped, not fatal.
type MalformedFilenameError struct {
	Filename string
	Reason   string
}

func (e *MalformedFilenameError) Error() string {
	return fmt.Sprintf("malformed clip filename %q: %s", e.Filename, e.Reason)
}

// Parse extracts the camera prefix and the named recording interval from
// filename. It returns a *MalformedFilenameError when the timestamp pair is
// missing, when either group is not a valid timestamp, or when the interval
// runs backwards.
func Parse(filename string) (ClipName, error) {
	m := namePattern.FindStringSubmatch(filename)
	if m == nil {
		return ClipName{}, &MalformedFilenameError{
			Filename: filename,
			Reason:   "no 14-digit timestamp pair found",
		}
	}

	start, err := time.Parse(TimestampLayout, m[2])
	if err != nil {
		return ClipName{}, &MalformedFilenameError{
			Filename: filename,
			Reason:   fmt.Sprintf("invalid start timestamp %q", m[2]),
		}
	}
	end, err := time.Parse(TimestampLayout, m[3])
	if err != nil {
		return ClipName{}, &MalformedFilenameError{
			Filename: filename,
			Reason:   fmt.Sprintf("invalid end timestamp %q", m[3]),
		}
	}
	if end.Before(start) {
		return ClipName{}, &MalformedFilenameError{
			Filename: filename,
			Reason:   "end timestamp precedes start timestamp",
		}
	}

	return ClipName{
		Prefix: m[1],
		Start:  start,
		End:    end,
		Ext:    filepath.Ext(filename),
	}, nil
}

// NamedDuration returns the recording length implied by the filename.
// The interval is inclusive of both endpoints, so a clip named
// 120000..120005 covers six seconds.
func (c ClipName) NamedDuration() time.Duration {
	return c.End.Sub(c.Start) + time.Second
}

// SameInterval reports whether two clips name the identical recording
// interval on the same camera. Such pairs are duplicate recordings of one
// interval; exactly one of them may survive into a merge batch.
func (c ClipName) SameInterval(o ClipName) bool {
	return c.Prefix == o.Prefix && c.Start.Equal(o.Start) && c.End.Equal(o.End)
}

// StartStamp returns the named start formatted as recorder digits.
func (c ClipName) StartStamp() string { return c.Start.Format(TimestampLayout) }

// EndStamp returns the named end formatted as recorder digits.
func (c ClipName) EndStamp() string { return c.End.Format(TimestampLayout) }
