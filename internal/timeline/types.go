package timeline

import (
	"github.com/backmassage/clipstitch/internal/clipname"
)

// DefaultSizeCeiling is the maximum aggregate byte size of one merge batch.
// Players and filesystems choke near the 2 GB mark, so batches are closed
// before crossing it.
const DefaultSizeCeiling = 2_000_000_000

// StreamSeconds is a position on the merged output's playback clock: the
// cumulative probed duration of the clips before it. It is deliberately not
// a time.Time or time.Duration: the named wall-clock timeline uses those,
// and the two clocks must never be conflated.
type StreamSeconds float64

// Entry is one clip admitted to a batch: its parsed name plus probed facts.
type Entry struct {
	Filename string            // Basename within the scan folder.
	Name     clipname.ClipName // Parsed filename metadata (named timeline).
	Duration float64           // Probed playable duration in seconds.
	Size     int64             // File size in bytes.
}

// Batch is a maximal run of contiguous clips destined for a single merged
// output. It is owned by the Accumulator while open and immutable once
// handed to the synthesizer.
type Batch struct {
	Entries []Entry
	Size    int64 // Sum of entry sizes in bytes.
}

// First returns the earliest clip in the batch.
func (b *Batch) First() Entry { return b.Entries[0] }

// Last returns the latest clip in the batch.
func (b *Batch) Last() Entry { return b.Entries[len(b.Entries)-1] }

// OutputBase is the merged-output base name: the first clip's prefix, the
// first clip's start stamp, and the last clip's end stamp.
func (b *Batch) OutputBase() string {
	return b.First().Name.Prefix + b.First().Name.StartStamp() + "_" + b.Last().Name.EndStamp()
}

// OutputName is the merged video filename. The container extension comes
// from the first clip: concatenation stream-copies same-codec inputs, so the
// input container is the only one guaranteed valid for the output.
func (b *Batch) OutputName() string {
	return b.OutputBase() + b.First().Name.Ext
}

// SubtitleName is the caption filename paired with the merged output.
func (b *Batch) SubtitleName() string {
	return b.OutputBase() + ".srt"
}
