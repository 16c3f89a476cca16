package timeline

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"time"
)

// displayLayout formats the named wall-clock timestamp shown as cue text.
const displayLayout = "2006-01-02 15:04:05"

// interClipPad is added to the stream clock between clips so cue boundaries
// stay strictly increasing even when a probed duration lands exactly on a
// whole second.
const interClipPad = 0.001

// Cue is one subtitle entry. Start and End run on the stream clock; Text is
// the named wall-clock timestamp at that moment.
type Cue struct {
	ID    int // 1-based, monotonic across the whole batch.
	Start StreamSeconds
	End   StreamSeconds
	Text  string
}

// Cues synthesizes the subtitle track for a closed batch. Each clip is
// walked in 1-second windows on the stream clock; the final window of a clip
// is clipped to the clip's probed duration. Cue text advances on the named
// timeline from the clip's filename start, so the viewer reads real
// wall-clock time even though cue timing follows what was actually encoded.
func Cues(b *Batch) []Cue {
	var cues []Cue
	id := 1
	var elapsed StreamSeconds

	for _, e := range b.Entries {
		clipEnd := elapsed + StreamSeconds(e.Duration)
		windows := int(math.Ceil(e.Duration))

		for k := 0; k < windows; k++ {
			start := elapsed + StreamSeconds(k)
			end := elapsed + StreamSeconds(k+1)
			if end > clipEnd {
				end = clipEnd
			}
			cues = append(cues, Cue{
				ID:    id,
				Start: start,
				End:   end,
				Text:  e.Name.Start.Add(time.Duration(k) * time.Second).Format(displayLayout),
			})
			id++
		}

		elapsed = clipEnd + interClipPad
	}
	return cues
}

// WriteSRT renders the batch's cues as a SubRip file:
//
//	1
//	00:00:00,000 --> 00:00:01,000
//	2023-01-01 12:00:00
//
// followed by a blank line after each cue.
func WriteSRT(w io.Writer, b *Batch) error {
	bw := bufio.NewWriter(w)
	for _, c := range Cues(b) {
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			c.ID, FormatCueTime(c.Start), FormatCueTime(c.End), c.Text)
	}
	return bw.Flush()
}

// FormatCueTime renders a stream position as "HH:MM:SS,mmm" with the
// milliseconds truncated, not rounded. A one-microsecond epsilon absorbs
// binary float error so a value that is 2.501 in decimal does not truncate
// down to 2500ms.
func FormatCueTime(s StreamSeconds) string {
	ms := int64(float64(s)*1000 + 1e-6)
	if ms < 0 {
		ms = 0
	}
	h := ms / 3_600_000
	m := ms % 3_600_000 / 60_000
	sec := ms % 60_000 / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, sec, ms%1000)
}
