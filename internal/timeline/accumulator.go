package timeline

// EventKind identifies what the accumulator did with an incoming clip.
type EventKind int

const (
	// EventAppend: the clip was appended to the open batch.
	EventAppend EventKind = iota
	// EventReplaceDuplicate: the clip duplicates the batch's last interval
	// and is larger; it replaced the prior entry, which is discarded.
	EventReplaceDuplicate
	// EventSkipDuplicate: the clip duplicates the batch's last interval and
	// is not larger; it is discarded, the prior entry stays.
	EventSkipDuplicate
	// EventSizeCeilingRisk: a duplicate replacement pushed an already-open
	// batch past the size ceiling. Known upstream gap: detected and
	// reported, not corrected.
	EventSizeCeilingRisk
)

// Event is an audit record of one accumulator transition. Discarded
// duplicates must reach the logs, so the accumulator reports them instead of
// silently dropping them.
type Event struct {
	Kind      EventKind
	Clip      Entry // The incoming clip; for duplicate events, the survivor.
	Discarded Entry // The losing duplicate (replace/skip events only).
	OverBy    int64 // Bytes past the ceiling (ceiling-risk events only).
}

// Accumulator groups a strictly ordered clip sequence into merge batches.
// It is the one stateful piece of the scan: Empty until the first clip, then
// Open with one growing batch. Feeding must be sequential; each decision
// depends on the previous clip's resolved identity, which a duplicate can
// rewrite within the same step.
type Accumulator struct {
	ceiling int64
	open    *Batch
	prev    *Entry // Survivor of the last interval; nil when Empty.
}

// NewAccumulator returns an empty accumulator with the given byte ceiling.
// A ceiling of 0 or less falls back to DefaultSizeCeiling.
func NewAccumulator(ceiling int64) *Accumulator {
	if ceiling <= 0 {
		ceiling = DefaultSizeCeiling
	}
	return &Accumulator{ceiling: ceiling}
}

// Feed consumes the next clip in sorted order. It returns the batch that
// this clip closed (nil when none closed) plus the audit events for the
// step. A closed batch is frozen; the caller hands it to the synthesizer.
func (a *Accumulator) Feed(e Entry) (closed *Batch, events []Event) {
	if a.prev == nil {
		a.openWith(e)
		return nil, []Event{{Kind: EventAppend, Clip: e}}
	}

	switch Classify(e.Name, a.prev.Name) {
	case Contiguous:
		if a.open.Size+e.Size < a.ceiling {
			a.append(e)
			return nil, []Event{{Kind: EventAppend, Clip: e}}
		}
		// Admitting the clip would cross the ceiling: close first, then
		// start a fresh batch holding only this clip.
		closed = a.close()
		a.openWith(e)
		return closed, []Event{{Kind: EventAppend, Clip: e}}

	case DuplicateInterval:
		return nil, a.resolveDuplicate(e)

	default: // Disjoint
		closed = a.close()
		a.openWith(e)
		return closed, []Event{{Kind: EventAppend, Clip: e}}
	}
}

// Flush closes any open batch at end of input and resets to Empty.
func (a *Accumulator) Flush() *Batch {
	b := a.close()
	a.prev = nil
	return b
}

// resolveDuplicate applies the keep-larger policy to a clip that names the
// same interval as the batch's last entry. Exactly one of the two survives;
// the survivor becomes the previous clip for the next contiguity test. Both
// candidates carry identical named timestamps, so either choice classifies
// the next clip the same way.
func (a *Accumulator) resolveDuplicate(e Entry) []Event {
	last := &a.open.Entries[len(a.open.Entries)-1]

	if e.Size <= last.Size {
		return []Event{{Kind: EventSkipDuplicate, Clip: *last, Discarded: e}}
	}

	discarded := *last
	a.open.Size += e.Size - discarded.Size
	*last = e
	a.prev = last

	events := []Event{{Kind: EventReplaceDuplicate, Clip: e, Discarded: discarded}}
	// The batch was admitted under the old size; the larger replacement can
	// push it over the ceiling after the fact. Recompute and warn.
	if a.open.Size >= a.ceiling {
		events = append(events, Event{
			Kind:   EventSizeCeilingRisk,
			Clip:   e,
			OverBy: a.open.Size - a.ceiling,
		})
	}
	return events
}

func (a *Accumulator) openWith(e Entry) {
	a.open = &Batch{Entries: []Entry{e}, Size: e.Size}
	a.prev = &a.open.Entries[0]
}

func (a *Accumulator) append(e Entry) {
	a.open.Entries = append(a.open.Entries, e)
	a.open.Size += e.Size
	a.prev = &a.open.Entries[len(a.open.Entries)-1]
}

func (a *Accumulator) close() *Batch {
	b := a.open
	a.open = nil
	return b
}
