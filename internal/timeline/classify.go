package timeline

import (
	"time"

	"github.com/backmassage/clipstitch/internal/clipname"
)

// Relation is the contiguity classification of a clip against its
// predecessor in the sorted scan order.
type Relation int

const (
	// Contiguous: the clip continues the predecessor's recording within
	// tolerance; it belongs in the same batch.
	Contiguous Relation = iota
	// DuplicateInterval: the clip names the identical interval as the
	// predecessor, the same recording captured twice. One of them must go.
	DuplicateInterval
	// Disjoint: a gap or camera change; the predecessor's batch is done.
	Disjoint
)

func (r Relation) String() string {
	switch r {
	case Contiguous:
		return "contiguous"
	case DuplicateInterval:
		return "duplicate-interval"
	default:
		return "disjoint"
	}
}

// Recorders misreport clip boundaries by up to ~2s, so longer clips get that
// much slack. Clips named shorter than 3s have no room to hide drift and
// must align exactly.
const (
	shortClipNamedDuration = 3 * time.Second
	contiguityTolerance    = 2 * time.Second
)

// Classify compares cur against the previous clip using named timestamps
// only. Clips from different cameras are always Disjoint.
func Classify(cur, prev clipname.ClipName) Relation {
	if cur.Prefix != prev.Prefix {
		return Disjoint
	}
	if cur.SameInterval(prev) {
		return DuplicateInterval
	}

	gap := prev.End.Sub(cur.Start)
	if gap < 0 {
		gap = -gap
	}
	if gap <= tolerance(cur) {
		return Contiguous
	}
	return Disjoint
}

func tolerance(c clipname.ClipName) time.Duration {
	if c.NamedDuration() < shortClipNamedDuration {
		return 0
	}
	return contiguityTolerance
}
