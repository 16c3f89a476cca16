// Package timeline is the reconciliation core: it decides which consecutive
// clips form one continuous recording and rebuilds a wall-clock timeline for
// the merged result.
//
// Three concerns, one file each:
//
//   - classify.go: the contiguity relation between two clips, computed from
//     named (filename) timestamps only. Contiguity is a naming-convention
//     property; probed durations play no part in it.
//   - accumulator.go: the stateful scan that groups a sorted clip list into
//     merge batches bounded by a byte ceiling, resolving duplicate-interval
//     recordings in place.
//   - subtitle.go: SRT cue synthesis for a closed batch, tracking two
//     independent clocks: cue timing runs on the cumulative probed-duration
//     stream, cue text on the named wall-clock timeline.
//
// The two clocks are distinct types (StreamSeconds vs time.Time) so they
// cannot be mixed by accident.
package timeline
