package pipeline

// RunStats tracks aggregate counters and byte totals across a run.
type RunStats struct {
	SourceTotal int // Recorder clips found by the convert pass.
	ScanTotal   int // Converted clips found by the merge scan.
	Processed   int // Files handled so far, both passes combined.

	Converted int // Clips transcoded this run.
	Merged    int // Batches written (concat or single-clip copy).
	Skipped   int // Files passed over (malformed, unprobeable, existing).
	Failed    int // Convert or merge failures.

	TotalInputBytes  int64 // Bytes of clips fed into merge batches.
	TotalOutputBytes int64 // Bytes of merged recordings written.
}

// Total is the number of files both passes will touch.
func (s *RunStats) Total() int {
	return s.SourceTotal + s.ScanTotal
}

// Percent returns overall completion for progress reporting. Before the
// merge scan has listed its folder the total is still growing, so the value
// is monotonic but conservative.
func (s *RunStats) Percent() float64 {
	total := s.Total()
	if total == 0 {
		return 100
	}
	return float64(s.Processed) / float64(total) * 100
}
