package timeline

import (
	"testing"
)

// entry builds a batch entry with probed facts.
func entry(t *testing.T, start, end string, size int64) Entry {
	t.Helper()
	name := clip(t, "CAM1-", start, end)
	return Entry{
		Filename: "CAM1-" + start + "-" + end + ".mp4",
		Name:     name,
		Duration: name.NamedDuration().Seconds(),
		Size:     size,
	}
}

// feedAll runs a clip sequence through a fresh accumulator and returns the
// closed batches (including the flush) and all events.
func feedAll(ceiling int64, entries ...Entry) ([]*Batch, []Event) {
	acc := NewAccumulator(ceiling)
	var batches []*Batch
	var events []Event
	for _, e := range entries {
		closed, evs := acc.Feed(e)
		if closed != nil {
			batches = append(batches, closed)
		}
		events = append(events, evs...)
	}
	if b := acc.Flush(); b != nil {
		batches = append(batches, b)
	}
	return batches, events
}

func TestAccumulator_ContiguousRunFormsOneBatch(t *testing.T) {
	batches, _ := feedAll(0,
		entry(t, "20230101120000", "20230101120459", 100),
		entry(t, "20230101120500", "20230101120959", 100),
		entry(t, "20230101121000", "20230101121459", 100),
	)
	if len(batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(batches))
	}
	if n := len(batches[0].Entries); n != 3 {
		t.Errorf("entries = %d, want 3", n)
	}
	if batches[0].Size != 300 {
		t.Errorf("Size = %d, want 300", batches[0].Size)
	}
}

func TestAccumulator_DisjointClosesBatch(t *testing.T) {
	batches, _ := feedAll(0,
		entry(t, "20230101120000", "20230101120459", 100),
		// An hour's gap.
		entry(t, "20230101130000", "20230101130459", 100),
	)
	if len(batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(batches))
	}
	if len(batches[0].Entries) != 1 || len(batches[1].Entries) != 1 {
		t.Error("each gap-separated clip should land in its own batch")
	}
}

func TestAccumulator_CeilingClosesBeforeOverflow(t *testing.T) {
	batches, _ := feedAll(250,
		entry(t, "20230101120000", "20230101120459", 100),
		entry(t, "20230101120500", "20230101120959", 100),
		// 100+100+100 would reach 300 >= 250: the third clip must start a
		// fresh batch and the first must close at 200.
		entry(t, "20230101121000", "20230101121459", 100),
	)
	if len(batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(batches))
	}
	if batches[0].Size != 200 {
		t.Errorf("first batch size = %d, want 200", batches[0].Size)
	}
	if len(batches[1].Entries) != 1 || batches[1].Size != 100 {
		t.Errorf("overflow clip should open a new batch alone (size %d)", batches[1].Size)
	}
}

func TestAccumulator_DuplicateKeepsLarger(t *testing.T) {
	small := entry(t, "20230101120000", "20230101120459", 100)
	big := entry(t, "20230101120000", "20230101120459", 200)
	big.Filename = "CAM1-20230101120000-20230101120459_1.mp4"

	batches, events := feedAll(0, small, big)
	if len(batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(batches))
	}
	b := batches[0]
	if len(b.Entries) != 1 {
		t.Fatalf("entries = %d, want 1 (one duplicate must be discarded)", len(b.Entries))
	}
	if b.Entries[0].Size != 200 {
		t.Errorf("survivor size = %d, want 200", b.Entries[0].Size)
	}
	if b.Size != 200 {
		t.Errorf("batch size = %d, want 200 (must reflect only the kept clip)", b.Size)
	}

	var replaced bool
	for _, ev := range events {
		if ev.Kind == EventReplaceDuplicate {
			replaced = true
			if ev.Discarded.Size != 100 {
				t.Errorf("discarded size = %d, want 100", ev.Discarded.Size)
			}
		}
	}
	if !replaced {
		t.Error("no replace event emitted for the discarded duplicate")
	}
}

func TestAccumulator_DuplicateKeepsExistingWhenNotLarger(t *testing.T) {
	first := entry(t, "20230101120000", "20230101120459", 200)
	dup := entry(t, "20230101120000", "20230101120459", 100)

	batches, events := feedAll(0, first, dup)
	b := batches[0]
	if len(b.Entries) != 1 || b.Entries[0].Size != 200 {
		t.Errorf("existing entry must be retained")
	}
	if b.Size != 200 {
		t.Errorf("batch size = %d, want 200", b.Size)
	}

	var skipped bool
	for _, ev := range events {
		if ev.Kind == EventSkipDuplicate {
			skipped = true
		}
	}
	if !skipped {
		t.Error("no skip event emitted for the discarded duplicate")
	}
}

func TestAccumulator_ScanContinuesAfterDuplicate(t *testing.T) {
	batches, _ := feedAll(0,
		entry(t, "20230101120000", "20230101120459", 100),
		entry(t, "20230101120000", "20230101120459", 200),
		// Contiguous with the resolved interval's end.
		entry(t, "20230101120500", "20230101120959", 100),
	)
	if len(batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(batches))
	}
	if n := len(batches[0].Entries); n != 2 {
		t.Errorf("entries = %d, want 2 (survivor + follower)", n)
	}
}

func TestAccumulator_ReplacementOverCeilingWarnsButKeeps(t *testing.T) {
	// Ceiling 250: 100+100 = 200 admitted, then a 180-byte duplicate of the
	// second interval lifts the batch to 280. Known gap: warn, don't split.
	batches, events := feedAll(250,
		entry(t, "20230101120000", "20230101120459", 100),
		entry(t, "20230101120500", "20230101120959", 100),
		entry(t, "20230101120500", "20230101120959", 180),
	)
	if len(batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(batches))
	}
	if batches[0].Size != 280 {
		t.Errorf("batch size = %d, want 280", batches[0].Size)
	}

	var risk *Event
	for i, ev := range events {
		if ev.Kind == EventSizeCeilingRisk {
			risk = &events[i]
		}
	}
	if risk == nil {
		t.Fatal("no ceiling-risk event emitted")
	}
	if risk.OverBy != 30 {
		t.Errorf("OverBy = %d, want 30", risk.OverBy)
	}
}

func TestAccumulator_FlushOnEmptyReturnsNil(t *testing.T) {
	acc := NewAccumulator(0)
	if b := acc.Flush(); b != nil {
		t.Errorf("Flush on empty accumulator = %+v, want nil", b)
	}
}

func TestAccumulator_MonotonicStartsAfterResolution(t *testing.T) {
	batches, _ := feedAll(0,
		entry(t, "20230101120000", "20230101120459", 100),
		entry(t, "20230101120000", "20230101120459", 300),
		entry(t, "20230101120500", "20230101120959", 100),
		entry(t, "20230101121000", "20230101121459", 100),
	)
	for _, b := range batches {
		for i := 1; i < len(b.Entries); i++ {
			if b.Entries[i].Name.Start.Before(b.Entries[i-1].Name.Start) {
				t.Errorf("batch entries out of order at %d", i)
			}
		}
	}
}
