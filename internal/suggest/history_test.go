package suggest

import (
	"fmt"
	"reflect"
	"testing"
)

func TestHistoryRecordsMostRecentFirst(t *testing.T) {
	history := NewHistory(10)

	history.Record("steel pipes")
	history.Record("catering")
	history.Record("av equipment")

	expected := []string{"av equipment", "catering", "steel pipes"}
	if got := history.Recent(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Recent() = %v, expected %v", got, expected)
	}
}

func TestHistoryDeduplicatesCaseInsensitively(t *testing.T) {
	history := NewHistory(10)

	history.Record("Steel Pipes")
	history.Record("catering")
	history.Record("steel pipes")

	recent := history.Recent()
	if len(recent) != 2 {
		t.Fatalf("Expected 2 entries after dedup, got %v", recent)
	}
	// The repeat moves to the front and keeps its latest casing.
	if recent[0] != "steel pipes" || recent[1] != "catering" {
		t.Errorf("Unexpected order after dedup: %v", recent)
	}
}

func TestHistoryIgnoresEmptyQueries(t *testing.T) {
	history := NewHistory(10)

	history.Record("")
	history.Record("   ")

	if got := history.Recent(); len(got) != 0 {
		t.Errorf("Expected empty history, got %v", got)
	}
}

func TestHistoryEnforcesCapacity(t *testing.T) {
	history := NewHistory(3)

	for i := 0; i < 5; i++ {
		history.Record(fmt.Sprintf("query %d", i))
	}

	expected := []string{"query 4", "query 3", "query 2"}
	if got := history.Recent(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Recent() = %v, expected %v", got, expected)
	}
}

func TestHistoryConcurrentRecord(t *testing.T) {
	history := NewHistory(10)
	done := make(chan struct{})

	for w := 0; w < 4; w++ {
		go func(worker int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				history.Record(fmt.Sprintf("worker %d query %d", worker, i%6))
				history.Recent()
			}
		}(w)
	}
	for w := 0; w < 4; w++ {
		<-done
	}

	if got := history.Recent(); len(got) > 10 {
		t.Errorf("History exceeded its capacity: %d entries", len(got))
	}
}
