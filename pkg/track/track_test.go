package track

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemory_RecordCopiesProps(t *testing.T) {
	memory := NewMemory()
	props := map[string]any{"step": "address"}
	memory.Record("opened", props)

	props["step"] = "mutated"

	records := memory.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	want := Record{Event: "opened", Props: map[string]any{"step": "address"}}
	if diff := cmp.Diff(want, records[0]); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestMemory_NamedPreservesOrder(t *testing.T) {
	memory := NewMemory()
	memory.Record("click", map[string]any{"n": 1})
	memory.Record("view", nil)
	memory.Record("click", map[string]any{"n": 2})

	clicks := memory.Named("click")
	if len(clicks) != 2 {
		t.Fatalf("expected 2 click records, got %d", len(clicks))
	}
	if clicks[0].Props["n"] != 1 || clicks[1].Props["n"] != 2 {
		t.Fatalf("records out of order: %#v", clicks)
	}
}

func TestMemory_Reset(t *testing.T) {
	memory := NewMemory()
	memory.Record("x", nil)
	memory.Reset()
	if got := memory.Records(); len(got) != 0 {
		t.Fatalf("expected empty buffer after reset, got %#v", got)
	}
}

func TestTrackerFunc_NilIsSafe(t *testing.T) {
	var fn TrackerFunc
	fn.Record("anything", nil)
	Discard.Record("anything", map[string]any{"k": "v"})
}

func TestLogTracker_SortsKeys(t *testing.T) {
	var buf bytes.Buffer
	tracker := LogTracker{Logger: log.New(&buf, "", 0)}

	tracker.Record("submitted", map[string]any{"zeta": 1, "alpha": 2})

	line := buf.String()
	if !strings.Contains(line, "track submitted") {
		t.Fatalf("missing event name in %q", line)
	}
	if strings.Index(line, "alpha") > strings.Index(line, "zeta") {
		t.Fatalf("keys not sorted in %q", line)
	}
}
