package chronograph

import (
	"testing"
	"time"
)

func TestSplitsRoundTrip(t *testing.T) {
	cg := New(Options{Name: "codec"})

	cg.Start("first")
	time.Sleep(100 * time.Millisecond)
	cg.Split("second")
	time.Sleep(50 * time.Millisecond)
	cg.Stop()

	original := cg.Splits()
	data, err := MarshalSplits(original)
	if err != nil {
		t.Fatalf("MarshalSplits failed: %v", err)
	}

	decoded, err := UnmarshalSplits(data)
	if err != nil {
		t.Fatalf("UnmarshalSplits failed: %v", err)
	}

	if len(decoded) != len(original) {
		t.Fatalf("got %d splits after round trip, want %d", len(decoded), len(original))
	}
	for i := range original {
		if decoded[i].Label != original[i].Label {
			t.Errorf("split %d label = %q, want %q", i, decoded[i].Label, original[i].Label)
		}

		wantDur, err := original[i].Duration(false)
		if err != nil {
			t.Fatalf("split %d duration: %v", i, err)
		}
		gotDur, err := decoded[i].Duration(false)
		if err != nil {
			t.Fatalf("decoded split %d duration: %v", i, err)
		}
		// RFC 3339 nano timestamps keep durations well below
		// millisecond error
		if !within(gotDur, wantDur, time.Millisecond) {
			t.Errorf("split %d duration drifted: %v -> %v", i, wantDur, gotDur)
		}
	}
}

func TestOpenSplitRoundTrip(t *testing.T) {
	cg := New(Options{Name: "codec open"})
	cg.Start("running")

	data, err := cg.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	decoded, err := UnmarshalSplits(data)
	if err != nil {
		t.Fatalf("UnmarshalSplits failed: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d splits, want 1", len(decoded))
	}
	if !decoded[0].Open() {
		t.Error("open split closed by round trip")
	}
	cg.Stop()
}
