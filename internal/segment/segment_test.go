package segment

import (
	"fmt"
	"testing"

	"github.com/hitworks/swingmetrics/internal/model"
)

func frame(id string, time float64, extra map[string]string) model.RawFrame {
	f := model.RawFrame{
		FieldMovementID: id,
		FieldTime:       fmt.Sprintf("%g", time),
	}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func frames(id string, n int) []model.RawFrame {
	out := make([]model.RawFrame, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, frame(id, float64(i)*0.01, nil))
	}
	return out
}

func TestGroupDropsUnattributedFrames(t *testing.T) {
	var rows []model.RawFrame
	rows = append(rows, frames("sw1", MinFramesME)...)
	rows = append(rows, frame("", 0.1, nil))
	rows = append(rows, frame("n/a", 0.2, nil))
	rows = append(rows, frame("N/A", 0.3, nil))
	rows = append(rows, frame("  ", 0.4, nil))

	groups := Group(rows, MinFramesME)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if got := len(groups[0].Frames); got != MinFramesME {
		t.Errorf("sentinel frames leaked into group: %d frames", got)
	}
}

func TestGroupMinFrames(t *testing.T) {
	var rows []model.RawFrame
	rows = append(rows, frames("small", MinFramesME-1)...)
	rows = append(rows, frames("big", MinFramesME)...)

	groups := Group(rows, MinFramesME)
	if len(groups) != 1 || groups[0].MovementID != "big" {
		t.Fatalf("expected only the %d-frame group to survive, got %+v", MinFramesME, groups)
	}
}

func TestGroupSortsByTime(t *testing.T) {
	rows := []model.RawFrame{
		frame("sw1", 0.04, nil),
		frame("sw1", 0.00, nil),
		frame("sw1", 0.03, nil),
		frame("sw1", 0.01, nil),
		frame("sw1", 0.02, nil),
	}
	groups := Group(rows, MinFramesME)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	prev := -1.0
	for _, f := range groups[0].Frames {
		ts := f.Float(FieldTime)
		if ts < prev {
			t.Fatalf("frames not ordered by time: %v after %v", ts, prev)
		}
		prev = ts
	}
}

func TestGroupPreservesFirstSeenOrder(t *testing.T) {
	var rows []model.RawFrame
	rows = append(rows, frames("b", MinFramesME)...)
	rows = append(rows, frames("a", MinFramesME)...)

	groups := Group(rows, MinFramesME)
	if len(groups) != 2 || groups[0].MovementID != "b" || groups[1].MovementID != "a" {
		t.Errorf("groups must keep first-seen order, got %q then %q",
			groups[0].MovementID, groups[1].MovementID)
	}
}

func TestWindowContactMarker(t *testing.T) {
	rows := []model.RawFrame{
		frame("sw1", 0.00, map[string]string{FieldTimeFromContact: "-0.30"}),
		frame("sw1", 0.01, map[string]string{FieldTimeFromContact: "-0.10"}),
		frame("sw1", 0.02, map[string]string{FieldTimeFromContact: "0.00"}),
		frame("sw1", 0.03, map[string]string{FieldTimeFromContact: "0.05"}),
		frame("sw1", 0.04, map[string]string{FieldTimeFromContact: "0.20"}),
	}
	groups := Group(rows, MinFramesME)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	// Only approach and contact frames stay; anything clearly past contact is out.
	if got := len(groups[0].Window); got != 3 {
		t.Errorf("window = %d frames, want 3 (follow-through excluded)", got)
	}
}

func TestWindowEarlyTimeFallback(t *testing.T) {
	rows := []model.RawFrame{
		frame("sw1", 0.0, nil),
		frame("sw1", 0.2, nil),
		frame("sw1", 0.5, nil),
		frame("sw1", 0.7, nil),
		frame("sw1", 0.9, nil),
	}
	groups := Group(rows, MinFramesME)
	if got := len(groups[0].Window); got != 3 {
		t.Errorf("without a contact marker the early-time window applies: got %d frames, want 3", got)
	}
}

func TestWindowHeadSliceLastResort(t *testing.T) {
	// Every timestamp past the early window and no contact marker.
	var rows []model.RawFrame
	for i := 0; i < 150; i++ {
		rows = append(rows, frame("sw1", 1.0+float64(i)*0.01, nil))
	}
	groups := Group(rows, MinFramesME)
	if got := len(groups[0].Window); got != fallbackFrames {
		t.Errorf("head-slice fallback window = %d frames, want %d", got, fallbackFrames)
	}
}
