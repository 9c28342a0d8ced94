// Package segment groups capture frames into per-swing analysis units and
// selects the contact-relative window each extractor operates on.
package segment

import (
	"sort"
	"strings"

	"github.com/hitworks/swingmetrics/internal/model"
)

// Well-known capture export columns.
const (
	FieldTime            = "time"
	FieldMovementID      = "movement_id"
	FieldTimeFromContact = "time_from_max_hand"
)

// Minimum frames a movement group needs to be analyzable.
const (
	MinFramesME = 5
	MinFramesIK = 10
)

const (
	// contactMarkerMax admits frames up to and including approach-to-contact
	// when the export carries an explicit time-to-contact marker.
	contactMarkerMax = 0.01
	// earlyWindowSec is the fallback early-swing-phase window.
	earlyWindowSec = 0.5
	// fallbackFrames guarantees every surviving group yields a window.
	fallbackFrames = 100
)

// Group partitions rows by movement id, orders each group's frames by time,
// selects its analysis window, and discards groups below minFrames. Frames
// with an absent or "n/a" movement id are dropped entirely.
func Group(rows []model.RawFrame, minFrames int) []model.SwingGroup {
	byID := make(map[string][]model.RawFrame)
	var order []string
	for _, row := range rows {
		id := strings.TrimSpace(row.Str(FieldMovementID))
		if id == "" || strings.EqualFold(id, "n/a") {
			continue
		}
		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		byID[id] = append(byID[id], row)
	}

	var groups []model.SwingGroup
	for _, id := range order {
		frames := byID[id]
		if len(frames) < minFrames {
			continue
		}
		sort.SliceStable(frames, func(i, j int) bool {
			return frames[i].Float(FieldTime) < frames[j].Float(FieldTime)
		})
		groups = append(groups, model.SwingGroup{
			MovementID: id,
			Frames:     frames,
			Window:     selectWindow(frames),
		})
	}
	return groups
}

// selectWindow picks the contact-relative frame subset for analysis:
// explicit contact marker when present, early-time fallback otherwise, and an
// unconditional head slice as a last resort.
func selectWindow(frames []model.RawFrame) []model.RawFrame {
	var window []model.RawFrame

	if len(frames) > 0 && frames[0].Has(FieldTimeFromContact) {
		for _, f := range frames {
			if f.Float(FieldTimeFromContact) <= contactMarkerMax {
				window = append(window, f)
			}
		}
	} else {
		for _, f := range frames {
			if f.Float(FieldTime) <= earlyWindowSec {
				window = append(window, f)
			}
		}
	}

	if len(window) == 0 {
		n := len(frames)
		if n > fallbackFrames {
			n = fallbackFrames
		}
		window = frames[:n]
	}
	return window
}
