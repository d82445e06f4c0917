package sponsorship

import (
	"time"

	"sponsorship-api/internal/domain/placement"
)

// FIFO-by-tail scheduling: a new grant is appended strictly after the latest
// currently scheduled occupant of its slot. A busy slot defers the start, it
// never rejects the grant, and the deferral is independent of when the
// underlying request was created.

// PlanWindow computes the occupancy window for one slot. tail is the maximum
// ends_at among the slot's existing grants, or nil for an empty slot.
func PlanWindow(now time.Time, tail *time.Time, duration Duration) Window {
	start := now
	if tail != nil && tail.After(start) {
		start = *tail
	}
	return Window{start: start, end: start.Add(duration.AsTimeDuration())}
}

// SlotChoice is the outcome of any-slot auto-assignment.
type SlotChoice struct {
	SlotIndex int
	Window    Window
}

// ChooseSlot picks the slot of a placement whose planned window starts
// earliest. Ties go to the lowest slot index. tails maps slot index to that
// slot's current tail; missing entries mean the slot is empty. A placement
// with no slots falls back to slot 0; grant construction re-validates it.
func ChooseSlot(pl placement.Placement, now time.Time, tails map[int]time.Time, duration Duration) SlotChoice {
	var best *SlotChoice
	for _, idx := range pl.SlotIndexes() {
		var tail *time.Time
		if t, ok := tails[idx]; ok {
			tail = &t
		}
		w := PlanWindow(now, tail, duration)
		if best == nil || w.Start().Before(best.Window.Start()) {
			best = &SlotChoice{SlotIndex: idx, Window: w}
		}
	}
	if best == nil {
		return SlotChoice{SlotIndex: 0, Window: PlanWindow(now, nil, duration)}
	}
	return *best
}
