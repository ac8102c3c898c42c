package domain

import (
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/timespan"
)

// Slot represents a candidate bookable interval of exactly one
// service's duration for a specific staff member
type Slot struct {
	StartAt time.Time
	EndAt   time.Time
	StaffID int64
}

// AlignedToGrid reports whether start sits on the slot grid: a
// whole number of SlotStepMinutes steps after the window start
func AlignedToGrid(windowStart, start time.Time) bool {
	diff := start.Sub(windowStart)
	return diff >= 0 && diff%(SlotStepMinutes*time.Minute) == 0
}

// Denial reasons returned by CandidatePermitted. They end up in
// error messages, so the caller can tell which check rejected the slot.
const (
	DenialOutsideHours = "outside working hours"
	DenialOffGrid      = "start is off the slot grid"
	DenialBreak        = "overlaps a break"
	DenialTimeOff      = "overlaps staff time off"
)

// CandidatePermitted checks a candidate interval against one
// availability rule materialized on the candidate's date: the
// candidate must sit on the rule's slot grid, fit inside the
// working window (boundary-inclusive) and avoid breaks and time
// off. When the candidate is rejected, the returned reason names
// the check that failed. Conflicts with other bookings are checked
// separately.
func CandidatePermitted(rule *AvailabilityRule, candidate timespan.Span, timeOff []*TimeOff) (bool, string, error) {
	date := candidate.Start
	window, err := rule.WorkingWindow(date)
	if err != nil {
		return false, "", err
	}

	if !window.IsValid() || !window.Contains(candidate) {
		return false, DenialOutsideHours, nil
	}
	if !AlignedToGrid(window.Start, candidate.Start) {
		return false, DenialOffGrid, nil
	}

	breaks, err := rule.BreakSpans(date)
	if err != nil {
		return false, "", err
	}
	for _, br := range breaks {
		if candidate.Overlaps(br) {
			return false, DenialBreak, nil
		}
	}

	for _, off := range timeOff {
		if off.BlocksWholeDay() {
			return false, DenialTimeOff, nil
		}
		span, err := off.Span(date)
		if err != nil {
			return false, "", err
		}
		if candidate.Overlaps(span) {
			return false, DenialTimeOff, nil
		}
	}

	return true, "", nil
}
