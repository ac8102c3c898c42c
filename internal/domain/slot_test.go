package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/timespan"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/types"
)

// Понедельник
var testDate = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return testDate.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func candidate(hour, min, durationMinutes int) timespan.Span {
	start := at(hour, min)
	return timespan.New(start, start.Add(time.Duration(durationMinutes)*time.Minute))
}

func testRule() *AvailabilityRule {
	return &AvailabilityRule{
		ID:        1,
		StaffID:   7,
		Weekday:   time.Monday,
		StartTime: "10:00",
		EndTime:   "18:00",
		Breaks: []BreakWindow{
			{Start: "13:00", End: "14:00"},
		},
	}
}

func TestAlignedToGrid(t *testing.T) {
	windowStart := at(10, 0)

	assert.True(t, AlignedToGrid(windowStart, at(10, 0)))
	assert.True(t, AlignedToGrid(windowStart, at(10, 15)))
	assert.True(t, AlignedToGrid(windowStart, at(14, 45)))
	assert.False(t, AlignedToGrid(windowStart, at(10, 10)), "мимо сетки")
	assert.False(t, AlignedToGrid(windowStart, at(9, 45)), "раньше начала окна")
}

func TestCandidatePermitted(t *testing.T) {
	rule := testRule()

	tests := []struct {
		name      string
		candidate timespan.Span
		want      bool
		reason    string
	}{
		{"первый слот дня", candidate(10, 0, 30), true, ""},
		{"последний помещающийся слот", candidate(17, 30, 30), true, ""},
		{"не помещается в окно", candidate(17, 45, 30), false, DenialOutsideHours},
		{"до начала работы", candidate(9, 30, 30), false, DenialOutsideHours},
		{"пересекает перерыв", candidate(12, 45, 30), false, DenialBreak},
		{"целиком в перерыве", candidate(13, 15, 30), false, DenialBreak},
		{"впритык к перерыву слева", candidate(12, 30, 30), true, ""},
		{"сразу после перерыва", candidate(14, 0, 30), true, ""},
		{"мимо 15-минутной сетки", candidate(10, 20, 30), false, DenialOffGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason, err := CandidatePermitted(rule, tt.candidate, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestCandidatePermittedTimeOff(t *testing.T) {
	rule := testRule()

	allDay := []*TimeOff{{ID: 1, StaffID: 7, Date: testDate, AllDay: true}}
	got, reason, err := CandidatePermitted(rule, candidate(10, 0, 30), allDay)
	require.NoError(t, err)
	assert.False(t, got, "all-day time-off закрывает весь день")
	assert.Equal(t, DenialTimeOff, reason)

	start := types.TimeString("15:00")
	end := types.TimeString("16:00")
	windowed := []*TimeOff{{ID: 2, StaffID: 7, Date: testDate, StartTime: &start, EndTime: &end}}

	got, reason, err = CandidatePermitted(rule, candidate(15, 30, 30), windowed)
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, DenialTimeOff, reason)

	got, _, err = CandidatePermitted(rule, candidate(16, 0, 30), windowed)
	require.NoError(t, err)
	assert.True(t, got, "слот сразу после time-off доступен")
}

func TestCandidatePermittedInvalidRule(t *testing.T) {
	rule := testRule()
	rule.StartTime = "garbage"

	_, _, err := CandidatePermitted(rule, candidate(10, 0, 30), nil)
	assert.ErrorIs(t, err, types.ErrInvalidTimeFormat)
}

func TestBookingStateHelpers(t *testing.T) {
	for _, status := range []BookingStatus{StatusPending, StatusConfirmed} {
		b := &Booking{Status: status}
		assert.True(t, b.IsBlocking())
		assert.True(t, b.CanBeCancelled())
		assert.True(t, b.CanBeMarkedNoShow())
		assert.True(t, b.CanBeRescheduled())
		assert.True(t, b.CanBeCompleted())
		assert.False(t, b.IsTerminal())
	}

	for _, status := range []BookingStatus{StatusCancelled, StatusNoShow} {
		b := &Booking{Status: status}
		assert.False(t, b.IsBlocking(), "%s не занимает слот", status)
		assert.False(t, b.CanBeCancelled())
		assert.False(t, b.CanBeMarkedNoShow())
		assert.False(t, b.CanBeRescheduled())
		assert.False(t, b.CanBeCompleted())
		assert.True(t, b.IsTerminal())
	}

	completed := &Booking{Status: StatusCompleted}
	assert.True(t, completed.IsBlocking(), "completed продолжает занимать свой интервал")
	assert.True(t, completed.IsTerminal())
	assert.False(t, completed.CanBeCompleted())
}
