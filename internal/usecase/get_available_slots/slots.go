package get_available_slots

import (
	"fmt"
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/timespan"
)

// slotStep фиксированный шаг сетки слотов, не зависит от длительности услуги
const slotStep = domain.SlotStepMinutes * time.Minute

// buildSlotsForRule генерирует слоты одного правила доступности.
// Кандидаты идут с шагом 15 минут от начала рабочего окна; кандидат
// попадает в результат, только если целиком помещается в окно и не
// пересекается с перерывами, time-off и блокирующими бронированиями.
// Прошедшие слоты (start < now) отбрасываются.
func buildSlotsForRule(
	rule *domain.AvailabilityRule,
	date time.Time,
	duration time.Duration,
	now time.Time,
	timeOff []*domain.TimeOff,
	bookings []*domain.Booking,
) ([]Slot, error) {
	window, err := rule.WorkingWindow(date)
	if err != nil {
		return nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidRuleFormat, rule.ID, err)
	}

	// Правило с start_time >= end_time не дает ни одного слота
	if !window.IsValid() {
		return nil, nil
	}

	breaks, err := rule.BreakSpans(date)
	if err != nil {
		return nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidRuleFormat, rule.ID, err)
	}

	offSpans, wholeDayOff, err := timeOffSpans(timeOff, date)
	if err != nil {
		return nil, err
	}
	if wholeDayOff {
		return nil, nil
	}

	slots := make([]Slot, 0)
	for start := range window.StartTimes(slotStep, duration) {
		if start.Before(now) {
			continue
		}

		candidate := timespan.New(start, start.Add(duration))

		if overlapsAny(candidate, breaks) {
			continue
		}
		if overlapsAny(candidate, offSpans) {
			continue
		}
		if overlapsBooking(candidate, bookings) {
			continue
		}

		slots = append(slots, Slot{
			StartAt: candidate.Start,
			EndAt:   candidate.End,
			StaffID: rule.StaffID,
		})
	}

	return slots, nil
}

// timeOffSpans материализует time-off записи в интервалы на дату.
// Запись all_day (или без границ) блокирует день целиком.
func timeOffSpans(timeOff []*domain.TimeOff, date time.Time) ([]timespan.Span, bool, error) {
	spans := make([]timespan.Span, 0, len(timeOff))
	for _, off := range timeOff {
		if off.BlocksWholeDay() {
			return nil, true, nil
		}

		span, err := off.Span(date)
		if err != nil {
			return nil, false, fmt.Errorf("%w: time off %d: %v", ErrInvalidRuleFormat, off.ID, err)
		}
		spans = append(spans, span)
	}
	return spans, false, nil
}

func overlapsAny(candidate timespan.Span, spans []timespan.Span) bool {
	for _, span := range spans {
		if candidate.Overlaps(span) {
			return true
		}
	}
	return false
}

func overlapsBooking(candidate timespan.Span, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.IsBlocking() {
			continue
		}
		if candidate.Overlaps(b.Span()) {
			return true
		}
	}
	return false
}
