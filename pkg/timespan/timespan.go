package timespan

import (
	"iter"
	"time"
)

// Span полуоткрытый временной интервал [Start, End)
// Используется для рабочих окон, перерывов, time-off и бронирований
type Span struct {
	Start time.Time
	End   time.Time
}

// New создает новый интервал
func New(start, end time.Time) Span {
	return Span{Start: start, End: end}
}

// IsValid возвращает true, если интервал не пуст (Start строго раньше End)
func (s Span) IsValid() bool {
	return s.Start.Before(s.End)
}

// Duration возвращает длительность интервала
func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps возвращает true, если интервалы действительно пересекаются
// Интервалы полуоткрытые: если один заканчивается ровно там, где начинается
// другой - это НЕ пересечение
func (s Span) Overlaps(other Span) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// Contains возвращает true, если other целиком лежит внутри s
// Границы включительные: интервал, совпадающий с s, считается содержащимся
func (s Span) Contains(other Span) bool {
	return !other.Start.Before(s.Start) && !other.End.After(s.End)
}

// ContainsInstant возвращает true, если момент t попадает в интервал [Start, End)
func (s Span) ContainsInstant(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// StartTimes возвращает ленивую последовательность стартов кандидатов-слотов:
// от Start с фиксированным шагом step, пока слот длиной slotLen целиком
// помещается в интервал. Последовательность конечна, без побочных эффектов
// и может обходиться повторно.
func (s Span) StartTimes(step, slotLen time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if step <= 0 || slotLen <= 0 {
			return
		}
		for t := s.Start; !t.Add(slotLen).After(s.End); t = t.Add(step) {
			if !yield(t) {
				return
			}
		}
	}
}
