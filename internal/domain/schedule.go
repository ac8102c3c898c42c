package domain

import (
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/timespan"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/types"
)

// BreakWindow перерыв внутри рабочего окна (например, обед 13:00-14:00)
type BreakWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// AvailabilityRule недельное правило доступности мастера: рабочее окно
// на день недели плюс перерывы. Правила создаются админкой управления
// персоналом; ядро бронирования их только читает.
//
// Инварианты (гарантируются на записи, проверяются на чтении):
// - Start < End для окна и каждого перерыва
// - перерывы не пересекаются и целиком лежат внутри окна
type AvailabilityRule struct {
	ID        int64
	StaffID   int64
	Weekday   time.Weekday // 0=Sunday .. 6=Saturday
	StartTime types.TimeString
	EndTime   types.TimeString
	Breaks    []BreakWindow

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkingWindow материализует правило на конкретную календарную дату
func (r *AvailabilityRule) WorkingWindow(date time.Time) (timespan.Span, error) {
	start, err := r.StartTime.At(date)
	if err != nil {
		return timespan.Span{}, err
	}
	end, err := r.EndTime.At(date)
	if err != nil {
		return timespan.Span{}, err
	}
	return timespan.New(start, end), nil
}

// BreakSpans материализует перерывы правила на конкретную дату
func (r *AvailabilityRule) BreakSpans(date time.Time) ([]timespan.Span, error) {
	spans := make([]timespan.Span, 0, len(r.Breaks))
	for _, br := range r.Breaks {
		start, err := br.Start.At(date)
		if err != nil {
			return nil, err
		}
		end, err := br.End.At(date)
		if err != nil {
			return nil, err
		}
		spans = append(spans, timespan.New(start, end))
	}
	return spans, nil
}

// TimeOff разовое исключение из расписания мастера на конкретную дату:
// либо весь день, либо окно StartTime-EndTime
type TimeOff struct {
	ID        int64
	StaffID   int64
	Date      time.Time
	AllDay    bool
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    *string

	CreatedAt time.Time
}

// BlocksWholeDay возвращает true, если исключение закрывает весь день
// Исключение без корректного окна также трактуется как полный день
func (o *TimeOff) BlocksWholeDay() bool {
	return o.AllDay || o.StartTime == nil || o.EndTime == nil
}

// Span материализует окно исключения на дату исключения
// Для BlocksWholeDay вызывать не нужно
func (o *TimeOff) Span(date time.Time) (timespan.Span, error) {
	start, err := o.StartTime.At(date)
	if err != nil {
		return timespan.Span{}, err
	}
	end, err := o.EndTime.At(date)
	if err != nil {
		return timespan.Span{}, err
	}
	return timespan.New(start, end), nil
}
