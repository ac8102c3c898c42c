package domain

// Slot generation constants
const (
	// SlotStepMinutes шаг сетки слотов: старты кандидатов выровнены по
	// 15-минутной сетке от начала рабочего окна (не от конца перерыва)
	SlotStepMinutes = 15

	// MinServiceDurationMinutes минимальная длительность услуги
	MinServiceDurationMinutes = 5
)

// Business validation constants
const (
	MaxNotesLength        = 500
	MaxCancelReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// NonBlockingStatuses статусы, которые не занимают слот
// Используются при подсчете конфликтов и генерации слотов
var NonBlockingStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// BlockingStatuses статусы, занимающие свой интервал
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// TerminalStatuses статусы, из которых нет дальнейших переходов
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
