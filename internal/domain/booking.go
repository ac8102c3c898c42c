package domain

import (
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/timespan"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// Кто отменил бронирование (аудит)
const (
	CancelledByCustomer = "customer"
	CancelledByAdmin    = "admin"
)

// Booking represents a salon appointment in the system
type Booking struct {
	ID         int64
	CustomerID int64
	ServiceID  int64
	StaffID    *int64 // nil = мастер не назначен
	StartAt    time.Time
	EndAt      time.Time // всегда StartAt + DurationMinutesSnapshot
	Status     BookingStatus

	// Snapshot данных услуги на момент бронирования
	PriceSnapshot           float64
	DurationMinutesSnapshot int
	ServiceNameSnapshot     string

	Notes *string

	// Аудит отмены / no-show / переноса
	CancelReason    *string
	CancelledBy     *string
	CancelledAt     *time.Time
	NoShowMarkedAt  *time.Time
	RescheduledFrom *time.Time
	RescheduleCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the booking occupies its interval for
// conflict checks and slot generation. Pending bookings block the slot
// too (soft hold semantics).
func (b *Booking) IsBlocking() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// IsTerminal returns true if no further status transition is permitted
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeMarkedNoShow returns true if the booking can be marked as no-show
func (b *Booking) CanBeMarkedNoShow() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the booking can be marked as completed
func (b *Booking) CanBeCompleted() bool {
	return !b.IsTerminal()
}

// Span returns the booking interval [StartAt, EndAt)
func (b *Booking) Span() timespan.Span {
	return timespan.New(b.StartAt, b.EndAt)
}

// BookingsFilter фильтр для выборки бронирований (календарь, списки)
// From/To задают окно: отбираются бронирования, пересекающие [From, To)
type BookingsFilter struct {
	From            *time.Time
	To              *time.Time
	StaffID         *int64
	ServiceID       *int64
	Status          *BookingStatus
	IncludeInactive bool // Включать ли отмененные и no-show
}
