package bookings

import (
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
)

// CancelRequest запрос на отмену бронирования
type CancelRequest struct {
	BookingID   int64
	CancelledBy string // domain.CancelledByCustomer или domain.CancelledByAdmin
	Reason      *string
	// CustomerID ограничивает отмену собственными бронированиями клиента
	// nil = без проверки владения (админ)
	CustomerID *int64
}

// CalendarRequest запрос календарной проекции леджера
type CalendarRequest struct {
	From            time.Time
	To              time.Time
	StaffID         *int64
	ServiceID       *int64
	Status          *domain.BookingStatus
	IncludeInactive bool
}

// StaffAgenda бронирования одного мастера в календарном окне
type StaffAgenda struct {
	StaffID  *int64 // nil = бронирования без назначенного мастера
	Bookings []*domain.Booking
}

// CalendarResponse календарная проекция: бронирования окна,
// сгруппированные по мастерам
type CalendarResponse struct {
	From     time.Time
	To       time.Time
	Total    int
	ByStaff  []StaffAgenda
	Bookings []*domain.Booking
}
