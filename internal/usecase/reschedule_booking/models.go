package reschedule_booking

import (
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
)

// Request запрос на перенос бронирования
type Request struct {
	BookingID int64
	StartAt   time.Time
	StaffID   *int64 // nil = мастер остается прежним
}

// Response ответ с перенесенным бронированием
type Response struct {
	Booking *domain.Booking
}
