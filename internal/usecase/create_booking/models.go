package create_booking

import (
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
)

// Request запрос на создание бронирования
type Request struct {
	CustomerID int64
	ServiceID  int64
	StaffID    *int64 // nil = без конкретного мастера
	StartAt    time.Time
	Notes      *string
}

// Response ответ с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
