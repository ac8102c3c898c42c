package admin_complete_booking

import (
	"context"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
)

type BookingService interface {
	Complete(ctx context.Context, id int64) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
