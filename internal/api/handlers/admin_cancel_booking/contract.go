package admin_cancel_booking

import (
	"context"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/service/bookings"
)

type BookingService interface {
	Cancel(ctx context.Context, req bookings.CancelRequest) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
