package admin_calendar

import (
	"context"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/service/bookings"
)

type BookingService interface {
	Calendar(ctx context.Context, req bookings.CalendarRequest) (bookings.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
