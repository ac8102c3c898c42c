package get_available_slots

import (
	"context"
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований (booking ledger)
type BookingRepository interface {
	// GetWithFilter получает бронирования, пересекающие окно фильтра
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний персонала
type ScheduleRepository interface {
	RulesFor(ctx context.Context, staffID *int64, weekday time.Weekday) ([]*domain.AvailabilityRule, error)
	TimeOffFor(ctx context.Context, staffID int64, date time.Time) ([]*domain.TimeOff, error)
}

// CatalogClient интерфейс клиента каталога услуг и персонала
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
