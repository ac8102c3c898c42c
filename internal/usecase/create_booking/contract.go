package create_booking

import (
	"context"
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/integrations/catalogservice"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/timespan"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// FindConflicts возвращает блокирующие бронирования, пересекающие span
	// Внутри транзакции строки блокируются (FOR UPDATE)
	FindConflicts(ctx context.Context, staffID *int64, span timespan.Span, excludeID *int64) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний персонала
type ScheduleRepository interface {
	RulesFor(ctx context.Context, staffID *int64, weekday time.Weekday) ([]*domain.AvailabilityRule, error)
	TimeOffFor(ctx context.Context, staffID int64, date time.Time) ([]*domain.TimeOff, error)
}

// CatalogClient интерфейс клиента каталога услуг и персонала
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetStaff(ctx context.Context, staffID int64) (*catalogservice.Staff, error)
}

// TxManager интерфейс менеджера транзакций
// Пара проверка-вставка выполняется только на уровне SERIALIZABLE
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
