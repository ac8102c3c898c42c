package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	bookingstorage "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/infra/storage/booking"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/integrations/catalogservice"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/timespan"
)

// Usecase перенос бронирования на другой слот и/или другого мастера.
// Целевой слот проходит ту же проверку, что и при создании (расписание,
// перерывы, time-off, конфликты), с исключением собственного интервала
// бронирования. Неудачная проверка оставляет бронирование без изменений
type Usecase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalog      CatalogClient
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUsecase создает новый экземпляр usecase переноса бронирования
func NewUsecase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalog CatalogClient,
	txManager TxManager,
	timeProvider TimeProvider,
	logger Logger,
) *Usecase {
	return &Usecase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalog:      catalog,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute переносит бронирование на новый слот
func (u *Usecase) Execute(ctx context.Context, req Request) (Response, error) {
	u.logger.Info("[RescheduleBooking] Перенос бронирования: bookingID=%d, startAt=%s",
		req.BookingID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := u.validateRequest(req); err != nil {
		u.logger.Warn("[RescheduleBooking] Ошибка валидации: %v", err)
		return Response{}, err
	}

	// 2. Прошедшие слоты недоступны для переноса
	now := u.timeProvider.Now()
	if req.StartAt.Before(now) {
		u.logger.Warn("[RescheduleBooking] Слот в прошлом: startAt=%s", req.StartAt.Format(time.RFC3339))
		return Response{}, fmt.Errorf("%w: start_at is in the past", ErrSlotUnavailable)
	}

	var booking *domain.Booking

	// 3. Чтение, проверки и мутация - неделимо, внутри SERIALIZABLE транзакции
	err := u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		// 3.1. Читаем бронирование с блокировкой строки
		booking, err = u.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingstorage.ErrBookingNotFound) {
				return fmt.Errorf("%w: booking %d", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}

		// 3.2. Перенос разрешен только из pending и confirmed
		if !booking.CanBeRescheduled() {
			return fmt.Errorf("%w: booking %d is %s", ErrInvalidState, booking.ID, booking.Status)
		}

		// 3.3. Целевой мастер: из запроса или прежний
		targetStaff := booking.StaffID
		if req.StaffID != nil {
			targetStaff = req.StaffID
			if err := u.validateStaff(txCtx, *req.StaffID, booking.ServiceID); err != nil {
				return err
			}
		}

		// 3.4. Длительность берется из снапшота, не из текущего каталога
		duration := time.Duration(booking.DurationMinutesSnapshot) * time.Minute
		candidate := timespan.New(req.StartAt, req.StartAt.Add(duration))

		// 3.5. Целевой слот должен быть валидным кандидатом расписания
		if targetStaff != nil {
			permitted, reason, err := u.slotPermitted(txCtx, *targetStaff, candidate)
			if err != nil {
				return err
			}
			if !permitted {
				return fmt.Errorf("%w: %s for staff %d: %s", ErrSlotUnavailable,
					candidate.Start.Format(time.RFC3339), *targetStaff, reason)
			}
		}

		// 3.6. Конфликты, исключая собственный интервал бронирования
		conflicts, err := u.bookingRepo.FindConflicts(txCtx, targetStaff, candidate, &booking.ID)
		if err != nil {
			return fmt.Errorf("%w: find conflicts: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			return fmt.Errorf("%w: %d conflicting booking(s)", ErrSlotTaken, len(conflicts))
		}

		// 3.7. Мутация: новый интервал, прежний старт в аудит
		previousStart := booking.StartAt
		if err := u.bookingRepo.Reschedule(txCtx, booking.ID, candidate.Start, candidate.End, targetStaff, previousStart); err != nil {
			return fmt.Errorf("%w: reschedule booking: %v", ErrInternal, err)
		}

		booking.RescheduledFrom = &previousStart
		booking.RescheduleCount++
		booking.StartAt = candidate.Start
		booking.EndAt = candidate.End
		booking.StaffID = targetStaff

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrInvalidState),
			errors.Is(err, ErrSlotTaken), errors.Is(err, ErrSlotUnavailable):
			u.logger.Warn("[RescheduleBooking] Перенос отклонен: %v", err)
		default:
			u.logger.Error("[RescheduleBooking] Ошибка транзакции: %v", err)
		}
		return Response{}, err
	}

	u.logger.Info("[RescheduleBooking] Бронирование перенесено: bookingID=%d, переносов=%d", booking.ID, booking.RescheduleCount)
	return Response{Booking: booking}, nil
}

// validateStaff проверяет, что новый мастер существует, активен и
// оказывает услугу бронирования
func (u *Usecase) validateStaff(ctx context.Context, staffID int64, serviceID int64) error {
	staff, err := u.catalog.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrStaffNotFound) {
			return fmt.Errorf("%w: staff %d", ErrStaffNotFound, staffID)
		}
		return fmt.Errorf("%w: get staff: %v", ErrInternal, err)
	}

	if !staff.Active {
		return fmt.Errorf("%w: staff %d is inactive", ErrStaffNotFound, staffID)
	}

	if !staff.CanPerform(serviceID) {
		return fmt.Errorf("%w: staff %d, service %d", ErrStaffNotQualified, staffID, serviceID)
	}

	return nil
}

// slotPermitted проверяет кандидата против правил доступности мастера.
// Для отклоненного кандидата возвращается причина первой неудавшейся проверки
func (u *Usecase) slotPermitted(ctx context.Context, staffID int64, candidate timespan.Span) (bool, string, error) {
	rules, err := u.scheduleRepo.RulesFor(ctx, &staffID, candidate.Start.Weekday())
	if err != nil {
		return false, "", fmt.Errorf("%w: get availability rules: %v", ErrInternal, err)
	}
	if len(rules) == 0 {
		return false, "no availability rules for this day", nil
	}

	timeOff, err := u.scheduleRepo.TimeOffFor(ctx, staffID, candidate.Start)
	if err != nil {
		return false, "", fmt.Errorf("%w: get time off: %v", ErrInternal, err)
	}

	denial := ""
	for _, rule := range rules {
		permitted, reason, err := domain.CandidatePermitted(rule, candidate, timeOff)
		if err != nil {
			return false, "", fmt.Errorf("%w: rule %d: %v", ErrInvalidRuleFormat, rule.ID, err)
		}
		if permitted {
			return true, "", nil
		}
		if denial == "" {
			denial = reason
		}
	}

	return false, denial, nil
}
