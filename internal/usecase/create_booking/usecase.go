package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/integrations/catalogservice"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/timespan"
)

// Usecase создание бронирования с защитой от двойного бронирования.
// Проверка валидности слота и конфликтов выполняется вместе со вставкой
// внутри SERIALIZABLE транзакции: из N конкурентных попыток на один слот
// выигрывает ровно одна
type Usecase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalog      CatalogClient
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUsecase создает новый экземпляр usecase создания бронирования
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

// Execute создает бронирование на запрошенный слот
func (u *Usecase) Execute(ctx context.Context, req Request) (Response, error) {
	u.logger.Info("[CreateBooking] Создание бронирования: customerID=%d, serviceID=%d, startAt=%s",
		req.CustomerID, req.ServiceID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := u.validateRequest(req); err != nil {
		u.logger.Warn("[CreateBooking] Ошибка валидации: %v", err)
		return Response{}, err
	}

	// 2. Получаем услугу из каталога: длительность и цена снимаются
	// снапшотом на момент создания
	service, err := u.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			u.logger.Warn("[CreateBooking] Услуга не найдена: serviceID=%d", req.ServiceID)
			return Response{}, fmt.Errorf("%w: service %d", ErrServiceNotFound, req.ServiceID)
		}
		u.logger.Error("[CreateBooking] Ошибка каталога: %v", err)
		return Response{}, fmt.Errorf("%w: get service: %v", ErrInternal, err)
	}

	if !service.Active {
		u.logger.Warn("[CreateBooking] Услуга неактивна: serviceID=%d", req.ServiceID)
		return Response{}, fmt.Errorf("%w: service %d", ErrServiceInactive, req.ServiceID)
	}

	// 3. Если мастер указан - проверяем существование и квалификацию
	if req.StaffID != nil {
		if err := u.validateStaff(ctx, *req.StaffID, service); err != nil {
			return Response{}, err
		}
	}

	// 4. Прошедшие слоты бронировать нельзя
	now := u.timeProvider.Now()
	if req.StartAt.Before(now) {
		u.logger.Warn("[CreateBooking] Слот в прошлом: startAt=%s", req.StartAt.Format(time.RFC3339))
		return Response{}, fmt.Errorf("%w: start_at is in the past", ErrSlotUnavailable)
	}

	duration := time.Duration(service.DurationMinutes) * time.Minute
	candidate := timespan.New(req.StartAt, req.StartAt.Add(duration))

	booking := &domain.Booking{
		CustomerID:              req.CustomerID,
		ServiceID:               req.ServiceID,
		StaffID:                 req.StaffID,
		StartAt:                 candidate.Start,
		EndAt:                   candidate.End,
		Status:                  domain.StatusConfirmed,
		PriceSnapshot:           service.BasePrice,
		DurationMinutesSnapshot: service.DurationMinutes,
		ServiceNameSnapshot:     service.Name,
		Notes:                   req.Notes,
	}

	// 5. Проверка слота и вставка - неделимо, внутри SERIALIZABLE транзакции
	err = u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Слот должен быть валидным кандидатом расписания мастера
		if req.StaffID != nil {
			permitted, reason, err := u.slotPermitted(txCtx, *req.StaffID, candidate)
			if err != nil {
				return err
			}
			if !permitted {
				return fmt.Errorf("%w: %s for staff %d: %s", ErrSlotUnavailable,
					candidate.Start.Format(time.RFC3339), *req.StaffID, reason)
			}
		}

		// 5.2. Конфликты с существующими бронированиями (FOR UPDATE)
		conflicts, err := u.bookingRepo.FindConflicts(txCtx, req.StaffID, candidate, nil)
		if err != nil {
			return fmt.Errorf("%w: find conflicts: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			return fmt.Errorf("%w: %d conflicting booking(s)", ErrSlotTaken, len(conflicts))
		}

		// 5.3. Вставка
		if _, err := u.bookingRepo.Create(txCtx, booking); err != nil {
			return fmt.Errorf("%w: create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrSlotUnavailable) {
			u.logger.Warn("[CreateBooking] Слот недоступен: %v", err)
		} else {
			u.logger.Error("[CreateBooking] Ошибка транзакции: %v", err)
		}
		return Response{}, err
	}

	u.logger.Info("[CreateBooking] Бронирование создано: bookingID=%d, customerID=%d", booking.ID, req.CustomerID)
	return Response{Booking: booking}, nil
}

// validateStaff проверяет, что мастер существует, активен и оказывает услугу
func (u *Usecase) validateStaff(ctx context.Context, staffID int64, service *catalogservice.Service) error {
	staff, err := u.catalog.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrStaffNotFound) {
			u.logger.Warn("[CreateBooking] Мастер не найден: staffID=%d", staffID)
			return fmt.Errorf("%w: staff %d", ErrStaffNotFound, staffID)
		}
		u.logger.Error("[CreateBooking] Ошибка каталога: %v", err)
		return fmt.Errorf("%w: get staff: %v", ErrInternal, err)
	}

	if !staff.Active {
		u.logger.Warn("[CreateBooking] Мастер неактивен: staffID=%d", staffID)
		return fmt.Errorf("%w: staff %d is inactive", ErrStaffNotFound, staffID)
	}

	if !service.PerformedBy(staffID) {
		u.logger.Warn("[CreateBooking] Мастер не оказывает услугу: staffID=%d, serviceID=%d", staffID, service.ID)
		return fmt.Errorf("%w: staff %d, service %d", ErrStaffNotQualified, staffID, service.ID)
	}

	return nil
}

// slotPermitted проверяет кандидата против правил доступности мастера:
// попадание в сетку рабочего окна, перерывы и time-off.
// Достаточно одного разрешающего правила на день недели.
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
