package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/integrations/catalogservice"
)

// Usecase генератор доступных слотов: пересекает правила доступности,
// time-off и леджер бронирований в окне запрошенной даты
type Usecase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalog      CatalogClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUsecase создает новый экземпляр usecase получения доступных слотов
func NewUsecase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalog CatalogClient,
	timeProvider TimeProvider,
	logger Logger,
) *Usecase {
	return &Usecase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalog:      catalog,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute возвращает доступные слоты на дату для услуги.
// Если StaffID не указан, слоты собираются по всем мастерам,
// оказывающим услугу (fan-out).
func (u *Usecase) Execute(ctx context.Context, req Request) (Response, error) {
	u.logger.Info("[GetAvailableSlots] Запрос слотов: serviceID=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := u.validateRequest(req); err != nil {
		u.logger.Warn("[GetAvailableSlots] Ошибка валидации: %v", err)
		return Response{}, err
	}

	// 2. Получаем услугу из каталога
	service, err := u.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			u.logger.Warn("[GetAvailableSlots] Услуга не найдена: serviceID=%d", req.ServiceID)
			return Response{}, fmt.Errorf("%w: service %d", ErrServiceNotFound, req.ServiceID)
		}
		u.logger.Error("[GetAvailableSlots] Ошибка каталога: %v", err)
		return Response{}, fmt.Errorf("%w: get service: %v", ErrInternal, err)
	}

	if !service.Active {
		u.logger.Warn("[GetAvailableSlots] Услуга неактивна: serviceID=%d", req.ServiceID)
		return Response{}, fmt.Errorf("%w: service %d", ErrServiceInactive, req.ServiceID)
	}

	if service.DurationMinutes < domain.MinServiceDurationMinutes {
		u.logger.Error("[GetAvailableSlots] Каталог вернул некорректную длительность: serviceID=%d, duration=%d", req.ServiceID, service.DurationMinutes)
		return Response{}, fmt.Errorf("%w: service %d has invalid duration %d", ErrInternal, req.ServiceID, service.DurationMinutes)
	}

	// 3. Если мастер указан явно - проверяем, что он оказывает услугу
	if req.StaffID != nil && !service.PerformedBy(*req.StaffID) {
		u.logger.Warn("[GetAvailableSlots] Мастер не оказывает услугу: staffID=%d, serviceID=%d", *req.StaffID, req.ServiceID)
		return Response{}, fmt.Errorf("%w: staff %d, service %d", ErrStaffNotQualified, *req.StaffID, req.ServiceID)
	}

	duration := time.Duration(service.DurationMinutes) * time.Minute
	now := u.timeProvider.Now().In(req.Date.Location())

	response := Response{
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		DurationMinutes: service.DurationMinutes,
		Slots:           make([]Slot, 0),
	}

	// 4. Правила доступности на день недели запрошенной даты
	rules, err := u.scheduleRepo.RulesFor(ctx, req.StaffID, req.Date.Weekday())
	if err != nil {
		u.logger.Error("[GetAvailableSlots] Ошибка получения правил доступности: %v", err)
		return Response{}, fmt.Errorf("%w: get availability rules: %v", ErrInternal, err)
	}

	// Без фильтра по мастеру отбрасываем правила мастеров, не оказывающих услугу
	if req.StaffID == nil {
		rules = filterQualified(rules, service)
	}

	if len(rules) == 0 {
		u.logger.Info("[GetAvailableSlots] Нет правил доступности: serviceID=%d, weekday=%d", req.ServiceID, req.Date.Weekday())
		return response, nil
	}

	// 5. Блокирующие бронирования за день одним запросом
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := u.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		From:    &dayStart,
		To:      &dayEnd,
		StaffID: req.StaffID,
	})
	if err != nil {
		u.logger.Error("[GetAvailableSlots] Ошибка получения бронирований: %v", err)
		return Response{}, fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
	}

	bookingsByStaff := groupByStaff(bookings)

	// 6. Генерируем слоты по каждому правилу
	for _, rule := range rules {
		timeOff, err := u.scheduleRepo.TimeOffFor(ctx, rule.StaffID, req.Date)
		if err != nil {
			u.logger.Error("[GetAvailableSlots] Ошибка получения time-off: staffID=%d: %v", rule.StaffID, err)
			return Response{}, fmt.Errorf("%w: get time off: %v", ErrInternal, err)
		}

		slots, err := buildSlotsForRule(rule, req.Date, duration, now, timeOff, bookingsByStaff[rule.StaffID])
		if err != nil {
			u.logger.Error("[GetAvailableSlots] Ошибка генерации слотов: ruleID=%d: %v", rule.ID, err)
			return Response{}, err
		}

		response.Slots = append(response.Slots, slots...)
	}

	// 7. Стабильный порядок: по времени начала, затем по мастеру
	sort.Slice(response.Slots, func(i, j int) bool {
		if !response.Slots[i].StartAt.Equal(response.Slots[j].StartAt) {
			return response.Slots[i].StartAt.Before(response.Slots[j].StartAt)
		}
		return response.Slots[i].StaffID < response.Slots[j].StaffID
	})

	u.logger.Info("[GetAvailableSlots] Найдено слотов: %d (serviceID=%d, date=%s)", len(response.Slots), req.ServiceID, req.Date.Format(domain.DateFormat))
	return response, nil
}

// filterQualified оставляет правила мастеров, оказывающих услугу
func filterQualified(rules []*domain.AvailabilityRule, service *catalogservice.Service) []*domain.AvailabilityRule {
	qualified := make([]*domain.AvailabilityRule, 0, len(rules))
	for _, rule := range rules {
		if service.PerformedBy(rule.StaffID) {
			qualified = append(qualified, rule)
		}
	}
	return qualified
}

// groupByStaff группирует бронирования по мастеру
// Бронирования без мастера не блокируют слоты конкретных мастеров
func groupByStaff(bookings []*domain.Booking) map[int64][]*domain.Booking {
	grouped := make(map[int64][]*domain.Booking)
	for _, b := range bookings {
		if b.StaffID == nil {
			continue
		}
		grouped[*b.StaffID] = append(grouped[*b.StaffID], b)
	}
	return grouped
}
