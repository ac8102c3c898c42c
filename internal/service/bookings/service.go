package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	bookingstorage "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/infra/storage/booking"
)

// Service сервис чтения леджера и переходов статусной машины бронирований
//
// Статусная машина:
//
//	pending/confirmed -> cancelled (Cancel)
//	pending/confirmed -> no_show   (MarkNoShow)
//	pending/confirmed -> completed (Complete)
//
// Терминальные статусы (cancelled, completed, no_show) переходов не имеют
type Service struct {
	bookingRepo BookingRepository
	txManager   TxManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID возвращает бронирование по ID
// customerID != nil ограничивает выборку собственными бронированиями клиента
func (s *Service) GetByID(ctx context.Context, id int64, customerID *int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingstorage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrBookingNotFound, id)
		}
		s.logger.Error("[Bookings] Ошибка получения бронирования: bookingID=%d: %v", id, err)
		return nil, fmt.Errorf("%w: get booking: %v", ErrInternal, err)
	}

	if customerID != nil && booking.CustomerID != *customerID {
		s.logger.Warn("[Bookings] Попытка доступа к чужому бронированию: bookingID=%d, customerID=%d", id, *customerID)
		return nil, fmt.Errorf("%w: booking %d", ErrForbidden, id)
	}

	return booking, nil
}

// GetCustomerBookings возвращает бронирования клиента, опционально по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer id must be positive", ErrInvalidInput)
	}

	result, err := s.bookingRepo.GetByCustomerID(ctx, customerID, status)
	if err != nil {
		s.logger.Error("[Bookings] Ошибка получения бронирований клиента: customerID=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: get customer bookings: %v", ErrInternal, err)
	}

	return result, nil
}

// Calendar возвращает календарную проекцию леджера: бронирования,
// пересекающие окно [From, To), сгруппированные по мастерам
func (s *Service) Calendar(ctx context.Context, req CalendarRequest) (CalendarResponse, error) {
	if req.From.IsZero() || req.To.IsZero() {
		return CalendarResponse{}, fmt.Errorf("%w: calendar window is required", ErrInvalidInput)
	}
	if !req.From.Before(req.To) {
		return CalendarResponse{}, fmt.Errorf("%w: calendar window must be non-empty", ErrInvalidInput)
	}

	result, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		From:            &req.From,
		To:              &req.To,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		Status:          req.Status,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.logger.Error("[Bookings] Ошибка календарной выборки: %v", err)
		return CalendarResponse{}, fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
	}

	return CalendarResponse{
		From:     req.From,
		To:       req.To,
		Total:    len(result),
		ByStaff:  groupByStaff(result),
		Bookings: result,
	}, nil
}

// Cancel отменяет бронирование
// Разрешено только из pending и confirmed
func (s *Service) Cancel(ctx context.Context, req CancelRequest) (*domain.Booking, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	if req.CancelledBy != domain.CancelledByCustomer && req.CancelledBy != domain.CancelledByAdmin {
		return nil, fmt.Errorf("%w: unknown cancel actor %q", ErrInvalidInput, req.CancelledBy)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: cancel reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	booking, err := s.transition(ctx, req.BookingID,
		func(b *domain.Booking) bool { return b.CanBeCancelled() },
		func(txCtx context.Context, b *domain.Booking) error {
			if req.CustomerID != nil && b.CustomerID != *req.CustomerID {
				return fmt.Errorf("%w: booking %d", ErrForbidden, b.ID)
			}
			return s.bookingRepo.Cancel(txCtx, b.ID, req.CancelledBy, req.Reason)
		},
	)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.StatusCancelled
	booking.CancelledBy = &req.CancelledBy
	booking.CancelReason = req.Reason

	s.logger.Info("[Bookings] Бронирование отменено: bookingID=%d, by=%s", booking.ID, req.CancelledBy)
	return booking, nil
}

// MarkNoShow помечает бронирование как неявку клиента
// Разрешено только из pending и confirmed
func (s *Service) MarkNoShow(ctx context.Context, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.transition(ctx, id,
		func(b *domain.Booking) bool { return b.CanBeMarkedNoShow() },
		func(txCtx context.Context, b *domain.Booking) error {
			return s.bookingRepo.MarkNoShow(txCtx, b.ID)
		},
	)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.StatusNoShow

	s.logger.Info("[Bookings] Неявка клиента: bookingID=%d", booking.ID)
	return booking, nil
}

// Complete помечает визит состоявшимся
// Разрешено из любого нетерминального статуса
func (s *Service) Complete(ctx context.Context, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.transition(ctx, id,
		func(b *domain.Booking) bool { return b.CanBeCompleted() },
		func(txCtx context.Context, b *domain.Booking) error {
			return s.bookingRepo.UpdateStatus(txCtx, b.ID, domain.StatusCompleted)
		},
	)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.StatusCompleted

	s.logger.Info("[Bookings] Визит завершен: bookingID=%d", booking.ID)
	return booking, nil
}

// transition выполняет переход статусной машины: чтение с блокировкой
// строки, проверка допустимости, мутация - атомарно в транзакции
func (s *Service) transition(
	ctx context.Context,
	id int64,
	allowed func(*domain.Booking) bool,
	mutate func(context.Context, *domain.Booking) error,
) (*domain.Booking, error) {
	var booking *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		booking, err = s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingstorage.ErrBookingNotFound) {
				return fmt.Errorf("%w: booking %d", ErrBookingNotFound, id)
			}
			return fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}

		if !allowed(booking) {
			return fmt.Errorf("%w: booking %d is %s", ErrInvalidState, booking.ID, booking.Status)
		}

		return mutate(txCtx, booking)
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrInvalidState), errors.Is(err, ErrForbidden):
			s.logger.Warn("[Bookings] Переход отклонен: bookingID=%d: %v", id, err)
			return nil, err
		default:
			s.logger.Error("[Bookings] Ошибка перехода: bookingID=%d: %v", id, err)
			return nil, fmt.Errorf("%w: transition: %v", ErrInternal, err)
		}
	}

	return booking, nil
}

// groupByStaff группирует бронирования по мастерам, сохраняя порядок
// по start_at внутри группы. Группа nil (без мастера) идет первой
func groupByStaff(list []*domain.Booking) []StaffAgenda {
	unassigned := make([]*domain.Booking, 0)
	byStaff := make(map[int64][]*domain.Booking)

	for _, b := range list {
		if b.StaffID == nil {
			unassigned = append(unassigned, b)
			continue
		}
		byStaff[*b.StaffID] = append(byStaff[*b.StaffID], b)
	}

	staffIDs := make([]int64, 0, len(byStaff))
	for id := range byStaff {
		staffIDs = append(staffIDs, id)
	}
	sort.Slice(staffIDs, func(i, j int) bool { return staffIDs[i] < staffIDs[j] })

	agendas := make([]StaffAgenda, 0, len(byStaff)+1)
	if len(unassigned) > 0 {
		agendas = append(agendas, StaffAgenda{StaffID: nil, Bookings: unassigned})
	}
	for _, id := range staffIDs {
		staffID := id
		agendas = append(agendas, StaffAgenda{StaffID: &staffID, Bookings: byStaff[id]})
	}

	return agendas
}
