package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/middleware"
	createBooking "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartAt     = "некорректный формат startAt, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна"
	msgStaffNotFound      = "мастер не найден"
	msgStaffNotQualified  = "мастер не оказывает эту услугу"
	msgSlotUnavailable    = "выбранный слот недоступен для бронирования"
	msgSlotTaken          = "выбранный слот уже занят"
	msgInvalidRule        = "некорректное правило доступности"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

// NewHandler создает handler создания бронирования.
// location - референсная таймзона салона, startAt нормализуется в нее
func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondError(w, http.StatusNotFound, handlers.CodeServiceUnavailable, msgServiceInactive)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrStaffNotQualified):
			h.logger.Warn("POST /bookings - Staff not qualified: customer_id=%d, service_id=%d", customerID, req.ServiceID)
			handlers.RespondBadRequest(w, msgStaffNotQualified)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: customer_id=%d, start_at=%s", customerID, req.StartAt)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidSlot, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: customer_id=%d, start_at=%s", customerID, req.StartAt)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeDoubleBook, msgSlotTaken)

		case errors.Is(err, createBooking.ErrInvalidRuleFormat):
			h.logger.Warn("POST /bookings - Invalid availability rule: customer_id=%d, error=%v", customerID, err)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidRule, msgInvalidRule)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, customer_id=%d", result.Booking.ID, customerID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.BookingFromDomain(result.Booking))
}
