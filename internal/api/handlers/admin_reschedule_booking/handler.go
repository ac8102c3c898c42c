package admin_reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers"
	rescheduleBooking "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartAt     = "некорректный формат startAt, ожидается RFC3339"
	msgNotFound           = "бронирование не найдено"
	msgStaffNotFound      = "мастер не найден"
	msgStaffNotQualified  = "мастер не оказывает эту услугу"
	msgInvalidState       = "бронирование нельзя перенести в текущем статусе"
	msgSlotUnavailable    = "целевой слот недоступен"
	msgSlotTaken          = "целевой слот уже занят"
	msgInvalidRule        = "некорректное правило доступности"
)

type Handler struct {
	useCase  RescheduleBookingUseCase
	location *time.Location
	logger   Logger
}

// NewHandler создает handler переноса бронирования.
// location - референсная таймзона салона, startAt нормализуется в нее
func NewHandler(useCase RescheduleBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, h.location)
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrStaffNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Staff not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, rescheduleBooking.ErrStaffNotQualified):
			h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Staff not qualified: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgStaffNotQualified)

		case errors.Is(err, rescheduleBooking.ErrInvalidState):
			h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Invalid state: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidState, msgInvalidState)

		case errors.Is(err, rescheduleBooking.ErrSlotUnavailable):
			h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Slot unavailable: booking_id=%d, start_at=%s", bookingID, req.StartAt)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidSlot, msgSlotUnavailable)

		case errors.Is(err, rescheduleBooking.ErrSlotTaken):
			h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Slot taken: booking_id=%d, start_at=%s", bookingID, req.StartAt)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeDoubleBook, msgSlotTaken)

		case errors.Is(err, rescheduleBooking.ErrInvalidRuleFormat):
			h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Invalid availability rule: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidRule, msgInvalidRule)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/reschedule - Booking rescheduled: booking_id=%d, reschedule_count=%d",
		bookingID, result.Booking.RescheduleCount)
	handlers.RespondJSON(w, http.StatusOK, handlers.BookingFromDomain(result.Booking))
}
