package get_my_bookings

import (
	"net/http"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/middleware"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidStatus = "некорректный параметр status"
)

// Допустимые значения фильтра статуса
var knownStatuses = map[domain.BookingStatus]bool{
	domain.StatusPending:   true,
	domain.StatusConfirmed: true,
	domain.StatusCancelled: true,
	domain.StatusCompleted: true,
	domain.StatusNoShow:    true,
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var status *domain.BookingStatus
	if rawStatus := r.URL.Query().Get("status"); rawStatus != "" {
		s := domain.BookingStatus(rawStatus)
		if !knownStatuses[s] {
			h.logger.Warn("GET /me/bookings - Invalid status: %s", rawStatus)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &s
	}

	result, err := h.service.GetCustomerBookings(r.Context(), userID, status)
	if err != nil {
		h.logger.Error("GET /me/bookings - Failed to get bookings: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /me/bookings - Bookings retrieved: user_id=%d, count=%d", userID, len(result))
	handlers.RespondJSON(w, http.StatusOK, handlers.BookingsFromDomain(result))
}
