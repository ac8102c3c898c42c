package admin_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/service/bookings"
)

const (
	msgMissingWindow    = "отсутствуют параметры from и to"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidWindow    = "параметр from должен быть не позже to"
	msgInvalidStaffID   = "некорректный параметр staffId"
	msgInvalidServiceID = "некорректный параметр serviceId"
	msgInvalidStatus    = "некорректный параметр status"
)

var knownStatuses = map[domain.BookingStatus]bool{
	domain.StatusPending:   true,
	domain.StatusConfirmed: true,
	domain.StatusCancelled: true,
	domain.StatusCompleted: true,
	domain.StatusNoShow:    true,
}

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

// NewHandler создает handler календарной проекции
// location - референсная таймзона салона
func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/calendar?from=&to=&staffId=&serviceId=&status=
// Дата to включается в окно целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rawFrom, rawTo := query.Get("from"), query.Get("to")
	if rawFrom == "" || rawTo == "" {
		handlers.RespondBadRequest(w, msgMissingWindow)
		return
	}

	from, err := time.ParseInLocation(domain.DateFormat, rawFrom, h.location)
	if err != nil {
		h.logger.Warn("GET /admin/calendar - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := time.ParseInLocation(domain.DateFormat, rawTo, h.location)
	if err != nil {
		h.logger.Warn("GET /admin/calendar - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if to.Before(from) {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	req := bookings.CalendarRequest{
		From: from,
		To:   to.AddDate(0, 0, 1),
	}

	if rawStaffID := query.Get("staffId"); rawStaffID != "" {
		id, err := strconv.ParseInt(rawStaffID, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &id
	}

	if rawServiceID := query.Get("serviceId"); rawServiceID != "" {
		id, err := strconv.ParseInt(rawServiceID, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &id
	}

	if rawStatus := query.Get("status"); rawStatus != "" {
		s := domain.BookingStatus(rawStatus)
		if !knownStatuses[s] {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		req.Status = &s
		// Явный фильтр статуса показывает и неактивные бронирования
		req.IncludeInactive = true
	}

	result, err := h.service.Calendar(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /admin/calendar - Failed to get calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/calendar - Calendar retrieved: from=%s, to=%s, total=%d", rawFrom, rawTo, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
