package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	getAvailableSlots "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID  = "отсутствует параметр serviceId"
	msgInvalidServiceID  = "некорректный параметр serviceId"
	msgMissingDate       = "отсутствует параметр date"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStaffID    = "некорректный параметр staffId"
	msgServiceNotFound   = "услуга не найдена"
	msgServiceInactive   = "услуга недоступна"
	msgStaffNotQualified = "мастер не оказывает эту услугу"
	msgInvalidRule       = "некорректное правило доступности"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

// NewHandler создает handler получения доступных слотов
// location - референсная таймзона салона, даты запроса трактуются в ней
func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability?serviceId=&date=&staffId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rawServiceID := query.Get("serviceId")
	if rawServiceID == "" {
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := strconv.ParseInt(rawServiceID, 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid serviceId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	rawDate := query.Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.ParseInLocation(domain.DateFormat, rawDate, h.location)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var staffID *int64
	if rawStaffID := query.Get("staffId"); rawStaffID != "" {
		id, err := strconv.ParseInt(rawStaffID, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid staffId: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	result, err := h.useCase.Execute(r.Context(), getAvailableSlots.Request{
		ServiceID: serviceID,
		StaffID:   staffID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			h.logger.Warn("GET /availability - Service inactive: service_id=%d", serviceID)
			handlers.RespondError(w, http.StatusNotFound, handlers.CodeServiceUnavailable, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrStaffNotQualified):
			h.logger.Warn("GET /availability - Staff not qualified: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgStaffNotQualified)

		case errors.Is(err, getAvailableSlots.ErrInvalidRuleFormat):
			h.logger.Error("GET /availability - Invalid rule format: service_id=%d, error=%v", serviceID, err)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidRule, msgInvalidRule)

		default:
			h.logger.Error("GET /availability - Failed to get slots: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Slots retrieved: service_id=%d, date=%s, slots=%d",
		serviceID, rawDate, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
