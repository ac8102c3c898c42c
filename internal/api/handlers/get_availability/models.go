package get_availability

import (
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	getAvailableSlots "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	StaffID int64     `json:"staffId"`
}

// AvailabilityResponse HTTP модель ответа со слотами
type AvailabilityResponse struct {
	ServiceID       int64          `json:"serviceId"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp getAvailableSlots.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartAt: s.StartAt,
			EndAt:   s.EndAt,
			StaffID: s.StaffID,
		})
	}

	return &AvailabilityResponse{
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
