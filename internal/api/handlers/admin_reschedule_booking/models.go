package admin_reschedule_booking

import (
	"time"

	rescheduleBooking "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	StartAt string `json:"startAt"`           // RFC3339
	StaffID *int64 `json:"staffId,omitempty"` // nil = мастер остается прежним
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// startAt приводится к таймзоне салона: клиент может прислать время
// в любом смещении, расписание трактуется в референсной таймзоне
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID int64, location *time.Location) (rescheduleBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return rescheduleBooking.Request{}, err
	}

	return rescheduleBooking.Request{
		BookingID: bookingID,
		StartAt:   startAt.In(location),
		StaffID:   r.StaffID,
	}, nil
}
