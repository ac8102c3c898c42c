package create_booking

import (
	"time"

	createBooking "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID int64   `json:"serviceId"`
	StaffID   *int64  `json:"staffId,omitempty"`
	StartAt   string  `json:"startAt"` // RFC3339
	Notes     *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// startAt приводится к таймзоне салона: клиент может прислать время
// в любом смещении, расписание трактуется в референсной таймзоне
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64, location *time.Location) (createBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return createBooking.Request{}, err
	}

	return createBooking.Request{
		CustomerID: customerID,
		ServiceID:  r.ServiceID,
		StaffID:    r.StaffID,
		StartAt:    startAt.In(location),
		Notes:      r.Notes,
	}, nil
}
