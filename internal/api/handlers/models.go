package handlers

import (
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
)

// BookingResponse общая HTTP модель бронирования
type BookingResponse struct {
	ID              int64      `json:"id"`
	CustomerID      int64      `json:"customerId"`
	ServiceID       int64      `json:"serviceId"`
	StaffID         *int64     `json:"staffId,omitempty"`
	StartAt         time.Time  `json:"startAt"`
	EndAt           time.Time  `json:"endAt"`
	Status          string     `json:"status"`
	ServiceName     string     `json:"serviceName"`
	Price           float64    `json:"price"`
	DurationMinutes int        `json:"durationMinutes"`
	Notes           *string    `json:"notes,omitempty"`
	CancelReason    *string    `json:"cancelReason,omitempty"`
	CancelledBy     *string    `json:"cancelledBy,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	NoShowMarkedAt  *time.Time `json:"noShowMarkedAt,omitempty"`
	RescheduledFrom *time.Time `json:"rescheduledFrom,omitempty"`
	RescheduleCount int        `json:"rescheduleCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BookingFromDomain конвертирует доменную модель в HTTP ответ
func BookingFromDomain(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		ServiceID:       b.ServiceID,
		StaffID:         b.StaffID,
		StartAt:         b.StartAt,
		EndAt:           b.EndAt,
		Status:          string(b.Status),
		ServiceName:     b.ServiceNameSnapshot,
		Price:           b.PriceSnapshot,
		DurationMinutes: b.DurationMinutesSnapshot,
		Notes:           b.Notes,
		CancelReason:    b.CancelReason,
		CancelledBy:     b.CancelledBy,
		CancelledAt:     b.CancelledAt,
		NoShowMarkedAt:  b.NoShowMarkedAt,
		RescheduledFrom: b.RescheduledFrom,
		RescheduleCount: b.RescheduleCount,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// BookingsFromDomain конвертирует список доменных моделей
func BookingsFromDomain(list []*domain.Booking) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(list))
	for _, b := range list {
		result = append(result, BookingFromDomain(b))
	}
	return result
}
