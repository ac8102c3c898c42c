package admin_calendar

import (
	"time"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/service/bookings"
)

// StaffAgendaResponse бронирования одного мастера в окне календаря
type StaffAgendaResponse struct {
	StaffID  *int64                      `json:"staffId"`
	Bookings []*handlers.BookingResponse `json:"bookings"`
}

// CalendarResponse HTTP модель календарной проекции
type CalendarResponse struct {
	From    time.Time             `json:"from"`
	To      time.Time             `json:"to"`
	Total   int                   `json:"total"`
	ByStaff []StaffAgendaResponse `json:"byStaff"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp bookings.CalendarResponse) *CalendarResponse {
	byStaff := make([]StaffAgendaResponse, 0, len(resp.ByStaff))
	for _, agenda := range resp.ByStaff {
		byStaff = append(byStaff, StaffAgendaResponse{
			StaffID:  agenda.StaffID,
			Bookings: handlers.BookingsFromDomain(agenda.Bookings),
		})
	}

	return &CalendarResponse{
		From:    resp.From,
		To:      resp.To,
		Total:   resp.Total,
		ByStaff: byStaff,
	}
}
