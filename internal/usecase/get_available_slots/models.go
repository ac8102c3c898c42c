package get_available_slots

import "time"

// Request запрос на получение доступных слотов
type Request struct {
	ServiceID int64
	StaffID   *int64
	Date      time.Time
}

// Slot доступный слот для бронирования
type Slot struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	StaffID int64     `json:"staff_id"`
}

// Response ответ со списком доступных слотов
type Response struct {
	ServiceID       int64     `json:"service_id"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Slots           []Slot    `json:"slots"`
}
