package catalogservice

// Service модель услуги из каталога
type Service struct {
	ID              int64   `json:"id"`
	CategoryID      int64   `json:"category_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	BasePrice       float64 `json:"base_price"`
	Active          bool    `json:"active"`
	StaffIDs        []int64 `json:"staff_ids"` // Мастера, выполняющие услугу
}

// PerformedBy возвращает true, если мастер выполняет услугу
func (s *Service) PerformedBy(staffID int64) bool {
	for _, id := range s.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}

// Staff модель мастера из каталога
type Staff struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Title      string  `json:"title,omitempty"`
	Active     bool    `json:"active"`
	ServiceIDs []int64 `json:"service_ids"`
}

// CanPerform возвращает true, если мастер выполняет указанную услугу
func (s *Staff) CanPerform(serviceID int64) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
