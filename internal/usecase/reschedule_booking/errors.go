package reschedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrInvalidState возвращается при попытке переноса из терминального статуса
	ErrInvalidState = errors.New("reschedule_booking: booking cannot be rescheduled in its current status")

	// ErrStaffNotFound возвращается, когда новый мастер не найден или неактивен
	ErrStaffNotFound = errors.New("reschedule_booking: staff not found")

	// ErrStaffNotQualified возвращается, когда новый мастер не оказывает услугу
	ErrStaffNotQualified = errors.New("reschedule_booking: staff does not perform this service")

	// ErrSlotUnavailable возвращается, когда целевой слот не является
	// валидным кандидатом расписания
	ErrSlotUnavailable = errors.New("reschedule_booking: slot is not available")

	// ErrSlotTaken возвращается при конфликте с существующим бронированием
	ErrSlotTaken = errors.New("reschedule_booking: slot is already taken")

	// ErrInvalidRuleFormat возвращается при некорректном формате времени
	// в правиле доступности или time-off
	ErrInvalidRuleFormat = errors.New("reschedule_booking: invalid availability rule format")

	// ErrInternal возвращается при внутренних ошибках (БД, каталог)
	ErrInternal = errors.New("reschedule_booking: internal error")
)
