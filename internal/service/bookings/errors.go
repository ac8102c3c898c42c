package bookings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings.service: invalid input")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrInvalidState возвращается при недопустимом переходе статусной машины
	ErrInvalidState = errors.New("bookings.service: invalid status transition")

	// ErrForbidden возвращается при попытке доступа к чужому бронированию
	ErrForbidden = errors.New("bookings.service: access denied")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("bookings.service: internal error")
)
