package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("create_booking: service is inactive")

	// ErrStaffNotFound возвращается, когда мастер не найден или неактивен
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrStaffNotQualified возвращается, когда мастер не оказывает услугу
	ErrStaffNotQualified = errors.New("create_booking: staff does not perform this service")

	// ErrSlotUnavailable возвращается, когда запрошенный слот не является
	// валидным кандидатом: вне рабочего окна, мимо сетки, перерыв,
	// time-off или прошедшее время
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrSlotTaken возвращается при конфликте с существующим бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrInvalidRuleFormat возвращается при некорректном формате времени
	// в правиле доступности или time-off
	ErrInvalidRuleFormat = errors.New("create_booking: invalid availability rule format")

	// ErrInternal возвращается при внутренних ошибках (БД, каталог)
	ErrInternal = errors.New("create_booking: internal error")
)
