package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("get_available_slots: service is inactive")

	// ErrStaffNotQualified возвращается, когда мастер не оказывает услугу
	ErrStaffNotQualified = errors.New("get_available_slots: staff does not perform this service")

	// ErrInvalidRuleFormat возвращается при некорректном формате времени в правиле доступности
	ErrInvalidRuleFormat = errors.New("get_available_slots: invalid availability rule format")

	// ErrInternal возвращается при внутренних ошибках (БД, каталог)
	ErrInternal = errors.New("get_available_slots: internal error")
)
