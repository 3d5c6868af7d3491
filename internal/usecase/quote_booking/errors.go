package quote_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrServiceNotFound возвращается, когда услуга не принадлежит площадке
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidTimeRange возвращается, когда окончание не позже начала
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
