package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrServiceNotFound возвращается, когда услуга не принадлежит площадке
	ErrServiceNotFound = errors.New("service not found")

	// ErrSlotNotAvailable возвращается, когда выбранное время начала уже занято
	// или нарушает обязательный буфер между бронированиями
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrEndTimeNotAvailable возвращается, когда интервал до выбранного окончания
	// пересекает чужое бронирование
	ErrEndTimeNotAvailable = errors.New("end time is not available")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата за пределами окна бронирования
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrPaymentRejected возвращается, когда платежный сервис отклонил платеж
	ErrPaymentRejected = errors.New("payment rejected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
