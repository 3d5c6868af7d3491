package paymentservice

import "errors"

var (
	// ErrPaymentRejected возвращается, когда платежный сервис отклонил инициацию платежа
	ErrPaymentRejected = errors.New("payment initiation rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что PaymentService недоступен: бронирование остается в статусе
	// ожидания оплаты и ссылка на платеж будет выдана позже
	ErrServiceDegraded = errors.New("paymentservice unavailable: graceful degradation applied")
)
