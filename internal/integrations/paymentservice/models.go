package paymentservice

// InitiatePaymentRequest запрос на инициацию платежа за бронирование
type InitiatePaymentRequest struct {
	PaymentRef string `json:"payment_ref"`
	BookingID  int64  `json:"booking_id"`
	UserID     int64  `json:"user_id"`
	Amount     int    `json:"amount"`
	Currency   string `json:"currency"`
}

// Payment модель платежа от PaymentService
type Payment struct {
	PaymentRef string `json:"payment_ref"`
	Status     string `json:"status"`
	PaymentURL string `json:"payment_url"`
}

// ErrorResponse модель ошибки от PaymentService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
