package paymentservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс логирования, необходимый клиенту
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Client клиент для работы с PaymentService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PaymentService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NewPaymentRef генерирует уникальную ссылку на платеж
func NewPaymentRef() string {
	return uuid.NewString()
}

// InitiatePayment инициирует платеж за бронирование
func (c *Client) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*Payment, error) {
	url := fmt.Sprintf("%s/internal/payments", c.baseURL)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid payment request", ErrInvalidResponse)
	case http.StatusUnprocessableEntity:
		return nil, ErrPaymentRejected
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	// Парсим ответ
	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &payment, nil
}

// InitiatePaymentWithGracefulDegradation инициирует платеж с graceful degradation
// При недоступности PaymentService возвращает ErrServiceDegraded: бронирование
// уже создано и остается в статусе ожидания оплаты, счет будет выставлен позже
func (c *Client) InitiatePaymentWithGracefulDegradation(ctx context.Context, req InitiatePaymentRequest) (*Payment, error) {
	c.log.Info("Initiating payment for booking_id=%d, amount=%d", req.BookingID, req.Amount)

	payment, err := c.InitiatePayment(ctx, req)
	if err != nil {
		// Бизнес-отказ платежного сервиса пробрасываем дальше
		if errors.Is(err, ErrPaymentRejected) {
			c.log.Info("Payment rejected for booking_id=%d", req.BookingID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("PaymentService unavailable, applying graceful degradation for booking_id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, req.BookingID, err)
	}

	c.log.Info("Payment initiated for booking_id=%d, payment_ref=%s", req.BookingID, payment.PaymentRef)
	return payment, nil
}
