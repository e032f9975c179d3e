package paymentservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
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

// GetPaymentMethod получает способ оплаты пользователя
func (c *Client) GetPaymentMethod(ctx context.Context, userID, paymentMethodID int64) (*PaymentMethod, error) {
	url := fmt.Sprintf("%s/internal/users/%d/payment-methods/%d", c.baseURL, userID, paymentMethodID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid identifiers format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrPaymentMethodNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var method PaymentMethod
	if err := json.NewDecoder(resp.Body).Decode(&method); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &method, nil
}

// VerifyPaymentMethodWithGracefulDegradation проверяет способ оплаты с graceful degradation.
// Отсутствие способа оплаты — бизнес-ошибка и пробрасывается дальше; недоступность
// PaymentService не блокирует бронирование, возвращается ErrServiceDegraded.
func (c *Client) VerifyPaymentMethodWithGracefulDegradation(ctx context.Context, userID, paymentMethodID int64) error {
	c.log.Info("Verifying payment method id=%d for user_id=%d", paymentMethodID, userID)

	method, err := c.GetPaymentMethod(ctx, userID, paymentMethodID)
	if err != nil {
		if err == ErrPaymentMethodNotFound {
			c.log.Warn("Payment method id=%d not found for user_id=%d", paymentMethodID, userID)
			return err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation. Повышаем уровень логирования до ERROR,
		// чтобы быстрее заметить проблему.
		c.log.Error("PaymentService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	if !method.IsActive {
		c.log.Warn("Payment method id=%d for user_id=%d is inactive", paymentMethodID, userID)
		return ErrPaymentMethodNotFound
	}

	c.log.Info("Payment method id=%d verified for user_id=%d, type=%s", paymentMethodID, userID, method.Type)
	return nil
}
