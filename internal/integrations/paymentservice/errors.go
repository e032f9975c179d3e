package paymentservice

import "errors"

var (
	// ErrPaymentMethodNotFound возвращается, когда способ оплаты не найден или неактивен
	ErrPaymentMethodNotFound = errors.New("payment method not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation:
	// PaymentService недоступен, бронирование продолжается без проверки
	ErrServiceDegraded = errors.New("paymentservice unavailable: graceful degradation applied")
)
