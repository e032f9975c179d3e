package create_reservation

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда хотя бы один выбранный слот занят или заблокирован
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrPaymentMethodNotFound возвращается, когда способ оплаты не найден или неактивен
	ErrPaymentMethodNotFound = errors.New("create_reservation: payment method not found")

	// ErrCreditNotRedeemable возвращается, когда кредит не существует, чужой или уже использован
	ErrCreditNotRedeemable = errors.New("create_reservation: credit is not redeemable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
