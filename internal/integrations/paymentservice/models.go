package paymentservice

// PaymentMethod модель способа оплаты из PaymentService
type PaymentMethod struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Type     string `json:"type"` // card, wallet, bank_transfer
	Label    string `json:"label"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от PaymentService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
