package credit

import "errors"

var (
	// ErrCreditNotRedeemable возвращается, когда кредит не найден,
	// не принадлежит пользователю или уже использован
	ErrCreditNotRedeemable = errors.New("credit.repository: credit not redeemable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("credit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("credit.repository: failed to execute query")
)
