package services

import "errors"

// Ошибки уровня сервисов. Контроллеры сопоставляют их с HTTP-статусами
// через errors.Is, все остальные ошибки считаются внутренними.
var (
	ErrDebtNotFound        = errors.New("долг не найден")
	ErrInstallmentNotFound = errors.New("платеж не найден")
	ErrAlreadyPaid         = errors.New("платеж уже отмечен как оплаченный")
	ErrValidation          = errors.New("ошибка валидации")
)
