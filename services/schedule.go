package services

import (
	"familyPaymentTracker/models"
	"time"
)

// GenerateInstallments генерирует график платежей по долгу.
// Если monthlyAmount задан, он используется как размер каждого платежа,
// иначе сумма долга делится нацело на количество платежей. Остаток от
// деления целиком добавляется к последнему платежу, поэтому сумма графика
// всегда равна totalAmount.
func GenerateInstallments(totalAmount int64, count int, startDate time.Time, monthlyAmount *int64) []models.Installment {
	perInstallment := totalAmount / int64(count)
	if monthlyAmount != nil {
		perInstallment = *monthlyAmount
	}

	// Остаток, который получит последний платеж
	remainder := totalAmount - perInstallment*int64(count)

	installments := make([]models.Installment, count)

	for i := 1; i <= count; i++ {
		amount := perInstallment
		if i == count {
			amount += remainder
		}

		installments[i-1] = models.Installment{
			InstallmentNumber: i,
			Amount:            amount,
			// Платеж i наступает через i-1 календарных месяцев после старта
			DueDate: startDate.AddDate(0, i-1, 0),
			Paid:    false,
		}
	}

	return installments
}
