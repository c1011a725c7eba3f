package services

import (
	"familyPaymentTracker/models"
	"familyPaymentTracker/utils"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Чистые функции агрегации по платежам. Их используют и DebtService, и
// InstallmentService, и DashboardService, поэтому они вынесены отдельно
// и не обращаются к базе данных.

// DebtSummary представляет сводку по одному долгу
type DebtSummary struct {
	PaidAmount      int64 `json:"paidAmount"`
	RemainingAmount int64 `json:"remainingAmount"`
	PaidCount       int   `json:"paidInstallmentsCount"`
	RemainingCount  int   `json:"remainingInstallmentsCount"`
}

// PaidAmount возвращает сумму оплаченных платежей
func PaidAmount(installments []models.Installment) int64 {
	var total int64
	for _, inst := range installments {
		if inst.Paid {
			total += inst.Amount
		}
	}
	return total
}

// UnpaidAmount возвращает сумму неоплаченных платежей
func UnpaidAmount(installments []models.Installment) int64 {
	var total int64
	for _, inst := range installments {
		if !inst.Paid {
			total += inst.Amount
		}
	}
	return total
}

// CountPaid возвращает количество оплаченных платежей
func CountPaid(installments []models.Installment) int {
	count := 0
	for _, inst := range installments {
		if inst.Paid {
			count++
		}
	}
	return count
}

// AllPaid сообщает, оплачены ли все платежи. Для пустого списка true.
func AllPaid(installments []models.Installment) bool {
	for _, inst := range installments {
		if !inst.Paid {
			return false
		}
	}
	return true
}

// IsOverdue сообщает, просрочен ли платеж на указанную дату.
// Вычисляется при чтении и нигде не хранится.
func IsOverdue(inst models.Installment, asOf time.Time) bool {
	return !inst.Paid && inst.DueDate.Before(asOf)
}

// ProgressPercentage возвращает процент погашения, округленный до двух
// знаков по правилу half-up. При нулевой общей сумме возвращается 0.
func ProgressPercentage(paidAmount, totalAmount int64) float64 {
	if totalAmount <= 0 {
		return 0
	}

	pct := decimal.NewFromInt(paidAmount).
		Div(decimal.NewFromInt(totalAmount)).
		Mul(decimal.NewFromInt(100)).
		Round(2)

	result, _ := pct.Float64()
	return result
}

// Summarize строит сводку по долгу. Оставшаяся сумма не ограничивается
// снизу нулем: ручные корректировки платежей могут увести ее в минус.
func Summarize(debt *models.Debt, installments []models.Installment) DebtSummary {
	paidAmount := PaidAmount(installments)
	paidCount := CountPaid(installments)

	return DebtSummary{
		PaidAmount:      paidAmount,
		RemainingAmount: debt.TotalAmount - paidAmount,
		PaidCount:       paidCount,
		RemainingCount:  debt.InstallmentCount - paidCount,
	}
}

// refreshDebtStatusTx переводит долг из ACTIVE в PAID_OFF, если по нему не
// осталось неоплаченных платежей. Повторные вызовы без новых оплат ничего
// не меняют; обратного перехода нет. Возвращает true, если статус сменился.
func refreshDebtStatusTx(tx *gorm.DB, debt *models.Debt) (bool, error) {
	if debt.Status != models.DebtStatusActive {
		return false, nil
	}

	var unpaidCount int64
	if err := tx.Model(&models.Installment{}).
		Where("debt_id = ? AND paid = ?", debt.ID, false).
		Count(&unpaidCount).Error; err != nil {
		return false, err
	}

	if unpaidCount > 0 {
		return false, nil
	}

	debt.Status = models.DebtStatusPaidOff
	if err := tx.Model(debt).Update("status", models.DebtStatusPaidOff).Error; err != nil {
		return false, err
	}

	utils.GetMetrics().RecordDebtPaidOff()
	return true, nil
}

// dateOnly обрезает время до начала дня
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
