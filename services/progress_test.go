package services

import (
	"testing"
	"time"

	"familyPaymentTracker/models"
)

func TestPaidAndUnpaidAmount(t *testing.T) {
	installments := []models.Installment{
		{Amount: 100, Paid: true},
		{Amount: 200, Paid: false},
		{Amount: 300, Paid: true},
	}

	if got := PaidAmount(installments); got != 400 {
		t.Errorf("сумма оплаченных = %d, ожидалось 400", got)
	}
	if got := UnpaidAmount(installments); got != 200 {
		t.Errorf("сумма неоплаченных = %d, ожидалось 200", got)
	}
}

func TestCountPaid(t *testing.T) {
	installments := []models.Installment{
		{Paid: true},
		{Paid: false},
		{Paid: true},
		{Paid: false},
	}

	if got := CountPaid(installments); got != 2 {
		t.Errorf("количество оплаченных = %d, ожидалось 2", got)
	}
}

func TestAllPaid(t *testing.T) {
	cases := []struct {
		name         string
		installments []models.Installment
		expected     bool
	}{
		{"пустой список", nil, true},
		{"все оплачены", []models.Installment{{Paid: true}, {Paid: true}}, true},
		{"есть неоплаченный", []models.Installment{{Paid: true}, {Paid: false}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AllPaid(tc.installments); got != tc.expected {
				t.Errorf("AllPaid = %v, ожидалось %v", got, tc.expected)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	asOf := date(2024, time.June, 15)

	cases := []struct {
		name     string
		inst     models.Installment
		expected bool
	}{
		{"не оплачен, срок прошел", models.Installment{Paid: false, DueDate: date(2024, time.June, 14)}, true},
		{"не оплачен, срок сегодня", models.Installment{Paid: false, DueDate: date(2024, time.June, 15)}, false},
		{"не оплачен, срок впереди", models.Installment{Paid: false, DueDate: date(2024, time.June, 16)}, false},
		{"оплачен, срок прошел", models.Installment{Paid: true, DueDate: date(2024, time.June, 1)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOverdue(tc.inst, asOf); got != tc.expected {
				t.Errorf("IsOverdue = %v, ожидалось %v", got, tc.expected)
			}
		})
	}
}

// Платеж со сроком сегодня не должен ни попадать в выборку просроченных
// (due_date < обрезанная дата), ни помечаться флагом isOverdue. Обе проверки
// считаются от начала дня.
func TestOverdueBoundaryAfterTruncation(t *testing.T) {
	asOf := time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)
	today := dateOnly(asOf)

	dueToday := models.Installment{Paid: false, DueDate: date(2024, time.June, 15)}
	dueYesterday := models.Installment{Paid: false, DueDate: date(2024, time.June, 14)}

	if dueToday.DueDate.Before(today) {
		t.Error("платеж со сроком сегодня не должен проходить условие выборки")
	}
	if IsOverdue(dueToday, today) {
		t.Error("платеж со сроком сегодня не должен быть просрочен")
	}

	if !dueYesterday.DueDate.Before(today) {
		t.Error("вчерашний платеж должен проходить условие выборки")
	}
	if !IsOverdue(dueYesterday, today) {
		t.Error("вчерашний платеж должен быть просрочен")
	}
}

func TestDateOnly(t *testing.T) {
	got := dateOnly(time.Date(2024, time.June, 15, 23, 59, 59, 0, time.UTC))
	if !got.Equal(date(2024, time.June, 15)) {
		t.Errorf("dateOnly = %v, ожидалось начало дня 2024-06-15", got)
	}
}

func TestProgressPercentage(t *testing.T) {
	cases := []struct {
		name     string
		paid     int64
		total    int64
		expected float64
	}{
		{"треть", 1, 3, 33.33},
		{"половина", 50000, 100000, 50},
		{"полностью", 300000, 300000, 100},
		{"ничего не оплачено", 0, 300000, 0},
		{"округление вверх на границе", 10005, 100000, 10.01},
		{"нулевая общая сумма", 0, 0, 0},
		{"отрицательная общая сумма", 100, -1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProgressPercentage(tc.paid, tc.total); got != tc.expected {
				t.Errorf("процент = %v, ожидалось %v", got, tc.expected)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	debt := &models.Debt{TotalAmount: 1000, InstallmentCount: 4}
	installments := []models.Installment{
		{Amount: 250, Paid: true},
		{Amount: 250, Paid: true},
		{Amount: 250, Paid: false},
		{Amount: 250, Paid: false},
	}

	summary := Summarize(debt, installments)
	if summary.PaidAmount != 500 {
		t.Errorf("оплачено = %d, ожидалось 500", summary.PaidAmount)
	}
	if summary.RemainingAmount != 500 {
		t.Errorf("остаток = %d, ожидалось 500", summary.RemainingAmount)
	}
	if summary.PaidCount != 2 || summary.RemainingCount != 2 {
		t.Errorf("счетчики = %d/%d, ожидалось 2/2", summary.PaidCount, summary.RemainingCount)
	}
}

// После ручной корректировки сумм остаток может стать отрицательным,
// сводка не обрезает его до нуля.
func TestSummarizeNegativeRemaining(t *testing.T) {
	debt := &models.Debt{TotalAmount: 1000, InstallmentCount: 2}
	installments := []models.Installment{
		{Amount: 800, Paid: true},
		{Amount: 800, Paid: true},
	}

	summary := Summarize(debt, installments)
	if summary.RemainingAmount != -600 {
		t.Errorf("остаток = %d, ожидалось -600", summary.RemainingAmount)
	}
}

// Сквозной сценарий: долг 300000 на 12 месяцев, оплачен первый платеж.
func TestSummarizeAfterFirstPayment(t *testing.T) {
	debt := &models.Debt{
		Title:            "Автокредит",
		TotalAmount:      300000,
		InstallmentCount: 12,
	}

	installments := GenerateInstallments(debt.TotalAmount, debt.InstallmentCount, date(2024, time.January, 1), nil)
	installments[0].Paid = true

	summary := Summarize(debt, installments)
	if summary.PaidAmount != 25000 {
		t.Errorf("оплачено = %d, ожидалось 25000", summary.PaidAmount)
	}
	if summary.RemainingAmount != 275000 {
		t.Errorf("остаток = %d, ожидалось 275000", summary.RemainingAmount)
	}
	if summary.PaidCount != 1 || summary.RemainingCount != 11 {
		t.Errorf("счетчики = %d/%d, ожидалось 1/11", summary.PaidCount, summary.RemainingCount)
	}
	if got := ProgressPercentage(summary.PaidAmount, debt.TotalAmount); got != 8.33 {
		t.Errorf("процент = %v, ожидалось 8.33", got)
	}
}
