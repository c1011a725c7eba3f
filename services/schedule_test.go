package services

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateInstallmentsSumInvariant(t *testing.T) {
	cases := []struct {
		name        string
		totalAmount int64
		count       int
	}{
		{"делится нацело", 300000, 12},
		{"с остатком", 1000, 3},
		{"большой остаток", 100, 7},
		{"один платеж", 500, 1},
		{"минимальные суммы", 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			installments := GenerateInstallments(tc.totalAmount, tc.count, date(2024, time.January, 1), nil)

			if len(installments) != tc.count {
				t.Fatalf("ожидалось %d платежей, получено %d", tc.count, len(installments))
			}

			var sum int64
			for _, inst := range installments {
				sum += inst.Amount
			}
			if sum != tc.totalAmount {
				t.Errorf("сумма графика %d не равна сумме долга %d", sum, tc.totalAmount)
			}
		})
	}
}

func TestGenerateInstallmentsRemainderPlacement(t *testing.T) {
	installments := GenerateInstallments(1000, 3, date(2024, time.January, 1), nil)

	expected := []int64{333, 333, 334}
	for i, want := range expected {
		if installments[i].Amount != want {
			t.Errorf("платеж %d: ожидалась сумма %d, получено %d", i+1, want, installments[i].Amount)
		}
	}
}

func TestGenerateInstallmentsSingle(t *testing.T) {
	installments := GenerateInstallments(500, 1, date(2024, time.June, 15), nil)

	if len(installments) != 1 {
		t.Fatalf("ожидался один платеж, получено %d", len(installments))
	}
	if installments[0].Amount != 500 {
		t.Errorf("ожидалась сумма 500, получено %d", installments[0].Amount)
	}
	if !installments[0].DueDate.Equal(date(2024, time.June, 15)) {
		t.Errorf("дата платежа должна совпадать с датой начала, получено %v", installments[0].DueDate)
	}
}

func TestGenerateInstallmentsNumbering(t *testing.T) {
	installments := GenerateInstallments(1200, 6, date(2024, time.January, 1), nil)

	seen := make(map[int]bool)
	for _, inst := range installments {
		if inst.InstallmentNumber < 1 || inst.InstallmentNumber > 6 {
			t.Errorf("номер платежа %d вне диапазона 1..6", inst.InstallmentNumber)
		}
		if seen[inst.InstallmentNumber] {
			t.Errorf("номер платежа %d повторяется", inst.InstallmentNumber)
		}
		seen[inst.InstallmentNumber] = true
	}
	if len(seen) != 6 {
		t.Errorf("ожидалось 6 уникальных номеров, получено %d", len(seen))
	}
}

func TestGenerateInstallmentsDueDates(t *testing.T) {
	installments := GenerateInstallments(300000, 12, date(2024, time.January, 1), nil)

	for i, inst := range installments {
		want := date(2024, time.Month(i+1), 1)
		if !inst.DueDate.Equal(want) {
			t.Errorf("платеж %d: ожидалась дата %v, получено %v", i+1, want, inst.DueDate)
		}
	}
}

func TestGenerateInstallmentsMonthEndRollover(t *testing.T) {
	// 31 января не существует в феврале, AddDate нормализует дату
	installments := GenerateInstallments(3000, 3, date(2024, time.January, 31), nil)

	expected := []time.Time{
		date(2024, time.January, 31),
		date(2024, time.March, 2), // 31 февраля не бывает
		date(2024, time.March, 31),
	}
	for i, want := range expected {
		if !installments[i].DueDate.Equal(want) {
			t.Errorf("платеж %d: ожидалась дата %v, получено %v", i+1, want, installments[i].DueDate)
		}
	}
}

func TestGenerateInstallmentsExplicitMonthlyAmount(t *testing.T) {
	monthly := int64(400)
	installments := GenerateInstallments(1000, 3, date(2024, time.January, 1), &monthly)

	// Расхождение между monthlyAmount * count и totalAmount целиком
	// ложится на последний платеж
	expected := []int64{400, 400, 200}
	var sum int64
	for i, want := range expected {
		if installments[i].Amount != want {
			t.Errorf("платеж %d: ожидалась сумма %d, получено %d", i+1, want, installments[i].Amount)
		}
		sum += installments[i].Amount
	}
	if sum != 1000 {
		t.Errorf("сумма графика %d не равна сумме долга 1000", sum)
	}
}

// Сумма меньше количества платежей: базовый платеж получается нулевым,
// весь остаток уходит в последний платеж. График сохраняется как есть.
func TestGenerateInstallmentsTotalLessThanCount(t *testing.T) {
	installments := GenerateInstallments(5, 10, date(2024, time.January, 1), nil)

	var sum int64
	for i, inst := range installments {
		sum += inst.Amount
		if i < 9 && inst.Amount != 0 {
			t.Errorf("платеж %d = %d, ожидался 0", i+1, inst.Amount)
		}
	}
	if installments[9].Amount != 5 {
		t.Errorf("последний платеж = %d, ожидалось 5", installments[9].Amount)
	}
	if sum != 5 {
		t.Errorf("сумма графика = %d, ожидалось 5", sum)
	}
}

func TestGenerateInstallmentsMonthlyAmountExact(t *testing.T) {
	monthly := int64(2500)
	installments := GenerateInstallments(monthly*4, 4, date(2024, time.March, 10), &monthly)

	for i, inst := range installments {
		if inst.Amount != 2500 {
			t.Errorf("платеж %d: ожидалась сумма 2500, получено %d", i+1, inst.Amount)
		}
	}
}
