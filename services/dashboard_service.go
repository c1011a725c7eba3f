package services

import (
	"familyPaymentTracker/models"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// DashboardSummaryDTO представляет ответ со сводной статистикой платежей
type DashboardSummaryDTO struct {
	Summary           SummaryInfo           `json:"summary"`
	MonthlyBreakdown  []MonthlyBreakdownDTO `json:"monthlyBreakdown"`
	DebtBreakdown     []DebtBreakdownDTO    `json:"debtBreakdown"`
	VisualizationData VisualizationDataDTO  `json:"visualizationData"`
}

// SummaryInfo представляет общую статистику по активным долгам
type SummaryInfo struct {
	TotalPaid           int64   `json:"totalPaid"`
	TotalOutstanding    int64   `json:"totalOutstanding"`
	TotalAmount         int64   `json:"totalAmount"`
	ProgressPercentage  float64 `json:"progressPercentage"`
	ActiveDebtsCount    int     `json:"activeDebtsCount"`
	CompletedDebtsCount int     `json:"completedDebtsCount"`
}

// MonthlyBreakdownDTO представляет разбивку платежей за один месяц
type MonthlyBreakdownDTO struct {
	Month        string                 `json:"month"`      // Формат YYYY-MM
	MonthLabel   string                 `json:"monthLabel"` // Например "January 2024"
	TotalDue     int64                  `json:"totalDue"`
	TotalPaid    int64                  `json:"totalPaid"`
	Remaining    int64                  `json:"remaining"`
	IsComplete   bool                   `json:"isComplete"`
	Installments []InstallmentDetailDTO `json:"installments"`
}

// InstallmentDetailDTO представляет платеж внутри месячной разбивки
type InstallmentDetailDTO struct {
	InstallmentID uint    `json:"installmentId"`
	DebtTitle     string  `json:"debtTitle"`
	Amount        int64   `json:"amount"`
	DueDate       string  `json:"dueDate"`
	Paid          bool    `json:"paid"`
	PaidAt        *string `json:"paidAt"`
	IsOverdue     bool    `json:"isOverdue"`
}

// DebtBreakdownDTO представляет прогресс погашения одного долга
type DebtBreakdownDTO struct {
	DebtID             uint    `json:"debtId"`
	Title              string  `json:"title"`
	TotalAmount        int64   `json:"totalAmount"`
	PaidAmount         int64   `json:"paidAmount"`
	RemainingAmount    int64   `json:"remainingAmount"`
	ProgressPercentage float64 `json:"progressPercentage"`
	Status             string  `json:"status"`
}

// VisualizationDataDTO представляет готовые данные для графиков
type VisualizationDataDTO struct {
	ChartData       ChartDataDTO       `json:"chartData"`
	ProgressBarData ProgressBarDataDTO `json:"progressBarData"`
}

// ChartDataDTO представляет данные круговой диаграммы
type ChartDataDTO struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
	Colors []string `json:"colors"`
}

// ProgressBarDataDTO представляет данные индикатора прогресса
type ProgressBarDataDTO struct {
	Current    int64   `json:"current"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

// DashboardService строит сводную статистику по долгам. Все агрегаты
// вычисляются заново при каждом запросе, ничего не кэшируется.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService создает новый экземпляр DashboardService
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// CalculateSummary строит полную сводку. Если переданы год и месяц,
// месячная разбивка строится только для них, иначе для текущего и
// следующего месяцев.
func (s *DashboardService) CalculateSummary(year, month *int) (*DashboardSummaryDTO, error) {
	if month != nil && (*month < 1 || *month > 12) {
		return nil, fmt.Errorf("%w: месяц должен быть в диапазоне 1-12", ErrValidation)
	}

	debts, err := s.loadDebtsWithInstallments()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summary := buildSummaryInfo(debts)

	var monthly []MonthlyBreakdownDTO
	if year != nil && month != nil {
		monthly = []MonthlyBreakdownDTO{buildMonthlyBreakdown(debts, *year, *month, now)}
	} else {
		next := now.AddDate(0, 1, 0)
		monthly = []MonthlyBreakdownDTO{
			buildMonthlyBreakdown(debts, now.Year(), int(now.Month()), now),
			buildMonthlyBreakdown(debts, next.Year(), int(next.Month()), now),
		}
	}

	return &DashboardSummaryDTO{
		Summary:           summary,
		MonthlyBreakdown:  monthly,
		DebtBreakdown:     buildDebtBreakdowns(debts),
		VisualizationData: buildVisualizationData(summary),
	}, nil
}

// CalculateMonthlyBreakdown строит разбивку платежей за указанный месяц
func (s *DashboardService) CalculateMonthlyBreakdown(year, month int) (*MonthlyBreakdownDTO, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: месяц должен быть в диапазоне 1-12", ErrValidation)
	}

	debts, err := s.loadDebtsWithInstallments()
	if err != nil {
		return nil, err
	}

	breakdown := buildMonthlyBreakdown(debts, year, month, time.Now())
	return &breakdown, nil
}

// loadDebtsWithInstallments загружает все долги вместе с платежами
func (s *DashboardService) loadDebtsWithInstallments() ([]models.Debt, error) {
	var debts []models.Debt
	if err := s.db.Preload("Installments", func(db *gorm.DB) *gorm.DB {
		return db.Order("debt_installments.installment_number ASC")
	}).Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

// buildSummaryInfo вычисляет общую статистику. Суммы считаются только по
// активным долгам, счетчики долгов глобальные.
func buildSummaryInfo(debts []models.Debt) SummaryInfo {
	var totalPaid, totalOutstanding int64
	activeCount, completedCount := 0, 0

	for _, debt := range debts {
		switch debt.Status {
		case models.DebtStatusActive:
			activeCount++
			totalPaid += PaidAmount(debt.Installments)
			totalOutstanding += UnpaidAmount(debt.Installments)
		case models.DebtStatusPaidOff:
			completedCount++
		}
	}

	totalAmount := totalPaid + totalOutstanding

	return SummaryInfo{
		TotalPaid:           totalPaid,
		TotalOutstanding:    totalOutstanding,
		TotalAmount:         totalAmount,
		ProgressPercentage:  ProgressPercentage(totalPaid, totalAmount),
		ActiveDebtsCount:    activeCount,
		CompletedDebtsCount: completedCount,
	}
}

// buildMonthlyBreakdown строит разбивку за месяц по платежам активных
// долгов, попадающим в интервал от первого до последнего дня месяца
func buildMonthlyBreakdown(debts []models.Debt, year, month int, now time.Time) MonthlyBreakdownDTO {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	today := dateOnly(now)

	var selected []models.Installment
	titles := make(map[uint]string)

	for _, debt := range debts {
		if debt.Status != models.DebtStatusActive {
			continue
		}
		titles[debt.ID] = debt.Title
		for _, inst := range debt.Installments {
			if !inst.DueDate.Before(monthStart) && inst.DueDate.Before(monthEnd) {
				selected = append(selected, inst)
			}
		}
	}

	// Сортируем по дате платежа
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].DueDate.Before(selected[j].DueDate)
	})

	var totalDue, totalPaid int64
	details := make([]InstallmentDetailDTO, len(selected))

	for i, inst := range selected {
		totalDue += inst.Amount
		if inst.Paid {
			totalPaid += inst.Amount
		}

		var paidAt *string
		if inst.PaidAt != nil {
			formatted := inst.PaidAt.Format("2006-01-02")
			paidAt = &formatted
		}

		details[i] = InstallmentDetailDTO{
			InstallmentID: inst.ID,
			DebtTitle:     titles[inst.DebtID],
			Amount:        inst.Amount,
			DueDate:       inst.DueDate.Format("2006-01-02"),
			Paid:          inst.Paid,
			PaidAt:        paidAt,
			IsOverdue:     IsOverdue(inst, today),
		}
	}

	return MonthlyBreakdownDTO{
		Month:        fmt.Sprintf("%04d-%02d", year, month),
		MonthLabel:   monthStart.Format("January 2006"),
		TotalDue:     totalDue,
		TotalPaid:    totalPaid,
		Remaining:    totalDue - totalPaid,
		IsComplete:   AllPaid(selected), // Для пустого месяца true
		Installments: details,
	}
}

// buildDebtBreakdowns строит прогресс по каждому активному долгу,
// результат отсортирован по названию
func buildDebtBreakdowns(debts []models.Debt) []DebtBreakdownDTO {
	result := make([]DebtBreakdownDTO, 0, len(debts))

	for _, debt := range debts {
		if debt.Status != models.DebtStatusActive {
			continue
		}

		paidAmount := PaidAmount(debt.Installments)
		result = append(result, DebtBreakdownDTO{
			DebtID:             debt.ID,
			Title:              debt.Title,
			TotalAmount:        debt.TotalAmount,
			PaidAmount:         paidAmount,
			RemainingAmount:    debt.TotalAmount - paidAmount,
			ProgressPercentage: ProgressPercentage(paidAmount, debt.TotalAmount),
			Status:             string(debt.Status),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Title < result[j].Title
	})

	return result
}

// buildVisualizationData формирует данные для диаграммы и прогресс-бара
func buildVisualizationData(summary SummaryInfo) VisualizationDataDTO {
	return VisualizationDataDTO{
		ChartData: ChartDataDTO{
			Labels: []string{"Paid", "Remaining"},
			Values: []int64{summary.TotalPaid, summary.TotalOutstanding},
			Colors: []string{"#10b981", "#ef4444"},
		},
		ProgressBarData: ProgressBarDataDTO{
			Current:    summary.TotalPaid,
			Total:      summary.TotalAmount,
			Percentage: summary.ProgressPercentage,
		},
	}
}
