package services

import (
	"familyPaymentTracker/models"
	"fmt"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportService формирует XLSX-отчеты по долгам для офлайн-просмотра
type ReportService struct {
	db *gorm.DB
}

// NewReportService создает новый экземпляр ReportService
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

var debtHeaders = []string{"ID", "Название", "Сумма", "Платежей", "Дата начала", "Ставка", "Статус", "Оплачено", "Осталось"}

var installmentHeaders = []string{"ID", "Долг", "Номер", "Сумма", "Дата платежа", "Оплачен", "Дата оплаты"}

// BuildDebtReport строит книгу с двумя листами: долги и платежи
func (s *ReportService) BuildDebtReport() (*excelize.File, error) {
	var debts []models.Debt
	if err := s.db.Preload("Installments", func(db *gorm.DB) *gorm.DB {
		return db.Order("debt_installments.installment_number ASC")
	}).Find(&debts).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	const debtSheet = "Долги"
	const installmentSheet = "Платежи"

	f.SetSheetName("Sheet1", debtSheet)
	if _, err := f.NewSheet(installmentSheet); err != nil {
		f.Close()
		return nil, err
	}

	// Заголовки
	for col, header := range debtHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(debtSheet, cell, header); err != nil {
			f.Close()
			return nil, err
		}
	}
	for col, header := range installmentHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(installmentSheet, cell, header); err != nil {
			f.Close()
			return nil, err
		}
	}

	debtRow := 2
	installmentRow := 2

	for i := range debts {
		debt := &debts[i]
		summary := Summarize(debt, debt.Installments)

		rate := ""
		if debt.InterestRate != nil {
			rate = fmt.Sprintf("%.2f", *debt.InterestRate)
		}

		debtValues := []interface{}{
			debt.ID,
			debt.Title,
			debt.TotalAmount,
			debt.InstallmentCount,
			debt.StartDate.Format("2006-01-02"),
			rate,
			string(debt.Status),
			summary.PaidAmount,
			summary.RemainingAmount,
		}
		if err := setRow(f, debtSheet, debtRow, debtValues); err != nil {
			f.Close()
			return nil, err
		}
		debtRow++

		for _, inst := range debt.Installments {
			paidAt := ""
			if inst.PaidAt != nil {
				paidAt = inst.PaidAt.Format("2006-01-02")
			}

			instValues := []interface{}{
				inst.ID,
				debt.Title,
				inst.InstallmentNumber,
				inst.Amount,
				inst.DueDate.Format("2006-01-02"),
				inst.Paid,
				paidAt,
			}
			if err := setRow(f, installmentSheet, installmentRow, instValues); err != nil {
				f.Close()
				return nil, err
			}
			installmentRow++
		}
	}

	return f, nil
}

// setRow записывает значения в строку листа
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
