package services

import (
	"errors"
	"familyPaymentTracker/models"
	"familyPaymentTracker/utils"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// UpdateInstallmentRequest представляет данные для корректировки платежа.
// Оба поля необязательные, обновляются только переданные.
type UpdateInstallmentRequest struct {
	Amount  *int64  `json:"amount"`
	DueDate *string `json:"dueDate"` // Формат YYYY-MM-DD
}

// BulkUpdateItem представляет один элемент массовой корректировки
type BulkUpdateItem struct {
	InstallmentID uint    `json:"installmentId" validate:"required"`
	Amount        *int64  `json:"amount"`
	DueDate       *string `json:"dueDate"`
}

// BulkUpdateResult представляет результат обработки одного элемента.
// Элементы обрабатываются независимо: ошибка одного не откатывает остальные.
type BulkUpdateResult struct {
	InstallmentID uint                    `json:"installmentId"`
	Success       bool                    `json:"success"`
	Error         string                  `json:"error,omitempty"`
	Installment   *InstallmentResponseDTO `json:"installment,omitempty"`
}

// InstallmentResponseDTO представляет ответ с данными платежа
type InstallmentResponseDTO struct {
	ID                uint    `json:"id"`
	DebtID            uint    `json:"debtId"`
	DebtTitle         string  `json:"debtTitle"`
	InstallmentNumber int     `json:"installmentNumber"`
	Amount            int64   `json:"amount"`
	DueDate           string  `json:"dueDate"`
	Paid              bool    `json:"paid"`
	PaidAt            *string `json:"paidAt"`
	IsOverdue         bool    `json:"isOverdue"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// InstallmentService предоставляет методы для работы с платежами по долгам
type InstallmentService struct {
	db        *gorm.DB
	validator *validator.Validate
	email     *EmailService
}

// NewInstallmentService создает новый экземпляр InstallmentService
func NewInstallmentService(db *gorm.DB, email *EmailService) *InstallmentService {
	return &InstallmentService{
		db:        db,
		validator: validator.New(),
		email:     email,
	}
}

// GetByDebtID возвращает все платежи по долгу, отсортированные по номеру
func (s *InstallmentService) GetByDebtID(debtID uint) ([]InstallmentResponseDTO, error) {
	var debt models.Debt
	if err := s.db.First(&debt, debtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrDebtNotFound, debtID)
		}
		return nil, err
	}

	var installments []models.Installment
	if err := s.db.Where("debt_id = ?", debtID).
		Order("installment_number ASC").
		Find(&installments).Error; err != nil {
		return nil, err
	}

	today := dateOnly(time.Now())
	result := make([]InstallmentResponseDTO, len(installments))
	for i, inst := range installments {
		result[i] = toInstallmentDTO(inst, debt.Title, today)
	}

	return result, nil
}

// ListUnpaid возвращает неоплаченные платежи по долгу
func (s *InstallmentService) ListUnpaid(debtID uint) ([]models.Installment, error) {
	var installments []models.Installment
	err := s.db.Where("debt_id = ? AND paid = ?", debtID, false).
		Order("installment_number ASC").
		Find(&installments).Error
	return installments, err
}

// ListPaid возвращает оплаченные платежи по долгу
func (s *InstallmentService) ListPaid(debtID uint) ([]models.Installment, error) {
	var installments []models.Installment
	err := s.db.Where("debt_id = ? AND paid = ?", debtID, true).
		Order("installment_number ASC").
		Find(&installments).Error
	return installments, err
}

// CountUnpaid возвращает количество неоплаченных платежей по долгу
func (s *InstallmentService) CountUnpaid(debtID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Installment{}).
		Where("debt_id = ? AND paid = ?", debtID, false).
		Count(&count).Error
	return count, err
}

// CountPaid возвращает количество оплаченных платежей по долгу
func (s *InstallmentService) CountPaid(debtID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Installment{}).
		Where("debt_id = ? AND paid = ?", debtID, true).
		Count(&count).Error
	return count, err
}

// FindOverdue возвращает все просроченные платежи на указанную дату,
// отсортированные по дате платежа. Дата обрезается до начала дня, чтобы
// выборка и признак isOverdue считались от одной границы: платеж со сроком
// сегодня еще не просрочен.
func (s *InstallmentService) FindOverdue(asOf time.Time) ([]InstallmentResponseDTO, error) {
	today := dateOnly(asOf)

	var installments []models.Installment
	if err := s.db.Preload("Debt").
		Where("paid = ? AND due_date < ?", false, today).
		Order("due_date ASC").
		Find(&installments).Error; err != nil {
		return nil, err
	}

	result := make([]InstallmentResponseDTO, len(installments))
	for i, inst := range installments {
		result[i] = toInstallmentDTO(inst, inst.Debt.Title, today)
	}

	return result, nil
}

// Update корректирует сумму и/или дату платежа. Сумма графика после ручной
// корректировки может разойтись с суммой долга, это осознанное поведение.
func (s *InstallmentService) Update(id uint, dto UpdateInstallmentRequest) (*InstallmentResponseDTO, error) {
	if dto.Amount != nil && *dto.Amount <= 0 {
		return nil, fmt.Errorf("%w: сумма платежа должна быть больше 0", ErrValidation)
	}

	var dueDate *time.Time
	if dto.DueDate != nil {
		parsed, err := time.Parse("2006-01-02", *dto.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: неверный формат даты, ожидается YYYY-MM-DD", ErrValidation)
		}
		dueDate = &parsed
	}

	var installment models.Installment
	if err := s.db.Preload("Debt").First(&installment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrInstallmentNotFound, id)
		}
		return nil, err
	}

	// Обновляем только переданные поля
	if dto.Amount != nil {
		installment.Amount = *dto.Amount
	}
	if dueDate != nil {
		installment.DueDate = *dueDate
	}

	if err := s.db.Save(&installment).Error; err != nil {
		return nil, err
	}

	utils.GetMetrics().RecordInstallmentUpdated()
	utils.LogInfo("Скорректирован платеж ID %d по долгу ID %d", id, installment.DebtID)

	today := dateOnly(time.Now())
	result := toInstallmentDTO(installment, installment.Debt.Title, today)
	return &result, nil
}

// BulkUpdate применяет список корректировок. Каждый элемент обрабатывается
// в собственной транзакции, ошибки собираются по элементам и не прерывают
// обработку остальных.
func (s *InstallmentService) BulkUpdate(items []BulkUpdateItem) []BulkUpdateResult {
	results := make([]BulkUpdateResult, len(items))

	for i, item := range items {
		updated, err := s.Update(item.InstallmentID, UpdateInstallmentRequest{
			Amount:  item.Amount,
			DueDate: item.DueDate,
		})

		results[i] = BulkUpdateResult{
			InstallmentID: item.InstallmentID,
			Success:       err == nil,
			Installment:   updated,
		}
		if err != nil {
			results[i].Error = err.Error()
		}
	}

	return results
}

// MarkPaid отмечает платеж оплаченным и при необходимости переводит долг
// в статус PAID_OFF
func (s *InstallmentService) MarkPaid(id uint) (*InstallmentResponseDTO, error) {
	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	var installment models.Installment
	if err := tx.Preload("Debt").First(&installment, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrInstallmentNotFound, id)
		}
		return nil, err
	}

	if installment.Paid {
		tx.Rollback()
		return nil, fmt.Errorf("%w: ID %d", ErrAlreadyPaid, id)
	}

	// Отмечаем платеж оплаченным
	now := dateOnly(time.Now())
	installment.Paid = true
	installment.PaidAt = &now

	if err := tx.Save(&installment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Проверяем, не погашен ли долг целиком
	paidOff, err := refreshDebtStatusTx(tx, &installment.Debt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	utils.GetMetrics().RecordInstallmentPaid()
	utils.LogInfo("Платеж ID %d по долгу ID %d отмечен оплаченным", id, installment.DebtID)

	if paidOff {
		// Отправляем уведомление о полном погашении, ошибка не влияет на результат
		if err := s.email.SendDebtPaidOffNotification(installment.Debt.Title, installment.DebtID); err != nil {
			utils.LogError("Ошибка при отправке уведомления о погашении: %v", err)
		}
	}

	result := toInstallmentDTO(installment, installment.Debt.Title, now)
	return &result, nil
}

// toInstallmentDTO конвертирует модель Installment в DTO
func toInstallmentDTO(inst models.Installment, debtTitle string, today time.Time) InstallmentResponseDTO {
	var paidAt *string
	if inst.PaidAt != nil {
		formatted := inst.PaidAt.Format("2006-01-02")
		paidAt = &formatted
	}

	return InstallmentResponseDTO{
		ID:                inst.ID,
		DebtID:            inst.DebtID,
		DebtTitle:         debtTitle,
		InstallmentNumber: inst.InstallmentNumber,
		Amount:            inst.Amount,
		DueDate:           inst.DueDate.Format("2006-01-02"),
		Paid:              inst.Paid,
		PaidAt:            paidAt,
		IsOverdue:         IsOverdue(inst, today),
		CreatedAt:         inst.CreatedAt.Format("2006-01-02"),
		UpdatedAt:         inst.UpdatedAt.Format("2006-01-02"),
	}
}
