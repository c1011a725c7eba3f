package services

import (
	"errors"
	"familyPaymentTracker/models"
	"familyPaymentTracker/utils"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateDebtRequest представляет данные для создания долга.
// Должна быть задана либо общая сумма, либо сумма ежемесячного платежа.
type CreateDebtRequest struct {
	Title                string   `json:"title" validate:"required,max=200"`
	TotalAmount          *int64   `json:"totalAmount" validate:"omitempty,gt=0"`
	MonthlyPaymentAmount *int64   `json:"monthlyPaymentAmount" validate:"omitempty,gt=0"`
	InstallmentCount     int      `json:"installmentCount" validate:"required,gte=1"`
	StartDate            string   `json:"startDate" validate:"required"` // Формат YYYY-MM-DD
	InterestRate         *float64 `json:"interestRate" validate:"omitempty,gte=0"`
}

// DebtResponseDTO представляет ответ с данными долга
type DebtResponseDTO struct {
	ID               uint                     `json:"id"`
	Title            string                   `json:"title"`
	TotalAmount      int64                    `json:"totalAmount"`
	InstallmentCount int                      `json:"installmentCount"`
	StartDate        string                   `json:"startDate"`
	InterestRate     *float64                 `json:"interestRate"`
	Status           string                   `json:"status"`
	CreatedAt        string                   `json:"createdAt"`
	UpdatedAt        string                   `json:"updatedAt"`
	Summary          *DebtSummary             `json:"summary,omitempty"`
	Installments     []InstallmentResponseDTO `json:"installments,omitempty"`
}

// DebtService предоставляет методы для работы с долгами
type DebtService struct {
	db        *gorm.DB
	validator *validator.Validate
	email     *EmailService
	rates     *RateService
}

// NewDebtService создает новый экземпляр DebtService
func NewDebtService(db *gorm.DB, email *EmailService, rates *RateService) *DebtService {
	return &DebtService{
		db:        db,
		validator: validator.New(),
		email:     email,
		rates:     rates,
	}
}

// Create создает долг и атомарно генерирует весь график платежей
func (s *DebtService) Create(dto CreateDebtRequest) (*DebtResponseDTO, error) {
	// Валидируем DTO
	if err := s.validateRequest(dto); err != nil {
		return nil, err
	}

	if dto.TotalAmount == nil && dto.MonthlyPaymentAmount == nil {
		return nil, fmt.Errorf("%w: должна быть задана общая сумма или сумма ежемесячного платежа", ErrValidation)
	}

	startDate, err := time.Parse("2006-01-02", dto.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: неверный формат даты начала, ожидается YYYY-MM-DD", ErrValidation)
	}

	// Если общая сумма не задана, она определяется как monthlyAmount * count
	totalAmount := int64(0)
	if dto.TotalAmount != nil {
		totalAmount = *dto.TotalAmount
	} else {
		totalAmount = *dto.MonthlyPaymentAmount * int64(dto.InstallmentCount)
	}

	// Если ставка не передана, берем справочную ставку центрального банка.
	// Ставка хранится только для информации и в расчетах не участвует.
	interestRate := dto.InterestRate
	if interestRate == nil && s.rates != nil {
		if rate, err := s.rates.GetCentralBankRate(); err == nil {
			interestRate = &rate
		} else {
			utils.LogDebug("Ставка ЦБ недоступна: %v", err)
		}
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Создаем долг
	debt := &models.Debt{
		Title:            dto.Title,
		TotalAmount:      totalAmount,
		InstallmentCount: dto.InstallmentCount,
		StartDate:        startDate,
		InterestRate:     interestRate,
		Status:           models.DebtStatusActive,
	}

	if err := tx.Create(debt).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при создании долга")
	}

	// Генерируем график платежей
	installments := GenerateInstallments(totalAmount, dto.InstallmentCount, startDate, dto.MonthlyPaymentAmount)
	for i := range installments {
		installments[i].DebtID = debt.ID
	}

	if err := tx.Create(&installments).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при создании графика платежей")
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	utils.GetMetrics().RecordDebtCreated(len(installments))
	utils.LogInfo("Создан долг ID %d (%s) с %d платежами", debt.ID, debt.Title, len(installments))

	debt.Installments = installments
	response := s.toDTO(debt, true)
	return &response, nil
}

// GetAll возвращает все долги с опциональной фильтрацией по статусу
func (s *DebtService) GetAll(status string, includeInstallments bool) ([]DebtResponseDTO, error) {
	query := s.db.Model(&models.Debt{})

	if status != "" {
		normalized := strings.ToUpper(status)
		if !models.ValidDebtStatus(normalized) {
			return nil, fmt.Errorf("%w: неизвестный статус долга %q", ErrValidation, status)
		}
		query = query.Where("status = ?", normalized)
	}

	if includeInstallments {
		query = query.Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("debt_installments.installment_number ASC")
		})
	}

	var debts []models.Debt
	if err := query.Find(&debts).Error; err != nil {
		return nil, err
	}

	result := make([]DebtResponseDTO, len(debts))
	for i := range debts {
		result[i] = s.toDTO(&debts[i], includeInstallments)
	}

	return result, nil
}

// GetByID возвращает долг по ID
func (s *DebtService) GetByID(id uint, includeInstallments bool) (*DebtResponseDTO, error) {
	query := s.db.Model(&models.Debt{})
	if includeInstallments {
		query = query.Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("debt_installments.installment_number ASC")
		})
	}

	var debt models.Debt
	if err := query.First(&debt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrDebtNotFound, id)
		}
		return nil, err
	}

	response := s.toDTO(&debt, includeInstallments)
	return &response, nil
}

// Delete удаляет долг вместе со всеми его платежами в одной транзакции.
// Удаление физическое и необратимое.
func (s *DebtService) Delete(id uint) error {
	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return errors.New("ошибка при начале транзакции")
	}

	var debt models.Debt
	if err := tx.First(&debt, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: ID %d", ErrDebtNotFound, id)
		}
		return err
	}

	// Сначала удаляем платежи, затем сам долг
	if err := tx.Unscoped().Where("debt_id = ?", id).Delete(&models.Installment{}).Error; err != nil {
		tx.Rollback()
		return errors.New("ошибка при удалении графика платежей")
	}

	if err := tx.Unscoped().Delete(&debt).Error; err != nil {
		tx.Rollback()
		return errors.New("ошибка при удалении долга")
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return errors.New("ошибка при подтверждении транзакции")
	}

	utils.GetMetrics().RecordDebtDeleted()
	utils.LogInfo("Удален долг ID %d вместе с платежами", id)
	return nil
}

// RefreshStatus пересчитывает статус долга. Идемпотентен: без новых оплат
// повторные вызовы ничего не меняют, обратного перехода из PAID_OFF нет.
func (s *DebtService) RefreshStatus(debtID uint) error {
	var debt models.Debt
	if err := s.db.First(&debt, debtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: ID %d", ErrDebtNotFound, debtID)
		}
		return err
	}

	paidOff, err := refreshDebtStatusTx(s.db, &debt)
	if err != nil {
		return err
	}

	if paidOff {
		utils.LogInfo("Долг ID %d переведен в статус PAID_OFF", debtID)
		if err := s.email.SendDebtPaidOffNotification(debt.Title, debt.ID); err != nil {
			utils.LogError("Ошибка при отправке уведомления о погашении: %v", err)
		}
	}

	return nil
}

// validateRequest валидирует DTO и собирает сообщения об ошибках
func (s *DebtService) validateRequest(dto CreateDebtRequest) error {
	if err := s.validator.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}

		var errorMessages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
			case "gt", "gte":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть положительным")
			case "max":
				errorMessages = append(errorMessages, "поле "+e.Field()+" слишком длинное")
			default:
				errorMessages = append(errorMessages, "поле "+e.Field()+" некорректно")
			}
		}
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errorMessages, "; "))
	}

	return nil
}

// toDTO конвертирует модель Debt в DTO
func (s *DebtService) toDTO(debt *models.Debt, includeInstallments bool) DebtResponseDTO {
	response := DebtResponseDTO{
		ID:               debt.ID,
		Title:            debt.Title,
		TotalAmount:      debt.TotalAmount,
		InstallmentCount: debt.InstallmentCount,
		StartDate:        debt.StartDate.Format("2006-01-02"),
		InterestRate:     debt.InterestRate,
		Status:           string(debt.Status),
		CreatedAt:        debt.CreatedAt.Format("2006-01-02"),
		UpdatedAt:        debt.UpdatedAt.Format("2006-01-02"),
	}

	if includeInstallments {
		summary := Summarize(debt, debt.Installments)
		response.Summary = &summary

		today := dateOnly(time.Now())
		response.Installments = make([]InstallmentResponseDTO, len(debt.Installments))
		for i, inst := range debt.Installments {
			response.Installments[i] = toInstallmentDTO(inst, debt.Title, today)
		}
	}

	return response
}
