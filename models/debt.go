package models

import (
	"gorm.io/gorm"
	"time"
)

// Debt представляет долг семьи (кредит, рассрочка, кредитная карта)
type Debt struct {
	gorm.Model
	Title            string        `gorm:"type:varchar(200);not null"`
	TotalAmount      int64         `gorm:"not null"` // Сумма долга в минимальных единицах валюты
	InstallmentCount int           `gorm:"not null"`
	StartDate        time.Time     `gorm:"not null"`
	InterestRate     *float64      // Годовая ставка, хранится справочно и в расчетах не участвует
	Status           DebtStatus    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Installments     []Installment `gorm:"foreignKey:DebtID"`
}

// DebtStatus представляет статус долга
type DebtStatus string

const (
	DebtStatusActive  DebtStatus = "ACTIVE"
	DebtStatusPaidOff DebtStatus = "PAID_OFF"
)

// ValidDebtStatus проверяет, что строка является известным статусом долга
func ValidDebtStatus(s string) bool {
	switch DebtStatus(s) {
	case DebtStatusActive, DebtStatusPaidOff:
		return true
	}
	return false
}

// TableName возвращает имя таблицы для модели Debt
func (Debt) TableName() string {
	return "debts"
}
