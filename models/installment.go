package models

import (
	"gorm.io/gorm"
	"time"
)

// Installment представляет один платеж по долгу
type Installment struct {
	gorm.Model
	DebtID            uint       `gorm:"not null;uniqueIndex:idx_debt_installment_number"`
	Debt              Debt       `gorm:"foreignKey:DebtID"`
	InstallmentNumber int        `gorm:"not null;uniqueIndex:idx_debt_installment_number"` // Номер платежа, плотная последовательность 1..count
	Amount            int64      `gorm:"not null"`                                         // Сумма платежа в минимальных единицах валюты
	DueDate           time.Time  `gorm:"not null"`                                         // Планируемая дата платежа
	Paid              bool       `gorm:"not null;default:false"`
	PaidAt            *time.Time // Дата фактической оплаты, заполняется только при оплате
}

// TableName возвращает имя таблицы для модели Installment
func (Installment) TableName() string {
	return "debt_installments"
}
