package services

import (
	"familyPaymentTracker/config"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки email
type EmailService struct {
	dialer   *gomail.Dialer
	from     string
	notifyTo string
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer:   dialer,
		from:     cfg.SMTP.From,
		notifyTo: cfg.SMTP.NotifyTo,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendDebtPaidOffNotification отправляет уведомление о полном погашении
// долга на семейный адрес. Если адрес не настроен, отправка пропускается.
func (s *EmailService) SendDebtPaidOffNotification(title string, debtID uint) error {
	if s.notifyTo == "" {
		return nil
	}

	subject := "Поздравляем! Долг полностью погашен"
	body := fmt.Sprintf(`
		<h2>Поздравляем!</h2>
		<p>Долг «%s» (#%d) полностью погашен.</p>
		<p>Все платежи по графику закрыты %s.</p>
	`, title, debtID, time.Now().Format("02.01.2006"))

	return s.SendEmail(s.notifyTo, subject, body)
}
