package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server struct {
		Port int
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
		// Семейный адрес для уведомлений о погашении долгов
		NotifyTo string
	}
	CentralBank struct {
		URL     string // SOAP-сервис ЦБ для получения ключевой ставки
		Enabled bool   // Если false, ставка при создании долга не запрашивается
	}
	LogDir string
}

// NewConfig создает новый экземпляр конфигурации
func NewConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Значения по умолчанию
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "family_payments_db")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "noreply@family-payments.local")
	v.SetDefault("SMTP_NOTIFY_TO", "")
	v.SetDefault("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx")
	v.SetDefault("CBR_ENABLED", false)
	v.SetDefault("LOG_DIR", "logs")

	cfg := &Config{}

	// Настройки сервера
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("неверный порт сервера: %d", cfg.Server.Port)
	}

	// Настройки базы данных
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetInt("DB_PORT")
	if cfg.DB.Port <= 0 {
		return nil, fmt.Errorf("неверный порт базы данных: %d", cfg.DB.Port)
	}
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.DBName = v.GetString("DB_NAME")

	// Настройки SMTP
	cfg.SMTP.Host = v.GetString("SMTP_HOST")
	cfg.SMTP.Port = v.GetInt("SMTP_PORT")
	cfg.SMTP.Username = v.GetString("SMTP_USERNAME")
	cfg.SMTP.Password = v.GetString("SMTP_PASSWORD")
	cfg.SMTP.From = v.GetString("SMTP_FROM")
	cfg.SMTP.NotifyTo = v.GetString("SMTP_NOTIFY_TO")

	// Настройки ЦБ
	cfg.CentralBank.URL = v.GetString("CBR_URL")
	cfg.CentralBank.Enabled = v.GetBool("CBR_ENABLED")

	cfg.LogDir = v.GetString("LOG_DIR")

	return cfg, nil
}
