package services

import (
	"bytes"
	"familyPaymentTracker/config"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// RateService получает справочную ключевую ставку центрального банка.
// Ставка используется только как значение по умолчанию для поля
// interestRate при создании долга и ни в каких расчетах не участвует.
type RateService struct {
	url     string
	enabled bool
	client  *http.Client
}

// NewRateService создает новый экземпляр RateService
func NewRateService(cfg *config.Config) *RateService {
	return &RateService{
		url:     cfg.CentralBank.URL,
		enabled: cfg.CentralBank.Enabled,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// GetCentralBankRate возвращает последнюю ключевую ставку ЦБ
func (s *RateService) GetCentralBankRate() (float64, error) {
	if !s.enabled {
		return 0, fmt.Errorf("запрос ставки ЦБ отключен в конфигурации")
	}

	// Запрашиваем ставку за последнюю неделю и берем самое свежее значение
	to := time.Now()
	from := to.AddDate(0, 0, -7)

	envelope := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <KeyRate xmlns="http://web.cbr.ru/">
      <fromDate>%s</fromDate>
      <ToDate>%s</ToDate>
    </KeyRate>
  </soap:Body>
</soap:Envelope>`, from.Format("2006-01-02"), to.Format("2006-01-02"))

	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewBufferString(envelope))
	if err != nil {
		return 0, fmt.Errorf("ошибка создания запроса к ЦБ: %v", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ошибка запроса к ЦБ: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("ЦБ вернул статус %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения ответа ЦБ: %v", err)
	}

	return parseKeyRate(body)
}

// parseKeyRate извлекает последнее значение ставки из SOAP-ответа
func parseKeyRate(body []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return 0, fmt.Errorf("ошибка разбора ответа ЦБ: %v", err)
	}

	rates := doc.FindElements("//KR/Rate")
	if len(rates) == 0 {
		return 0, fmt.Errorf("в ответе ЦБ нет значений ставки")
	}

	// Значения идут в хронологическом порядке, последнее самое свежее
	text := strings.TrimSpace(rates[len(rates)-1].Text())
	text = strings.ReplaceAll(text, ",", ".")

	rate, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("неверный формат ставки %q: %v", text, err)
	}

	return rate, nil
}
