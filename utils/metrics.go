package utils

import (
	"sync"
	"time"
)

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Метрики долгов
	DebtsCreated      int64
	DebtsDeleted      int64
	DebtsPaidOff      int64
	LastDebtOperation time.Time

	// Метрики платежей
	InstallmentsGenerated int64
	InstallmentsPaid      int64
	InstallmentsUpdated   int64

	// Метрики ошибок
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics возвращает экземпляр метрик
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			ErrorTypes: make(map[string]int64),
		}
	})
	return metrics
}

// RecordRequest записывает метрики запроса
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if failed {
		m.FailedRequests++
	}
}

// RecordDebtCreated записывает создание долга и сгенерированные платежи
func (m *Metrics) RecordDebtCreated(installments int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DebtsCreated++
	m.InstallmentsGenerated += int64(installments)
	m.LastDebtOperation = time.Now()
}

// RecordDebtDeleted записывает удаление долга
func (m *Metrics) RecordDebtDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DebtsDeleted++
	m.LastDebtOperation = time.Now()
}

// RecordDebtPaidOff записывает полное погашение долга
func (m *Metrics) RecordDebtPaidOff() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DebtsPaidOff++
	m.LastDebtOperation = time.Now()
}

// RecordInstallmentPaid записывает оплату платежа
func (m *Metrics) RecordInstallmentPaid() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InstallmentsPaid++
	m.LastDebtOperation = time.Now()
}

// RecordInstallmentUpdated записывает корректировку платежа
func (m *Metrics) RecordInstallmentUpdated() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InstallmentsUpdated++
	m.LastDebtOperation = time.Now()
}

// RecordError записывает ошибку указанного типа
func (m *Metrics) RecordError(errType string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ErrorCount++
	m.LastErrorTime = time.Now()
	m.ErrorTypes[errType]++
}

// Snapshot возвращает копию метрик для отдачи наружу
func (m *Metrics) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	errTypes := make(map[string]int64, len(m.ErrorTypes))
	for k, v := range m.ErrorTypes {
		errTypes[k] = v
	}

	return map[string]interface{}{
		"totalRequests":         m.TotalRequests,
		"failedRequests":        m.FailedRequests,
		"averageLatencyMs":      m.AverageLatency.Milliseconds(),
		"debtsCreated":          m.DebtsCreated,
		"debtsDeleted":          m.DebtsDeleted,
		"debtsPaidOff":          m.DebtsPaidOff,
		"installmentsGenerated": m.InstallmentsGenerated,
		"installmentsPaid":      m.InstallmentsPaid,
		"installmentsUpdated":   m.InstallmentsUpdated,
		"errorCount":            m.ErrorCount,
		"errorTypes":            errTypes,
	}
}
