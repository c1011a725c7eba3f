package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"familyPaymentTracker/database"
	"familyPaymentTracker/services"
)

// InstallmentController обрабатывает запросы, связанные с платежами
type InstallmentController struct {
	installmentService *services.InstallmentService
}

// NewInstallmentController создает новый экземпляр InstallmentController
func NewInstallmentController(db *database.Database, email *services.EmailService) *InstallmentController {
	return &InstallmentController{
		installmentService: services.NewInstallmentService(db.DB, email),
	}
}

// UpdateInstallment обрабатывает запрос на корректировку платежа
func (c *InstallmentController) UpdateInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid installment ID")
		return
	}

	var dto services.UpdateInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := c.installmentService.Update(id, dto)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// BulkUpdateInstallments обрабатывает массовую корректировку платежей.
// Каждый элемент применяется независимо, результат содержит статус по
// каждому элементу.
func (c *InstallmentController) BulkUpdateInstallments(w http.ResponseWriter, r *http.Request) {
	var items []services.BulkUpdateItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results := c.installmentService.BulkUpdate(items)
	writeJSON(w, http.StatusOK, results)
}

// MarkInstallmentPaid обрабатывает запрос на оплату платежа
func (c *InstallmentController) MarkInstallmentPaid(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid installment ID")
		return
	}

	paid, err := c.installmentService.MarkPaid(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, paid)
}

// GetOverdueInstallments обрабатывает запрос на список просроченных платежей
func (c *InstallmentController) GetOverdueInstallments(w http.ResponseWriter, r *http.Request) {
	overdue, err := c.installmentService.FindOverdue(time.Now())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, overdue)
}
