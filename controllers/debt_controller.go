package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"familyPaymentTracker/database"
	"familyPaymentTracker/services"
	"familyPaymentTracker/utils"

	"github.com/gorilla/mux"
)

// DebtController обрабатывает запросы, связанные с долгами
type DebtController struct {
	debtService        *services.DebtService
	installmentService *services.InstallmentService
	reportService      *services.ReportService
}

// NewDebtController создает новый экземпляр DebtController
func NewDebtController(db *database.Database, email *services.EmailService, rates *services.RateService) *DebtController {
	return &DebtController{
		debtService:        services.NewDebtService(db.DB, email, rates),
		installmentService: services.NewInstallmentService(db.DB, email),
		reportService:      services.NewReportService(db.DB),
	}
}

// CreateDebt обрабатывает запрос на создание долга
func (c *DebtController) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	debt, err := c.debtService.Create(dto)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, debt)
}

// GetDebts обрабатывает запрос на получение списка долгов
func (c *DebtController) GetDebts(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	includeInstallments := r.URL.Query().Get("includeInstallments") == "true"

	debts, err := c.debtService.GetAll(status, includeInstallments)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, debts)
}

// GetDebt обрабатывает запрос на получение долга по ID
func (c *DebtController) GetDebt(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid debt ID")
		return
	}

	// По умолчанию платежи включаются в ответ
	includeInstallments := true
	if v := r.URL.Query().Get("includeInstallments"); v != "" {
		includeInstallments = v == "true"
	}

	debt, err := c.debtService.GetByID(id, includeInstallments)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, debt)
}

// GetDebtInstallments обрабатывает запрос на получение графика платежей долга
func (c *DebtController) GetDebtInstallments(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid debt ID")
		return
	}

	installments, err := c.installmentService.GetByDebtID(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, installments)
}

// DeleteDebt обрабатывает запрос на удаление долга вместе с платежами
func (c *DebtController) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid debt ID")
		return
	}

	if err := c.debtService.Delete(id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ApiResponseMessage{
		Success: true,
		Message: "Debt deleted successfully",
	})
}

// ExportDebtsReport обрабатывает запрос на выгрузку XLSX-отчета
func (c *DebtController) ExportDebtsReport(w http.ResponseWriter, r *http.Request) {
	report, err := c.reportService.BuildDebtReport()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	defer report.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="debts.xlsx"`)

	// Заголовки уже отправлены, ошибку записи можно только залогировать
	if err := report.Write(w); err != nil {
		utils.LogError("Ошибка записи отчета: %v", err)
	}
}

// parseID извлекает числовой идентификатор из пути запроса
func parseID(r *http.Request) (uint, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
