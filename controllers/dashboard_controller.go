package controllers

import (
	"net/http"
	"strconv"

	"familyPaymentTracker/database"
	"familyPaymentTracker/services"
)

// DashboardController обрабатывает запросы сводной статистики
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController создает новый экземпляр DashboardController
func NewDashboardController(db *database.Database) *DashboardController {
	return &DashboardController{
		dashboardService: services.NewDashboardService(db.DB),
	}
}

// GetDashboardSummary обрабатывает запрос полной сводки.
// Параметры year и month необязательные, они влияют только на то,
// для какого месяца строится месячная разбивка.
func (c *DashboardController) GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	year, err := parseOptionalInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year parameter")
		return
	}

	month, err := parseOptionalInt(r, "month")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month parameter")
		return
	}

	summary, err := c.dashboardService.CalculateSummary(year, month)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// GetMonthlyBreakdown обрабатывает запрос разбивки за конкретный месяц.
// Параметры year и month обязательные.
func (c *DashboardController) GetMonthlyBreakdown(w http.ResponseWriter, r *http.Request) {
	year, err := parseOptionalInt(r, "year")
	if err != nil || year == nil {
		writeError(w, http.StatusBadRequest, "Parameter year is required")
		return
	}

	month, err := parseOptionalInt(r, "month")
	if err != nil || month == nil {
		writeError(w, http.StatusBadRequest, "Parameter month is required")
		return
	}

	breakdown, err := c.dashboardService.CalculateMonthlyBreakdown(*year, *month)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, breakdown)
}

// parseOptionalInt извлекает необязательный числовой параметр запроса
func parseOptionalInt(r *http.Request, name string) (*int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
