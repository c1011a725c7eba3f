package controllers

import (
	"net/http"

	"familyPaymentTracker/utils"
)

// PaymentStatusHandler возвращает статус API
func PaymentStatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "This is an API-only project",
		"status":  "success",
	})
}

// MetricsHandler возвращает снимок внутренних метрик приложения
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utils.GetMetrics().Snapshot())
}
