package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"familyPaymentTracker/services"
	"familyPaymentTracker/utils"
)

// ErrorResponse представляет тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// ApiResponseMessage представляет универсальный ответ об успехе операции
type ApiResponseMessage struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON сериализует ответ и выставляет статус
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.LogError("Ошибка сериализации ответа: %v", err)
	}
}

// writeError отправляет ошибку в формате JSON
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// handleServiceError сопоставляет ошибки сервисов с HTTP-статусами
func handleServiceError(w http.ResponseWriter, err error) {
	metrics := utils.GetMetrics()

	switch {
	case errors.Is(err, services.ErrDebtNotFound), errors.Is(err, services.ErrInstallmentNotFound):
		metrics.RecordError("not_found")
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation):
		metrics.RecordError("validation")
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAlreadyPaid):
		metrics.RecordError("conflict")
		writeError(w, http.StatusConflict, err.Error())
	default:
		metrics.RecordError("internal")
		utils.LogError("Внутренняя ошибка: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
