package main

import (
	"familyPaymentTracker/config"
	"familyPaymentTracker/controllers"
	"familyPaymentTracker/database"
	"familyPaymentTracker/middleware"
	"familyPaymentTracker/services"
	"familyPaymentTracker/utils"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Загружаем .env, если он есть
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используются переменные окружения")
	}

	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем логгер
	if err := utils.InitLogger(cfg.LogDir); err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}

	// Инициализируем подключение к базе данных
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Инициализируем вспомогательные сервисы
	emailService := services.NewEmailService(cfg)
	rateService := services.NewRateService(cfg)

	// Создаем роутер
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.RateLimitMiddleware)
	router.Use(middleware.CORSMiddleware)

	// Инициализируем контроллеры
	debtController := controllers.NewDebtController(db, emailService, rateService)
	installmentController := controllers.NewInstallmentController(db, emailService)
	dashboardController := controllers.NewDashboardController(db)

	// Служебные маршруты
	router.HandleFunc("/api/payments", controllers.PaymentStatusHandler).Methods("GET")
	router.HandleFunc("/api/metrics", controllers.MetricsHandler).Methods("GET")

	// Маршруты для работы с долгами
	admin := router.PathPrefix("/api/admin").Subrouter()
	admin.HandleFunc("/debts", debtController.CreateDebt).Methods("POST")
	admin.HandleFunc("/debts", debtController.GetDebts).Methods("GET")
	admin.HandleFunc("/debts/{id}", debtController.GetDebt).Methods("GET")
	admin.HandleFunc("/debts/{id}", debtController.DeleteDebt).Methods("DELETE")
	admin.HandleFunc("/debts/{id}/installments", debtController.GetDebtInstallments).Methods("GET")
	admin.HandleFunc("/reports/debts.xlsx", debtController.ExportDebtsReport).Methods("GET")

	// Маршруты для работы с платежами
	admin.HandleFunc("/installments/bulk", installmentController.BulkUpdateInstallments).Methods("PUT")
	admin.HandleFunc("/installments/overdue", installmentController.GetOverdueInstallments).Methods("GET")
	admin.HandleFunc("/installments/{id}", installmentController.UpdateInstallment).Methods("PUT")
	admin.HandleFunc("/installments/{id}/pay", installmentController.MarkInstallmentPaid).Methods("POST")

	// Маршруты сводной статистики
	dashboard := router.PathPrefix("/api/dashboard").Subrouter()
	dashboard.HandleFunc("/summary", dashboardController.GetDashboardSummary).Methods("GET")
	dashboard.HandleFunc("/monthly", dashboardController.GetMonthlyBreakdown).Methods("GET")

	// Запускаем сервер
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
