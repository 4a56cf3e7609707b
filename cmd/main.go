package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookAppointmentHandler "github.com/m04kA/LCP-AppointmentService/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/m04kA/LCP-AppointmentService/internal/api/handlers/cancel_appointment"
	confirmPaymentHandler "github.com/m04kA/LCP-AppointmentService/internal/api/handlers/confirm_payment"
	getAppointmentHandler "github.com/m04kA/LCP-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/LCP-AppointmentService/internal/api/handlers/get_available_slots"
	getUserAppointmentsHandler "github.com/m04kA/LCP-AppointmentService/internal/api/handlers/get_user_appointments"
	markAttendedHandler "github.com/m04kA/LCP-AppointmentService/internal/api/handlers/mark_attended"
	paymentWebhookHandler "github.com/m04kA/LCP-AppointmentService/internal/api/handlers/payment_webhook"
	"github.com/m04kA/LCP-AppointmentService/internal/api/middleware"
	"github.com/m04kA/LCP-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/LCP-AppointmentService/internal/infra/storage/appointment"
	paymentRepo "github.com/m04kA/LCP-AppointmentService/internal/infra/storage/payment"
	profileServiceClient "github.com/m04kA/LCP-AppointmentService/internal/integrations/profileservice"
	razorpayClient "github.com/m04kA/LCP-AppointmentService/internal/integrations/razorpay"
	appointmentsService "github.com/m04kA/LCP-AppointmentService/internal/service/appointments"
	bookAppointmentUC "github.com/m04kA/LCP-AppointmentService/internal/usecase/book_appointment"
	confirmPaymentUC "github.com/m04kA/LCP-AppointmentService/internal/usecase/confirm_payment"
	getAvailableSlotsUC "github.com/m04kA/LCP-AppointmentService/internal/usecase/get_available_slots"
	paymentWebhookUC "github.com/m04kA/LCP-AppointmentService/internal/usecase/payment_webhook"
	"github.com/m04kA/LCP-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/LCP-AppointmentService/pkg/logger"
	"github.com/m04kA/LCP-AppointmentService/pkg/metrics"
	"github.com/m04kA/LCP-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/LCP-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting LCP-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	paymentProvider := razorpayClient.NewClient(
		cfg.Payments.RazorpayBaseURL,
		cfg.Payments.RazorpayKeyID,
		cfg.Payments.RazorpayKeySecret,
		cfg.Payments.WebhookSecret,
		time.Duration(cfg.Payments.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds, payments provider=%s)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout, cfg.Payments.Provider)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		paymentRepository     *paymentRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		txMgr,
		appointmentsService.Config{
			AllowCancelCompleted:      cfg.Booking.AllowCancelCompleted,
			RequireConfirmedForAttend: cfg.Booking.RequireConfirmedForAttend,
		},
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		profileClient,
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		paymentRepository,
		profileClient,
		paymentProvider,
		txMgr,
		&bookAppointmentUC.RealTimeProvider{},
		cfg.Payments.Currency,
		cfg.Payments.DefaultFeeMinor,
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		paymentRepository,
		appointmentRepository,
		paymentProvider,
		txMgr,
		log,
	)

	paymentWebhookUseCase := paymentWebhookUC.NewUseCase(
		paymentRepository,
		appointmentRepository,
		paymentProvider,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	markAttended := markAttendedHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(paymentWebhookUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчет доступных слотов юриста
	api.HandleFunc("/lawyers/{lawyerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Вебхуки платежного провайдера (аутентификация по подписи)
	api.HandleFunc("/webhooks/payments", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на консультации ---
	// Создание записи с платежным заказом
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Отметка о состоявшейся консультации
	protected.HandleFunc("/appointments/{appointmentId}/attend", markAttended.Handle).Methods(http.MethodPatch)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	// Синхронное подтверждение оплаты после чекаута
	protected.HandleFunc("/payments/confirm", confirmPayment.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
