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

	addPricingRuleHandler "github.com/maverk/IndoorBookingService/internal/api/handlers/add_pricing_rule"
	cancelReservationHandler "github.com/maverk/IndoorBookingService/internal/api/handlers/cancel_reservation"
	createBookingHandler "github.com/maverk/IndoorBookingService/internal/api/handlers/create_booking"
	deletePricingRuleHandler "github.com/maverk/IndoorBookingService/internal/api/handlers/delete_pricing_rule"
	getAvailableSlotsHandler "github.com/maverk/IndoorBookingService/internal/api/handlers/get_available_slots"
	getBookingStatsHandler "github.com/maverk/IndoorBookingService/internal/api/handlers/get_booking_stats"
	getPricingRulesHandler "github.com/maverk/IndoorBookingService/internal/api/handlers/get_pricing_rules"
	getReservationHandler "github.com/maverk/IndoorBookingService/internal/api/handlers/get_reservation"
	getResourceReservationsHandler "github.com/maverk/IndoorBookingService/internal/api/handlers/get_resource_reservations"
	getUserReservationsHandler "github.com/maverk/IndoorBookingService/internal/api/handlers/get_user_reservations"
	updateReservationStatusHandler "github.com/maverk/IndoorBookingService/internal/api/handlers/update_reservation_status"
	"github.com/maverk/IndoorBookingService/internal/api/middleware"
	"github.com/maverk/IndoorBookingService/internal/config"
	reservationRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/reservation"
	resourceRepo "github.com/maverk/IndoorBookingService/internal/infra/storage/resource"
	pricingService "github.com/maverk/IndoorBookingService/internal/service/pricing"
	reservationsService "github.com/maverk/IndoorBookingService/internal/service/reservations"
	createBookingUC "github.com/maverk/IndoorBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/maverk/IndoorBookingService/internal/usecase/get_available_slots"
	"github.com/maverk/IndoorBookingService/pkg/dbmetrics"
	"github.com/maverk/IndoorBookingService/pkg/logger"
	"github.com/maverk/IndoorBookingService/pkg/metrics"
	"github.com/maverk/IndoorBookingService/pkg/simpletxmanager"
	"github.com/maverk/IndoorBookingService/pkg/txmanager"
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

	log.Info("Starting IndoorBookingService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		resourceRepository    *resourceRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		resourceRepository,
		log,
	)
	pricingSvc := pricingService.NewService(
		resourceRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		reservationRepository,
		resourceRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		resourceRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getResourceReservations := getResourceReservationsHandler.NewHandler(reservationSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(reservationSvc, log)
	getPricingRules := getPricingRulesHandler.NewHandler(pricingSvc, log)
	addPricingRule := addPricingRuleHandler.NewHandler(pricingSvc, log)
	deletePricingRule := deletePricingRuleHandler.NewHandler(pricingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание ресурса на день: доступность и цены всех 24 слотов
	api.HandleFunc("/resources/{resourceId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Список правил ценообразования ресурса
	api.HandleFunc("/resources/{resourceId}/pricing-rules",
		getPricingRules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (один или несколько слотов одной датой)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Решение владельца: подтвердить или отклонить бронирование
	protected.HandleFunc("/bookings/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/me/bookings", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление ресурсом (для владельцев) ---
	// Список бронирований ресурса
	protected.HandleFunc("/resources/{resourceId}/bookings", getResourceReservations.Handle).Methods(http.MethodGet)

	// Добавление правила ценообразования
	protected.HandleFunc("/resources/{resourceId}/pricing-rules", addPricingRule.Handle).Methods(http.MethodPost)

	// Удаление правила ценообразования
	protected.HandleFunc("/resources/{resourceId}/pricing-rules/{ruleId}", deletePricingRule.Handle).Methods(http.MethodDelete)

	// Сводка бронирований по статусам
	protected.HandleFunc("/stats/bookings", getBookingStats.Handle).Methods(http.MethodGet)

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
