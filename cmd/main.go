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

	cancelReservationHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/cancel_reservation"
	createDateOverrideHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/create_date_override"
	createReservationHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/create_reservation"
	getCourtScheduleHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_court_schedule"
	getReservationHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_reservation"
	getSlotGridHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_slot_grid"
	getUserReservationsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_user_reservations"
	updateCourtScheduleHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/update_court_schedule"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/availability"
	"github.com/m04kA/SMC-CourtBookingService/internal/config"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	creditRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/credit"
	policyRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/policy"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/schedule"
	paymentServiceClient "github.com/m04kA/SMC-CourtBookingService/internal/integrations/paymentservice"
	reservationsService "github.com/m04kA/SMC-CourtBookingService/internal/service/reservations"
	scheduleService "github.com/m04kA/SMC-CourtBookingService/internal/service/schedule"
	cancelReservationUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_reservation"
	getSlotGridUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_slot_grid"
	"github.com/m04kA/SMC-CourtBookingService/migrations"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-CourtBookingService...")
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

	// Применяем миграции
	if err := migrations.Up(db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем интеграционных клиентов
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PaymentService=%s timeout=%ds)",
		cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		courtRepository       *courtRepo.Repository
		catalogRepository     *catalogRepo.Repository
		policyRepository      *policyRepo.Repository
		creditRepository      *creditRepo.Repository
	)

	// Интерфейс transaction manager, используется в usecases и сервисах
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		courtRepository = courtRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		creditRepository = creditRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		courtRepository = courtRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		creditRepository = creditRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Правила доступности поверх живых репозиториев: используются при
	// создании бронирования для повторной проверки внутри транзакции
	availabilityChecker := availability.NewAggregator(log,
		availability.NewConfirmedReservationRule(reservationRepository, log),
		availability.NewSpecialBlockRule(scheduleRepository, log),
	)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, courtRepository, catalogRepository, txMgr, log)

	// Инициализируем use cases
	getSlotGridUseCase := getSlotGridUC.NewUseCase(
		courtRepository,
		scheduleRepository,
		reservationRepository,
		catalogRepository,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		creditRepository,
		availabilityChecker,
		paymentClient,
		txMgr,
		log,
	)

	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		courtRepository,
		policyRepository,
		cancelReservationUC.NewDefaultRegistry(creditRepository, log),
		txMgr,
		log,
	)

	// Инициализируем handlers
	getSlotGrid := getSlotGridHandler.NewHandler(getSlotGridUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getCourtSchedule := getCourtScheduleHandler.NewHandler(scheduleSvc, log)
	updateCourtSchedule := updateCourtScheduleHandler.NewHandler(scheduleSvc, log)
	createDateOverride := createDateOverrideHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов корта на дату
	api.HandleFunc("/courts/{courtId}/slots", getSlotGrid.Handle).Methods(http.MethodGet)

	// Недельное расписание корта
	api.HandleFunc("/courts/{courtId}/schedule", getCourtSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление расписаниями (для администраторов объектов) ---
	// Полная замена недельного расписания корта
	protected.HandleFunc("/courts/{courtId}/schedule", updateCourtSchedule.Handle).Methods(http.MethodPut)

	// Создание спецрасписания на дату
	protected.HandleFunc("/courts/{courtId}/overrides", createDateOverride.Handle).Methods(http.MethodPost)

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
