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

	assignBookingHandler "github.com/m04kA/DCMS-ScheduleService/internal/api/handlers/assign_booking"
	assignGuidesHandler "github.com/m04kA/DCMS-ScheduleService/internal/api/handlers/assign_guides"
	getDayScheduleHandler "github.com/m04kA/DCMS-ScheduleService/internal/api/handlers/get_day_schedule"
	getGuidesHandler "github.com/m04kA/DCMS-ScheduleService/internal/api/handlers/get_guides"
	moveBookingHandler "github.com/m04kA/DCMS-ScheduleService/internal/api/handlers/move_booking"
	unassignSlotHandler "github.com/m04kA/DCMS-ScheduleService/internal/api/handlers/unassign_slot"
	"github.com/m04kA/DCMS-ScheduleService/internal/api/middleware"
	"github.com/m04kA/DCMS-ScheduleService/internal/config"
	auditRepo "github.com/m04kA/DCMS-ScheduleService/internal/infra/storage/audit"
	guidesRepo "github.com/m04kA/DCMS-ScheduleService/internal/infra/storage/guides"
	divecenterClient "github.com/m04kA/DCMS-ScheduleService/internal/integrations/divecenter"
	assignmentsService "github.com/m04kA/DCMS-ScheduleService/internal/service/assignments"
	rosterService "github.com/m04kA/DCMS-ScheduleService/internal/service/roster"
	getDayScheduleUC "github.com/m04kA/DCMS-ScheduleService/internal/usecase/get_day_schedule"
	"github.com/m04kA/DCMS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/DCMS-ScheduleService/pkg/logger"
	"github.com/m04kA/DCMS-ScheduleService/pkg/metrics"
	"github.com/m04kA/DCMS-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/DCMS-ScheduleService/pkg/txmanager"
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

	log.Info("Starting DCMS-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем клиент основного сервиса дайв-центра
	dcClient := divecenterClient.NewClient(
		cfg.DiveCenter.URL,
		time.Duration(cfg.DiveCenter.Timeout)*time.Second,
		log,
	)
	log.Info("Dive-center client initialized (url=%s, timeout=%ds)", cfg.DiveCenter.URL, cfg.DiveCenter.Timeout)

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		pendingGuides *guidesRepo.Repository
		auditLog      *auditRepo.Repository
		txMgr         assignmentsService.TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		pendingGuides = guidesRepo.NewRepository(wrappedDB)
		auditLog = auditRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		pendingGuides = guidesRepo.NewRepository(db)
		auditLog = auditRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	assignmentsSvc := assignmentsService.NewService(dcClient, pendingGuides, auditLog, txMgr, log)
	rosterSvc := rosterService.NewService(dcClient, log)

	// Инициализируем use cases
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(dcClient, pendingGuides, log)

	// Инициализируем handlers
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	getGuides := getGuidesHandler.NewHandler(rosterSvc, log)
	assignBooking := assignBookingHandler.NewHandler(assignmentsSvc, log)
	unassignSlot := unassignSlotHandler.NewHandler(assignmentsSvc, log)
	moveBooking := moveBookingHandler.NewHandler(assignmentsSvc, log)
	assignGuides := assignGuidesHandler.NewHandler(assignmentsSvc, log)

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

	// Расписание дня локации
	api.HandleFunc("/locations/{locationId}/schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// Ростер гидов локации
	api.HandleFunc("/locations/{locationId}/guides", getGuides.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Назначение бронирования на слот
	protected.HandleFunc("/locations/{locationId}/slots/{slotId}/assignments",
		assignBooking.Handle).Methods(http.MethodPost)

	// Снятие одного бронирования со слота
	protected.HandleFunc("/locations/{locationId}/slots/{slotId}/assignments/{bookingId}",
		unassignSlot.HandleBooking).Methods(http.MethodDelete)

	// Снятие всех бронирований слота
	protected.HandleFunc("/locations/{locationId}/slots/{slotId}/assignments",
		unassignSlot.HandleAll).Methods(http.MethodDelete)

	// Перенос бронирования между слотами
	protected.HandleFunc("/locations/{locationId}/bookings/{bookingId}/move",
		moveBooking.Handle).Methods(http.MethodPost)

	// Назначение гидов на слот
	protected.HandleFunc("/locations/{locationId}/slots/{slotId}/guides",
		assignGuides.Handle).Methods(http.MethodPut)

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
