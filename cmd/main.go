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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-WalkBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-WalkBookingService/internal/api/handlers/create_booking"
	getAvailableWindowsHandler "github.com/m04kA/SMC-WalkBookingService/internal/api/handlers/get_available_windows"
	getBookingHandler "github.com/m04kA/SMC-WalkBookingService/internal/api/handlers/get_booking"
	getOwnerBookingsHandler "github.com/m04kA/SMC-WalkBookingService/internal/api/handlers/get_owner_bookings"
	listBookingsHandler "github.com/m04kA/SMC-WalkBookingService/internal/api/handlers/list_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-WalkBookingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-WalkBookingService/internal/api/handlers/update_booking_status"
	walkLimitsHandler "github.com/m04kA/SMC-WalkBookingService/internal/api/handlers/walk_limits"
	"github.com/m04kA/SMC-WalkBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-WalkBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-WalkBookingService/internal/infra/storage/booking"
	walkLimitRepo "github.com/m04kA/SMC-WalkBookingService/internal/infra/storage/walklimit"
	"github.com/m04kA/SMC-WalkBookingService/internal/integrations/calendarfeed"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/admission"
	bookingsService "github.com/m04kA/SMC-WalkBookingService/internal/service/bookings"
	walkLimitsService "github.com/m04kA/SMC-WalkBookingService/internal/service/walklimits"
	createBookingUC "github.com/m04kA/SMC-WalkBookingService/internal/usecase/create_booking"
	getAvailableWindowsUC "github.com/m04kA/SMC-WalkBookingService/internal/usecase/get_available_windows"
	rescheduleBookingUC "github.com/m04kA/SMC-WalkBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-WalkBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WalkBookingService/pkg/logger"
	"github.com/m04kA/SMC-WalkBookingService/pkg/metrics"
	"github.com/m04kA/SMC-WalkBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-WalkBookingService...")
	log.Info("Configuration loaded: timezone=%s, workday=%s-%s, default_walk_cap=%d",
		cfg.Scheduling.Timezone, cfg.Scheduling.WorkdayStart, cfg.Scheduling.WorkdayEnd, cfg.Scheduling.DefaultWalkCap)

	// Метрики (если включены). Получатели метрик - интерфейсы,
	// поэтому при выключенных метриках передаём nil, а не (*Metrics)(nil)
	var (
		metricsCollector *metrics.Metrics
		decisionRecorder admission.DecisionRecorder
		cacheRecorder    calendarfeed.CacheRecorder
	)
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		decisionRecorder = metricsCollector
		cacheRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без коллектора обёртка только проксирует запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	walkLimitRepository := walkLimitRepo.NewRepository(wrappedDB)

	// Календарь исполнителя: ICS фид, при включенном redis - через кэш
	schedule := cfg.Schedule()
	var feed calendarfeed.EventSource = calendarfeed.NewClient(
		cfg.Calendar.FeedURL,
		time.Duration(cfg.Calendar.Timeout)*time.Second,
		schedule.Location,
		log,
	)

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// кэш необязателен: при недоступном redis клиент ходит в фид напрямую
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		feed = calendarfeed.NewCachedClient(
			feed,
			redisClient,
			time.Duration(cfg.Calendar.CacheTTL)*time.Second,
			cacheRecorder,
			log,
		)
		log.Info("Calendar feed cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Calendar.CacheTTL)
	}

	// Контроль допуска
	admissionController := admission.NewController(
		admission.Config{DefaultWalkCap: cfg.Scheduling.DefaultWalkCap},
		bookingRepository,
		walkLimitRepository,
		decisionRecorder,
		log,
	)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	walkLimitSvc := walkLimitsService.NewService(walkLimitRepository, cfg.Scheduling.DefaultWalkCap, log)

	// Use cases
	getAvailableWindowsUseCase := getAvailableWindowsUC.NewUseCase(
		schedule,
		bookingRepository,
		feed,
		admissionController,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		schedule,
		bookingRepository,
		admissionController,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		schedule,
		bookingRepository,
		admissionController,
		txMgr,
		log,
	)

	// Handlers
	getAvailableWindows := getAvailableWindowsHandler.NewHandler(getAvailableWindowsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	adminCreateBooking := createBookingHandler.NewAdminHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	adminRescheduleBooking := rescheduleBookingHandler.NewAdminHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	adminCancelBooking := cancelBookingHandler.NewAdminHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	walkLimits := walkLimitsHandler.NewHandler(walkLimitSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/availability", getAvailableWindows.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-Admin-Token)
	// ============================================================
	// Регистрируются раньше владельческих: префикс /admin не должен попасть под Auth

	if cfg.Admin.Token == "" {
		log.Warn("ADMIN_TOKEN is empty: admin API is locked")
	}
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	admin.HandleFunc("/bookings", adminCreateBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/reschedule", adminRescheduleBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/cancel", adminCancelBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	admin.HandleFunc("/walk-limits", walkLimits.List).Methods(http.MethodGet)
	admin.HandleFunc("/walk-limits/{date}", walkLimits.Get).Methods(http.MethodGet)
	admin.HandleFunc("/walk-limits/{date}", walkLimits.Put).Methods(http.MethodPut)
	admin.HandleFunc("/walk-limits/{date}", walkLimits.Delete).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (X-User-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/series/{seriesId}/cancel", cancelBooking.HandleSeries).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
