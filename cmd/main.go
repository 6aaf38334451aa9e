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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminLoginHandler "github.com/m04kA/excursion-booking/internal/api/handlers/admin_login"
	blockDateHandler "github.com/m04kA/excursion-booking/internal/api/handlers/block_date"
	createBookingHandler "github.com/m04kA/excursion-booking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/excursion-booking/internal/api/handlers/delete_booking"
	exportBookingsHandler "github.com/m04kA/excursion-booking/internal/api/handlers/export_bookings"
	getBookingHandler "github.com/m04kA/excursion-booking/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/m04kA/excursion-booking/internal/api/handlers/get_calendar"
	healthHandler "github.com/m04kA/excursion-booking/internal/api/handlers/health"
	listBlockedDatesHandler "github.com/m04kA/excursion-booking/internal/api/handlers/list_blocked_dates"
	listBookingsHandler "github.com/m04kA/excursion-booking/internal/api/handlers/list_bookings"
	unblockDateHandler "github.com/m04kA/excursion-booking/internal/api/handlers/unblock_date"
	updateBookingStatusHandler "github.com/m04kA/excursion-booking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/excursion-booking/internal/api/middleware"
	"github.com/m04kA/excursion-booking/internal/config"
	blockedDateRepo "github.com/m04kA/excursion-booking/internal/infra/storage/blockeddate"
	bookingRepo "github.com/m04kA/excursion-booking/internal/infra/storage/booking"
	"github.com/m04kA/excursion-booking/internal/infra/storage/migrations"
	"github.com/m04kA/excursion-booking/internal/integrations/keepalive"
	authService "github.com/m04kA/excursion-booking/internal/service/auth"
	blockedDatesService "github.com/m04kA/excursion-booking/internal/service/blockeddates"
	bookingsService "github.com/m04kA/excursion-booking/internal/service/bookings"
	createBookingUC "github.com/m04kA/excursion-booking/internal/usecase/create_booking"
	getCalendarUC "github.com/m04kA/excursion-booking/internal/usecase/get_calendar"
	"github.com/m04kA/excursion-booking/pkg/dbmetrics"
	"github.com/m04kA/excursion-booking/pkg/export"
	"github.com/m04kA/excursion-booking/pkg/logger"
	"github.com/m04kA/excursion-booking/pkg/metrics"
	"github.com/m04kA/excursion-booking/pkg/txmanager"
)

const migrationTimeout = time.Minute

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
	}

	cfg, err := config.Load(configPath)
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

	log.Info("Starting excursion-booking...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}
	schedule := cfg.Schedule()
	log.Info("Booking rules: capacity=%d per date, closed weekdays=%v, timezone=%s",
		schedule.Capacity, schedule.Closed(), location)

	// Метрики нужны use case'ам всегда; без включённых метрик пишем в приватный реестр
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegistry(cfg.Metrics.ServiceName, prometheus.NewRegistry())
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
	if cfg.Database.URL != "" {
		log.Info("Successfully connected to database (DATABASE_URL)")
	} else {
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	stopMetricsCh := make(chan struct{})
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Применяем миграции до приёма запросов
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), migrationTimeout)
	applied, err := migrations.NewMigrator(wrappedDB, txMgr, migrations.All, log).Up(migrateCtx)
	cancelMigrate()
	if err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database schema is up to date (%d migrations applied)", applied)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	blockedDateRepository := blockedDateRepo.NewRepository(wrappedDB)

	// Use cases
	getCalendarUseCase := getCalendarUC.NewUseCase(
		bookingRepository,
		blockedDateRepository,
		txMgr,
		schedule,
		location,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		blockedDateRepository,
		txMgr,
		metricsCollector,
		schedule,
		location,
		log,
	)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, schedule.Capacity, location, log)
	blockedDateSvc := blockedDatesService.NewService(blockedDateRepository, log)

	// Handlers
	health := healthHandler.NewHandler(wrappedDB, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet, http.MethodHead)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Календарь доступности на месяц
	api.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Заявка на экскурсию
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют токен администратора)
	// ============================================================

	if cfg.AdminEnabled() {
		authSvc := authService.NewService(authService.Config{
			Username:     cfg.Admin.Username,
			PasswordHash: cfg.Admin.PasswordHash,
			Secret:       cfg.Admin.JWTSecret,
			SessionTTL:   time.Duration(cfg.Admin.SessionTTL) * time.Minute,
		}, log)

		adminLogin := adminLoginHandler.NewHandler(authSvc, adminLoginHandler.CookieConfig{
			Name:   cfg.Admin.CookieName,
			Secure: cfg.Admin.CookieSecure,
		}, log)
		listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
		getBooking := getBookingHandler.NewHandler(bookingSvc, log)
		updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
		deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
		exporters := map[string]exportBookingsHandler.Exporter{
			"csv":  export.NewCSVExporter(),
			"json": export.NewJSONExporter(),
		}
		if cfg.PDFExportEnabled() {
			exporters["pdf"] = export.NewPDFExporter(cfg.Export.PDFTitle, cfg.Export.PDFFontPath)
		} else {
			log.Warn("PDF export disabled: set export.pdf_font_path (PDF_FONT_PATH) to a TTF font with Cyrillic glyphs")
		}
		exportBookings := exportBookingsHandler.NewHandler(bookingSvc, exporters, log)
		listBlockedDates := listBlockedDatesHandler.NewHandler(blockedDateSvc, log)
		blockDate := blockDateHandler.NewHandler(blockedDateSvc, log)
		unblockDate := unblockDateHandler.NewHandler(blockedDateSvc, log)

		api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

		admin := api.PathPrefix("/admin").Subrouter()
		admin.Use(middleware.AdminAuth(authSvc, cfg.Admin.CookieName, log))

		// --- Бронирования ---
		admin.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
		admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
		admin.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
		admin.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
		admin.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

		// --- Заблокированные даты ---
		admin.HandleFunc("/blocked-dates", listBlockedDates.Handle).Methods(http.MethodGet)
		admin.HandleFunc("/blocked-dates", blockDate.Handle).Methods(http.MethodPost)
		admin.HandleFunc("/blocked-dates/{date}", unblockDate.Handle).Methods(http.MethodDelete)

		log.Info("Admin routes enabled for user %q", cfg.Admin.Username)
	} else {
		log.Warn("Admin routes disabled: set ADMIN_PASSWORD_HASH and JWT_SECRET to enable them")
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Keepalive (для хостингов, усыпляющих сервис без трафика)
	keepaliveCtx, stopKeepalive := context.WithCancel(context.Background())
	defer stopKeepalive()

	if cfg.Keepalive.Enabled {
		client := keepalive.NewClient(
			cfg.Keepalive.URL,
			time.Duration(cfg.Keepalive.Interval)*time.Second,
			time.Duration(cfg.Keepalive.Timeout)*time.Second,
			log,
		)
		go client.Run(keepaliveCtx)
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
	stopKeepalive()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
