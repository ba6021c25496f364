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

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/bulk_delete_bookings"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/cancel_booking"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/create_public_booking"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/create_slot"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/delete_booking"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/delete_slot"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/export_bookings"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/get_available_slots"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/get_booking"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/get_dashboard"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/get_day_slots"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/get_settings"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/get_ticket_qr"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/get_user_bookings"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/list_bookings"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/manage_kams"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/manage_packages"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/manage_users"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/quick_edit_booking"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/refresh_settings"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/replace_day_slots"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/update_slot"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingDesk/internal/config"
	bookingRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/booking"
	kamRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/kam"
	settingsRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/slot"
	packageRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/trainingpackage"
	userRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/user"
	bookingsService "github.com/m04kA/SMC-TrainingDesk/internal/service/bookings"
	directoryService "github.com/m04kA/SMC-TrainingDesk/internal/service/directory"
	settingsService "github.com/m04kA/SMC-TrainingDesk/internal/service/settings"
	slotsService "github.com/m04kA/SMC-TrainingDesk/internal/service/slots"
	snapshotService "github.com/m04kA/SMC-TrainingDesk/internal/service/snapshot"
	createPublicBookingUC "github.com/m04kA/SMC-TrainingDesk/internal/usecase/create_public_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TrainingDesk/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TrainingDesk/pkg/database"
	"github.com/m04kA/SMC-TrainingDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingDesk/pkg/logger"
	"github.com/m04kA/SMC-TrainingDesk/pkg/metrics"
	"github.com/m04kA/SMC-TrainingDesk/pkg/txmanager"
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

	log.Info("Starting SMC-TrainingDesk...")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone: %v", err)
	}

	// Метрики (nil, если выключены: все методы nil-safe)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db, log); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	kamRepository := kamRepo.NewRepository(wrappedDB)
	packageRepository := packageRepo.NewRepository(wrappedDB)

	// Какие необязательные колонки есть в bookings; без проверки считаем схему полной
	if schema, err := bookingRepository.Probe(startupCtx); err != nil {
		log.Warn("Failed to probe bookings schema, assuming full schema: %v", err)
	} else {
		log.Info("Bookings schema probed: phone_number=%t", schema.PhoneNumber)
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, log)
	if err := settingsSvc.Load(startupCtx); err != nil {
		log.Warn("Failed to load settings, using defaults: %v", err)
	}

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		&bookingsService.RealTimeProvider{},
		log,
		bookingsService.ExportOptions{
			Location:      location,
			PublicBaseURL: cfg.Booking.PublicBaseURL,
		},
	)
	slotSvc := slotsService.NewService(
		slotRepository,
		bookingRepository,
		settingsSvc,
		txMgr,
		log,
	)
	directorySvc := directoryService.NewService(
		userRepository,
		kamRepository,
		packageRepository,
		log,
	)
	snapshotSvc := snapshotService.NewService(
		bookingRepository,
		userRepository,
		kamRepository,
		packageRepository,
		slotRepository,
		settingsSvc,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		bookingRepository,
		settingsSvc,
		location,
		log,
	)
	createPublicBookingUseCase := createPublicBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		settingsSvc,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := get_available_slots.NewHandler(getAvailableSlotsUseCase, log)
	createPublicBooking := create_public_booking.NewHandler(createPublicBookingUseCase, log)
	getTicketQR := get_ticket_qr.NewHandler(bookingSvc, log)

	createBooking := create_booking.NewHandler(bookingSvc, log)
	getBooking := get_booking.NewHandler(bookingSvc, log)
	listBookings := list_bookings.NewHandler(bookingSvc, log)
	publicRequests := list_bookings.NewPublicRequestsHandler(bookingSvc, log)
	getUserBookings := get_user_bookings.NewHandler(bookingSvc, log)
	updateBooking := update_booking.NewHandler(bookingSvc, log)
	quickEditBooking := quick_edit_booking.NewHandler(bookingSvc, log)
	cancelBooking := cancel_booking.NewHandler(bookingSvc, log)
	deleteBooking := delete_booking.NewHandler(bookingSvc, log)
	bulkDeleteBookings := bulk_delete_bookings.NewHandler(bookingSvc, log)
	exportBookings := export_bookings.NewHandler(bookingSvc, log)

	getDaySlots := get_day_slots.NewHandler(slotSvc, log)
	createSlot := create_slot.NewHandler(slotSvc, log)
	updateSlot := update_slot.NewHandler(slotSvc, log)
	deleteSlot := delete_slot.NewHandler(slotSvc, log)
	replaceDaySlots := replace_day_slots.NewHandler(slotSvc, log)

	getSettings := get_settings.NewHandler(settingsSvc, log)
	updateSettings := update_settings.NewHandler(settingsSvc, log)
	refreshSettings := refresh_settings.NewHandler(settingsSvc, log)

	users := manage_users.NewHandler(directorySvc, log)
	kams := manage_kams.NewHandler(directorySvc, log)
	packages := manage_packages.NewHandler(directorySvc, log)
	getDashboard := get_dashboard.NewHandler(snapshotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница записи, без заголовков пользователя)
	// ============================================================

	api.HandleFunc("/public/settings", getSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/public/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/public/bookings", createPublicBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/public/bookings/{bookingId}/qr", getTicketQR.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-Name, роль из X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Дашборд ---
	protected.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Статичные пути регистрируются раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/public-requests", publicRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/bulk-delete", bulkDeleteBookings.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", quickEditBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Слоты ---
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{date}", getDaySlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{date}", replaceDaySlots.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{date}/{slotId}", updateSlot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/slots/{date}/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Настройки ---
	protected.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/settings/refresh", refreshSettings.Handle).Methods(http.MethodPost)

	// --- Справочники ---
	protected.HandleFunc("/users", users.List).Methods(http.MethodGet)
	protected.HandleFunc("/users", users.Create).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}", users.Get).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}", users.Update).Methods(http.MethodPut)
	protected.HandleFunc("/users/{userId}", users.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/kams", kams.List).Methods(http.MethodGet)
	protected.HandleFunc("/kams", kams.Create).Methods(http.MethodPost)
	protected.HandleFunc("/kams/{kamId}", kams.Rename).Methods(http.MethodPut)
	protected.HandleFunc("/kams/{kamId}", kams.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/packages", packages.List).Methods(http.MethodGet)
	protected.HandleFunc("/packages", packages.Create).Methods(http.MethodPost)
	protected.HandleFunc("/packages/{packageId}", packages.Update).Methods(http.MethodPut)
	protected.HandleFunc("/packages/{packageId}", packages.Delete).Methods(http.MethodDelete)

	// Фоновое обновление снимка дашборда
	pollerCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	go snapshotSvc.RunPoller(pollerCtx, time.Duration(cfg.Booking.PollIntervalSeconds)*time.Second)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopPoller()
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
