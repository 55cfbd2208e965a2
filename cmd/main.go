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

	assignStaffServiceHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/assign_staff_service"
	bookDaycareSessionHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/book_daycare_session"
	cancelAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/cancel_appointment"
	createActivityLogHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/create_activity_log"
	createAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/create_appointment"
	createAvailabilityBlockHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/create_availability_block"
	createDaycareSessionHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/create_daycare_session"
	createServiceHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/create_service"
	deleteActivityLogHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/delete_activity_log"
	deleteAvailabilityBlockHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/delete_availability_block"
	deleteDaycareBookingHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/delete_daycare_booking"
	deleteDaycareSessionHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/delete_daycare_session"
	deleteServiceHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/delete_service"
	findAvailableSlotsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/find_available_slots"
	getActivityLogHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_activity_log"
	getAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_appointment"
	getDaycareBookingHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_daycare_booking"
	getDaycareSessionHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_daycare_session"
	getServiceHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_service"
	getSlotConfigHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_slot_config"
	listActivityLogsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_activity_logs"
	listAppointmentsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_appointments"
	listAvailabilityBlocksHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_availability_blocks"
	listDaycareBookingsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_daycare_bookings"
	listDaycareSessionsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_daycare_sessions"
	listServiceStaffHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_service_staff"
	listServicesHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_services"
	revokeStaffServiceHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/revoke_staff_service"
	updateActivityLogHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/update_activity_log"
	updateAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/update_appointment"
	updateDaycareBookingHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/update_daycare_booking"
	updateDaycareSessionHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/update_daycare_session"
	updateServiceHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/update_service"
	updateSlotConfigHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/update_slot_config"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/config"
	"github.com/m04kA/SMC-PetCareService/internal/infra/lock"
	activityLogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/activitylog"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	daycareRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/daycare"
	slotConfigRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/slotconfig"
	petRegistryClient "github.com/m04kA/SMC-PetCareService/internal/integrations/petregistry"
	activityLogsService "github.com/m04kA/SMC-PetCareService/internal/service/activitylogs"
	appointmentsService "github.com/m04kA/SMC-PetCareService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-PetCareService/internal/service/availability"
	catalogService "github.com/m04kA/SMC-PetCareService/internal/service/catalog"
	daycareService "github.com/m04kA/SMC-PetCareService/internal/service/daycare"
	slotConfigService "github.com/m04kA/SMC-PetCareService/internal/service/slotconfig"
	bookDaycareSessionUC "github.com/m04kA/SMC-PetCareService/internal/usecase/book_daycare_session"
	createAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
	findAvailableSlotsUC "github.com/m04kA/SMC-PetCareService/internal/usecase/find_available_slots"
	updateAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/update_appointment"
	updateDaycareBookingUC "github.com/m04kA/SMC-PetCareService/internal/usecase/update_daycare_booking"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

// locker блокировка расписания специалиста: Redis или no-op
type locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Unlock(ctx context.Context, key, token string) error
	Close() error
}

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

	log.Info("Starting SMC-PetCareService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load day location %q: %v", cfg.Scheduling.DayLocation, err)
	}

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

	// Обёртка БД: без коллектора метрик инструментирование отключено
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Блокировки расписания специалистов
	var scheduleLock locker = lock.NoopLock{}
	if cfg.Redis.Enabled {
		redisLock, err := lock.NewRedisLock(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		scheduleLock = redisLock
		log.Info("Redis schedule locks enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.LockTTL())
	}
	defer scheduleLock.Close()

	// Инициализируем интеграционных клиентов
	petClient := petRegistryClient.NewClient(
		cfg.PetRegistry.URL,
		time.Duration(cfg.PetRegistry.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PetRegistry=%s timeout=%ds)",
		cfg.PetRegistry.URL, cfg.PetRegistry.Timeout)

	// Инициализируем репозитории
	activityLogRepository := activityLogRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	daycareRepository := daycareRepo.NewRepository(wrappedDB)
	slotConfigRepository := slotConfigRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, catalogRepository, log)
	slotConfigSvc := slotConfigService.NewService(
		slotConfigRepository,
		catalogRepository,
		cfg.Scheduling.DefaultStepMinutes,
		log,
	)
	daycareSvc := daycareService.NewService(daycareRepository, txMgr, metricsCollector, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	activityLogSvc := activityLogsService.NewService(
		activityLogRepository,
		petClient,
		daycareRepository,
		appointmentRepository,
		log,
	)

	// Инициализируем use cases
	findAvailableSlotsUseCase := findAvailableSlotsUC.NewUseCase(
		catalogRepository,
		availabilityRepository,
		appointmentRepository,
		slotConfigRepository,
		cfg.Scheduling.DefaultStepMinutes,
		location,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		catalogRepository,
		petClient,
		txMgr,
		scheduleLock,
		cfg.Redis.LockTTL(),
		location,
		metricsCollector,
		log,
	)

	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		catalogRepository,
		txMgr,
		scheduleLock,
		cfg.Redis.LockTTL(),
		location,
		metricsCollector,
		log,
	)

	bookDaycareSessionUseCase := bookDaycareSessionUC.NewUseCase(
		daycareRepository,
		petClient,
		txMgr,
		metricsCollector,
		log,
	)

	updateDaycareBookingUseCase := updateDaycareBookingUC.NewUseCase(
		daycareRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	findAvailableSlots := findAvailableSlotsHandler.NewHandler(findAvailableSlotsUseCase, location, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)

	createAvailabilityBlock := createAvailabilityBlockHandler.NewHandler(availabilitySvc, log)
	listAvailabilityBlocks := listAvailabilityBlocksHandler.NewHandler(availabilitySvc, log)
	deleteAvailabilityBlock := deleteAvailabilityBlockHandler.NewHandler(availabilitySvc, log)

	getSlotConfig := getSlotConfigHandler.NewHandler(slotConfigSvc, log)
	updateSlotConfig := updateSlotConfigHandler.NewHandler(slotConfigSvc, log)

	createDaycareSession := createDaycareSessionHandler.NewHandler(daycareSvc, log)
	listDaycareSessions := listDaycareSessionsHandler.NewHandler(daycareSvc, log)
	getDaycareSession := getDaycareSessionHandler.NewHandler(daycareSvc, log)
	updateDaycareSession := updateDaycareSessionHandler.NewHandler(daycareSvc, log)
	deleteDaycareSession := deleteDaycareSessionHandler.NewHandler(daycareSvc, log)

	bookDaycareSession := bookDaycareSessionHandler.NewHandler(bookDaycareSessionUseCase, log)
	listDaycareBookings := listDaycareBookingsHandler.NewHandler(daycareSvc, log)
	getDaycareBooking := getDaycareBookingHandler.NewHandler(daycareSvc, log)
	updateDaycareBooking := updateDaycareBookingHandler.NewHandler(updateDaycareBookingUseCase, log)
	deleteDaycareBooking := deleteDaycareBookingHandler.NewHandler(daycareSvc, log)

	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	listServiceStaff := listServiceStaffHandler.NewHandler(catalogSvc, log)
	assignStaffService := assignStaffServiceHandler.NewHandler(catalogSvc, log)
	revokeStaffService := revokeStaffServiceHandler.NewHandler(catalogSvc, log)

	createActivityLog := createActivityLogHandler.NewHandler(activityLogSvc, log)
	listActivityLogs := listActivityLogsHandler.NewHandler(activityLogSvc, log)
	getActivityLog := getActivityLogHandler.NewHandler(activityLogSvc, log)
	updateActivityLog := updateActivityLogHandler.NewHandler(activityLogSvc, log)
	deleteActivityLog := deleteActivityLogHandler.NewHandler(activityLogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid rate limit configuration: %v", err)
		}
		rateLimiter := middleware.NewRateLimiter(
			cfg.RateLimit.RPS,
			cfg.RateLimit.Burst,
			middleware.WithTrustedProxies(trustedProxies),
			middleware.WithIdleTTL(time.Duration(cfg.RateLimit.IdleTTL)*time.Second),
		)
		api.Use(rateLimiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d, trusted proxies=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst, len(trustedProxies))
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты для записи
	api.HandleFunc("/appointments/available-slots", findAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог услуг и квалифицированные специалисты
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/staff", listServiceStaff.Handle).Methods(http.MethodGet)

	// Действующий шаг слотов услуги
	api.HandleFunc("/services/{serviceId}/slot-config", getSlotConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на услуги ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}", cancelAppointment.Handle).Methods(http.MethodDelete)

	// --- Каталог услуг (для администраторов) ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/staff/{staffId}/services/{serviceId}", assignStaffService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/staff/{staffId}/services/{serviceId}", revokeStaffService.Handle).Methods(http.MethodDelete)

	// --- Окна доступности специалистов ---
	protected.HandleFunc("/staff/{staffId}/availability", createAvailabilityBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{staffId}/availability", listAvailabilityBlocks.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}/availability/{blockId}", deleteAvailabilityBlock.Handle).Methods(http.MethodDelete)

	// --- Настройка шага слотов (для администраторов) ---
	protected.HandleFunc("/slot-config", updateSlotConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}/slot-config", updateSlotConfig.Handle).Methods(http.MethodPut)

	// --- Смены дневного пребывания ---
	protected.HandleFunc("/daycare-sessions", createDaycareSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/daycare-sessions", listDaycareSessions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/daycare-sessions/{sessionId}", getDaycareSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/daycare-sessions/{sessionId}", updateDaycareSession.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/daycare-sessions/{sessionId}", deleteDaycareSession.Handle).Methods(http.MethodDelete)

	// --- Бронирования дневного пребывания ---
	protected.HandleFunc("/daycare-bookings", bookDaycareSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/daycare-bookings", listDaycareBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/daycare-bookings/{bookingId}", getDaycareBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/daycare-bookings/{bookingId}", updateDaycareBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/daycare-bookings/{bookingId}", deleteDaycareBooking.Handle).Methods(http.MethodDelete)

	// --- Журнал активностей питомцев ---
	protected.HandleFunc("/activity-logs", createActivityLog.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/activity-logs", listActivityLogs.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/activity-logs/{logId}", getActivityLog.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/activity-logs/{logId}", updateActivityLog.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/activity-logs/{logId}", deleteActivityLog.Handle).Methods(http.MethodDelete)

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
