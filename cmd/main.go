package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_booking"
	changeBookingStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/change_booking_status"
	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_booking"
	deleteScheduleSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_schedule_settings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking"
	getBookingNotificationsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking_notifications"
	getProviderBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_provider_bookings"
	getScheduleSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_schedule_settings"
	getUserBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_user_bookings"
	updateBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_booking"
	updateScheduleSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_schedule_settings"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/notification"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	sellerServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/sellerservice"
	userServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/conflictguard"
	"github.com/m04kA/SMC-AppointmentService/internal/service/notify"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

// Sender отправитель уведомлений, закрываемый при остановке
type Sender interface {
	notify.Notifier
	Close() error
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Загружаем конфигурацию
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from %s", configPath)

	// Часовой пояс, в котором считаются рабочие часы и даты
	zone, err := timewindow.LoadZone(cfg.Scheduling.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Scheduling timezone: %s", zone.Location())

	defaults := domain.SchedulingDefaults{
		WorkStartHour:           cfg.Scheduling.DefaultWorkStartHour,
		WorkEndHour:             cfg.Scheduling.DefaultWorkEndHour,
		SlotStepMinutes:         cfg.Scheduling.SlotStepMinutes,
		AdvanceBookingDays:      cfg.Scheduling.AdvanceBookingDays,
		MinBookingNoticeMinutes: cfg.Scheduling.MinBookingNoticeMinutes,
	}

	// Коллекторы регистрируются всегда, metrics.enabled управляет публикацией
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxRetries(cfg.Database.TxMaxRetries))

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	sellerClient := sellerServiceClient.NewClient(
		cfg.SellerService.URL,
		time.Duration(cfg.SellerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, SellerService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.SellerService.URL, cfg.SellerService.Timeout)

	// Отправка уведомлений
	dispatchTimeout := time.Duration(cfg.Notifier.DispatchTimeout) * time.Second
	var sender Sender
	switch cfg.Notifier.Driver {
	case "kafka":
		sender = notifier.NewKafkaNotifier(cfg.Notifier.Brokers, cfg.Notifier.Topic, dispatchTimeout)
		log.Info("Kafka notifier initialized (brokers=%v, topic=%s)", cfg.Notifier.Brokers, cfg.Notifier.Topic)
	default:
		sender = notifier.NewLogNotifier(log)
		log.Info("Log notifier initialized")
	}

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	// Сервисы
	guard := conflictguard.New(bookingRepository)
	trigger := notify.NewTrigger(
		sender,
		&notify.RealTimeProvider{},
		zone,
		log,
		notify.WithStore(notificationRepository),
		notify.WithRecorder(metricsCollector),
		notify.WithTimeout(dispatchTimeout),
	)
	settingsSvc := settingsService.NewService(settingsRepository, sellerClient, defaults, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		guard,
		sellerClient,
		settingsSvc,
		txMgr,
		trigger,
		metricsCollector,
		zone,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		guard,
		sellerClient,
		userClient,
		settingsSvc,
		txMgr,
		trigger,
		metricsCollector,
		zone,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		sellerClient,
		settingsSvc,
		zone,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, zone, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, zone, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingNotifications := getBookingNotificationsHandler.NewHandler(bookingSvc, notificationRepository, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, zone, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := changeBookingStatusHandler.NewHandler(bookingSvc, changeBookingStatusHandler.ActionConfirm, log)
	rejectBooking := changeBookingStatusHandler.NewHandler(bookingSvc, changeBookingStatusHandler.ActionReject, log)
	completeBooking := changeBookingStatusHandler.NewHandler(bookingSvc, changeBookingStatusHandler.ActionComplete, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, zone, log)
	getScheduleSettings := getScheduleSettingsHandler.NewHandler(settingsSvc, log)
	updateScheduleSettings := updateScheduleSettingsHandler.NewHandler(settingsSvc, log)
	deleteScheduleSettings := deleteScheduleSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(cfg.RequestTimeout()))

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты услуги на дату
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Действующие настройки расписания провайдера
	api.HandleFunc("/providers/{providerId}/settings", getScheduleSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/notifications", getBookingNotifications.Handle).Methods(http.MethodGet)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление провайдером (для владельцев) ---
	protected.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/settings", updateScheduleSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/settings", deleteScheduleSettings.Handle).Methods(http.MethodDelete)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся уже запущенных отправок уведомлений
	trigger.Wait()
	if err := sender.Close(); err != nil {
		log.Error("Failed to close notifier: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
