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
	"github.com/redis/go-redis/v9"

	addOperationPhotoHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/add_operation_photo"
	appointmentTransitionHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/appointment_transition"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/complete_appointment"
	counterProposeHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/counter_propose"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	createCustomerHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_customer"
	createServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_service"
	createStaffHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_staff"
	deleteAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getCategoriesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_categories"
	getCustomerHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_customer"
	getCustomerAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_customer_appointments"
	getCustomerOperationsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_customer_operations"
	getReportHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_report"
	getServicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_services"
	getShopSettingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_shop_settings"
	getShopAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_shop_appointments"
	getShopStaffHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_shop_staff"
	getStaffHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_staff"
	removeOperationPhotoHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/remove_operation_photo"
	searchCustomersHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/search_customers"
	updateOperationHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_operation"
	updateServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_service"
	updateShopSettingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_shop_settings"
	updateStaffHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_staff"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	catalogCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/catalog"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	operationRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/operation"
	reportRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/report"
	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	customersService "github.com/m04kA/SMC-SalonService/internal/service/customers"
	reportsService "github.com/m04kA/SMC-SalonService/internal/service/reports"
	shopsService "github.com/m04kA/SMC-SalonService/internal/service/shops"
	staffService "github.com/m04kA/SMC-SalonService/internal/service/staff"
	completeAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/complete_appointment"
	createAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/tracing"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := config.PathFromEnv()
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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from %s", configPath)

	// Трейсинг
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	// Настраиваем connection pool
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// С выключенными метриками обёртка работает как обычный *sql.DB
	db := dbmetrics.WrapWithDefault(sqlDB, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(db)

	// Redis кэш каталога (опционально)
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// Кэш не обязателен: при недоступном Redis запросы идут в БД
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
		}
	}
	var cache *catalogCache.Cache
	if redisClient != nil {
		cache = catalogCache.New(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second, metricsCollector, log)
	}

	// Kafka публикация событий (опционально)
	var publisher interface {
		PublishStatusChanged(ctx context.Context, event events.StatusChanged) error
		Close() error
	} = events.NoopPublisher{}
	if brokers := events.SplitBrokers(cfg.Kafka.Brokers); len(brokers) > 0 {
		writer := events.NewKafkaWriter(brokers, time.Duration(cfg.Kafka.WriteTimeout)*time.Second)
		publisher = events.NewPublisher(writer, cfg.Kafka.StatusChangedTopic, metricsCollector)
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", brokers, cfg.Kafka.StatusChangedTopic)
	}
	defer publisher.Close()

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(db)
	shopRepository := shopRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)
	customerRepository := customerRepo.NewRepository(db)
	operationRepository := operationRepo.NewRepository(db)
	staffRepository := staffRepo.NewRepository(db)
	reportRepository := reportRepo.NewRepository(db)

	accessChecker := access.NewChecker(shopRepository, staffRepository, customerRepository, log)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		accessChecker,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, cache, accessChecker, log)
	customerSvc := customersService.NewService(customerRepository, operationRepository, accessChecker, txMgr, log)
	staffSvc := staffService.NewService(staffRepository, accessChecker, log)
	reportSvc := reportsService.NewService(reportRepository, accessChecker, log)
	shopSvc := shopsService.NewService(shopRepository, accessChecker, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		shopRepository,
		catalogRepository,
		customerRepository,
		staffRepository,
		accessChecker,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	completeAppointmentUseCase := completeAppointmentUC.NewUseCase(
		appointmentRepository,
		operationRepository,
		accessChecker,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		shopRepository,
		catalogRepository,
		staffRepository,
		cfg.Booking.SlotStepMinutes,
		log,
	)

	// Инициализируем handlers
	getShopSettings := getShopSettingsHandler.NewHandler(shopSvc, log)
	getCategories := getCategoriesHandler.NewHandler(catalogSvc, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)

	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentSvc, log)
	confirmAppointment := appointmentTransitionHandler.NewHandler(appointmentSvc.Confirm,
		"PATCH /appointments/{id}/confirm", log)
	undoCancelAppointment := appointmentTransitionHandler.NewHandler(appointmentSvc.UndoCancel,
		"PATCH /appointments/{id}/undo-cancel", log)
	acceptProposal := appointmentTransitionHandler.NewHandler(appointmentSvc.AcceptCounterProposal,
		"PATCH /appointments/{id}/counter-proposal/accept", log)
	declineProposal := appointmentTransitionHandler.NewHandler(appointmentSvc.DeclineCounterProposal,
		"PATCH /appointments/{id}/counter-proposal/decline", log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	counterPropose := counterProposeHandler.NewHandler(appointmentSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(completeAppointmentUseCase, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	getShopAppointments := getShopAppointmentsHandler.NewHandler(appointmentSvc, log)

	createCustomer := createCustomerHandler.NewHandler(customerSvc, log)
	searchCustomers := searchCustomersHandler.NewHandler(customerSvc, log)
	getCustomer := getCustomerHandler.NewHandler(customerSvc, log)
	getCustomerOperations := getCustomerOperationsHandler.NewHandler(customerSvc, log)
	updateOperation := updateOperationHandler.NewHandler(customerSvc, log)
	addOperationPhoto := addOperationPhotoHandler.NewHandler(customerSvc, log)
	removeOperationPhoto := removeOperationPhotoHandler.NewHandler(customerSvc, log)

	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)

	getShopStaff := getShopStaffHandler.NewHandler(staffSvc, log)
	getStaff := getStaffHandler.NewHandler(staffSvc, log)
	createStaff := createStaffHandler.NewHandler(staffSvc, log)
	updateStaff := updateStaffHandler.NewHandler(staffSvc, log)

	getReport := getReportHandler.NewHandler(reportSvc, log)
	updateShopSettings := updateShopSettingsHandler.NewHandler(shopSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

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

	api.HandleFunc("/shops/{shopId}/settings", getShopSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/categories", getCategories.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/undo-cancel", undoCancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/counter-proposal", counterPropose.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/counter-proposal/accept", acceptProposal.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/counter-proposal/decline", declineProposal.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/appointments", getShopAppointments.Handle).Methods(http.MethodGet)

	// --- Клиенты и история ---
	protected.HandleFunc("/shops/{shopId}/customers", createCustomer.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shops/{shopId}/customers", searchCustomers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}", getCustomer.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}/operations", getCustomerOperations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/operations/{operationId}", updateOperation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/operations/{operationId}/photos", addOperationPhoto.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/operations/{operationId}/photos/{photoId}", removeOperationPhoto.Handle).Methods(http.MethodDelete)

	// --- Каталог (для администратора) ---
	protected.HandleFunc("/shops/{shopId}/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shops/{shopId}/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)

	// --- Сотрудники ---
	protected.HandleFunc("/shops/{shopId}/staff", getShopStaff.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/staff", createStaff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{staffId}", getStaff.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}", updateStaff.Handle).Methods(http.MethodPut)

	// --- Настройки салона ---
	protected.HandleFunc("/shops/{shopId}/settings", updateShopSettings.Handle).Methods(http.MethodPatch)

	// --- Отчёты ---
	protected.HandleFunc("/shops/{shopId}/reports", getReport.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      tracing.Handler(r, cfg.Metrics.ServiceName),
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

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
