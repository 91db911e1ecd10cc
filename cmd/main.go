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

	cancelBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/create_booking"
	createRoomBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/create_room_booking"
	deleteBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/delete_booking"
	forceStatusHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/force_status"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_user_bookings"
	updatePaymentHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/update_payment"
	updateStatusHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/update_status"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/config"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/cache"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/calendar"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	couponRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/coupon"
	customerRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/customer"
	employeeRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/employee"
	pointsRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/points"
	settingsRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/settings"
	messengerClient "github.com/m04kA/SMC-SpaBookingService/internal/integrations/messenger"
	telegramClient "github.com/m04kA/SMC-SpaBookingService/internal/integrations/telegram"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SpaBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SpaBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/coupons"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/effects"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/identity"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/notifications"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/points"
	settingsService "github.com/m04kA/SMC-SpaBookingService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
	createRoomBookingUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_room_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

// effectsTimeout ограничение на один фоновый эффект (уведомление, публикация и т.п.)
const effectsTimeout = 10 * time.Second

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

	log.Info("Starting SMC-SpaBookingService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Invalid business timezone %q: %v", cfg.Business.Timezone, err)
	}

	// Счётчики допуска пишутся всегда, наружу отдаются только при включённых метриках
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis (опционально): кэш каталога и настроек
	var (
		redisClient   *redis.Client
		catalogCache  catalogService.Cache
		settingsCache settingsService.Cache
	)
	if cfg.Redis.Enabled {
		connectCtx, cancelConnect := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = cache.Connect(connectCtx, cfg.Redis.URL)
		cancelConnect()
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		catalogCache = cache.NewJSONCache(redisClient, "catalog:")
		settingsCache = cache.NewJSONCache(redisClient, "settings:")
		log.Info("Redis cache enabled (catalog_ttl=%ds, settings_ttl=%ds)", cfg.Cache.CatalogTTL, cfg.Cache.SettingsTTL)
	}

	// Kafka (опционально): события жизненного цикла бронирований
	var publisher interface {
		bookingsService.EventPublisher
		Close() error
	} = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Fatal("Failed to create kafka publisher: %v", err)
		}
		publisher = kafkaPublisher
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	calendarRepository := calendarRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	couponRepository := couponRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	employeeRepository := employeeRepo.NewRepository(wrappedDB)
	pointsRepository := pointsRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Инициализируем интеграционных клиентов
	var (
		messenger     notifications.Messenger
		adminFallback notifications.AdminFallback
	)
	if cfg.Messenger.Enabled {
		messenger = messengerClient.NewClient(
			cfg.Messenger.URL,
			cfg.Messenger.ChannelToken,
			time.Duration(cfg.Messenger.Timeout)*time.Second,
			log,
		)
		log.Info("Messenger client initialized (url=%s, admins=%d)", cfg.Messenger.URL, len(cfg.Messenger.AdminUserIDs))
	}
	if cfg.Telegram.Enabled {
		adminFallback = telegramClient.NewClient(
			cfg.Telegram.URL,
			cfg.Telegram.BotToken,
			cfg.Telegram.AdminChatID,
			time.Duration(cfg.Telegram.Timeout)*time.Second,
		)
		log.Info("Telegram admin fallback initialized")
	}

	// Инициализируем сервисы
	catalogReader := catalogService.NewReader(
		catalogRepository,
		catalogCache,
		time.Duration(cfg.Cache.CatalogTTL)*time.Second,
		log,
	)
	settingsReader := settingsService.NewReader(
		settingsRepository,
		settingsCache,
		time.Duration(cfg.Cache.SettingsTTL)*time.Second,
		log,
	)
	checker := availability.NewChecker(bookingRepository, catalogReader, log)
	couponValidator := coupons.NewValidator(couponRepository, log)
	dispatcher := notifications.NewDispatcher(messenger, cfg.Messenger.AdminUserIDs, adminFallback, settingsReader, log)
	awarder := points.NewAwarder(bookingRepository, pointsRepository, settingsReader, txMgr, log)
	effectsRunner := effects.NewRunner(effectsTimeout, log, nil)
	resolver := identity.NewResolver(cfg.Auth.JWTSecret, cfg.Auth.AdminRole)
	directory := identity.NewDirectory(employeeRepository, log)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		directory,
		dispatcher,
		awarder,
		customerRepository,
		calendarRepository,
		publisher,
		effectsRunner,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogReader,
		settingsReader,
		checker,
		couponValidator,
		customerRepository,
		dispatcher,
		publisher,
		effectsRunner,
		metricsCollector,
		txMgr,
		location,
		log,
	)

	createRoomBookingUseCase := createRoomBookingUC.NewUseCase(
		bookingRepository,
		catalogReader,
		checker,
		couponValidator,
		customerRepository,
		dispatcher,
		publisher,
		effectsRunner,
		metricsCollector,
		txMgr,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		settingsReader,
		checker,
		location,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createRoomBooking := createRoomBookingHandler.NewHandler(createRoomBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateStatus := updateStatusHandler.NewHandler(bookingSvc, log)
	updatePayment := updatePaymentHandler.NewHandler(bookingSvc, log)
	forceStatus := forceStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
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

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		public.Use(limiter.Limit)
		log.Info("Rate limiter enabled for public routes (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Доступные слоты на дату
	public.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(resolver, log))

	// --- Создание бронирований ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/room-bookings", createRoomBooking.Handle).Methods(http.MethodPost)

	// --- Жизненный цикл ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment", updatePayment.Handle).Methods(http.MethodPatch)

	// --- Администрирование ---
	protected.HandleFunc("/bookings/{bookingId}/status", forceStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// История бронирований текущего пользователя
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

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

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
