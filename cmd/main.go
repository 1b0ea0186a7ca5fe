package main

import (
	"context"
	"database/sql"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/complete_booking"
	confirmPaymentHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_booking_stats"
	getBusinessConfigHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_business_config"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_bookings"
	overrideStatusHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/override_status"
	rejectPaymentHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/reject_payment"
	updateBusinessConfigHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_business_config"
	updatePaymentInfoHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_payment_info"
	uploadPaymentProofHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/upload_payment_proof"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	settingsCache "github.com/m04kA/SMC-SalonBookingService/internal/infra/cache/settings"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/imagehost"
	bookingsService "github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-SalonBookingService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	uploadPaymentProofUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/upload_payment_proof"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/imageproc"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-SalonBookingService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены). Методы *metrics.Metrics допускают nil.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
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

	// Обёртка считает запросы только при включённых метриках
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector,
			time.Duration(cfg.Metrics.PoolStatsInterval)*time.Second, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.New(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Конфигурация салона читается на каждый запрос слотов, redis снимает эту нагрузку
	var configStore settingsService.ConfigStore = settingsRepository
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш не обязателен: при недоступном redis чтение уходит в БД
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Connected to redis at %s", cfg.Redis.Addr)
		}
		cancelPing()

		configStore = settingsCache.NewRepository(
			settingsRepository,
			redisClient,
			time.Duration(cfg.Redis.TTL)*time.Second,
			log,
		)
	}

	// Инициализируем интеграционных клиентов
	imageClient := imagehost.NewClient(
		cfg.ImageHost.URL,
		cfg.ImageHost.APIKey,
		time.Duration(cfg.ImageHost.Timeout)*time.Second,
		log,
	)
	if cfg.ImageHost.APIKey == "" {
		log.Warn("IMAGEHOST_API_KEY is not set, payment proof uploads will fail")
	}
	log.Info("Image host client initialized (timeout=%ds)", cfg.ImageHost.Timeout)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(configStore, log).
		WithDefaults(cfg.Business.Overlay(domain.DefaultBusinessConfig()))

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		metricsCollector,
		bookingsService.RealTimeProvider{},
		bookingsService.Options{
			HoldUnpaidSlots: cfg.Booking.HoldUnpaidSlots,
			Location:        location,
		},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		txMgr,
		metricsCollector,
		createBookingUC.Options{
			HoldUnpaidSlots: cfg.Booking.HoldUnpaidSlots,
			Location:        location,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		getAvailableSlotsUC.Options{
			HoldUnpaidSlots: cfg.Booking.HoldUnpaidSlots,
			Location:        location,
		},
		log,
	)

	uploadPaymentProofUseCase := uploadPaymentProofUC.NewUseCase(
		bookingSvc,
		imageClient,
		imageproc.Options{
			MaxBytes:    cfg.ImageHost.MaxUploadBytes,
			MaxEdge:     cfg.ImageHost.MaxEdge,
			JPEGQuality: cfg.ImageHost.JPEGQuality,
		},
		log,
	)

	// Инициализируем handlers
	getBusinessConfig := getBusinessConfigHandler.NewHandler(settingsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	uploadPaymentProof := uploadPaymentProofHandler.NewHandler(
		uploadPaymentProofUseCase, bookingSvc, cfg.ImageHost.MaxUploadBytes, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	confirmPayment := confirmPaymentHandler.NewHandler(bookingSvc, log)
	rejectPayment := rejectPaymentHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	overrideStatus := overrideStatusHandler.NewHandler(bookingSvc, log)
	updateBusinessConfig := updateBusinessConfigHandler.NewHandler(settingsSvc, log)
	updatePaymentInfo := updatePaymentInfoHandler.NewHandler(settingsSvc, log)

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

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Конфигурация салона: часы работы, реквизиты для перевода
	api.HandleFunc("/config", getBusinessConfig.Handle).Methods(http.MethodGet)

	// Сетка слотов на день
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-User-ID + X-User-Role: admin)
	// Регистрируются раньше клиентских, чтобы /admin/... не совпал с общими шаблонами
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireAdmin)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/confirm-payment", confirmPayment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/reject-payment", rejectPayment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/status", overrideStatus.Handle).Methods(http.MethodPut)

	// --- Конфигурация салона ---
	admin.HandleFunc("/config", getBusinessConfig.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/config", updateBusinessConfig.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/config/payment-info", updatePaymentInfo.Handle).Methods(http.MethodPut)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Чек об оплате: файл или ссылка
	protected.HandleFunc("/bookings/{bookingId}/payment-proof", uploadPaymentProof.Handle).Methods(http.MethodPost)

	// История и предстоящие бронирования пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Ошибки net/http (TLS, обрыв соединений) пишем в общий лог
	serverErrors := log.Writer()
	defer serverErrors.Close()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ErrorLog:     stdlog.New(serverErrors, "http: ", 0),
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
