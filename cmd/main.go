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

	cancelBookingHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/get_customer_bookings"
	getSalonBookingsHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/get_salon_bookings"
	promotionsHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/promotions"
	rescheduleBookingHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/reschedule_booking"
	reviewsHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/reviews"
	salonServicesHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/salon_services"
	salonsHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/salons"
	sendNotificationHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/send_notification"
	staffHandler "github.com/glowpoint/salon-booking-service/internal/api/handlers/staff"
	"github.com/glowpoint/salon-booking-service/internal/api/middleware"
	"github.com/glowpoint/salon-booking-service/internal/config"
	bookingRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/booking"
	promotionRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/promotion"
	reviewRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/review"
	salonRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salon"
	salonServiceRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/salonservice"
	staffRepo "github.com/glowpoint/salon-booking-service/internal/infra/storage/staff"
	"github.com/glowpoint/salon-booking-service/internal/notify/email"
	"github.com/glowpoint/salon-booking-service/internal/notify/sms"
	"github.com/glowpoint/salon-booking-service/internal/notify/whatsapp"
	bookingsService "github.com/glowpoint/salon-booking-service/internal/service/bookings"
	notificationsService "github.com/glowpoint/salon-booking-service/internal/service/notifications"
	promotionsService "github.com/glowpoint/salon-booking-service/internal/service/promotions"
	reviewsService "github.com/glowpoint/salon-booking-service/internal/service/reviews"
	salonsService "github.com/glowpoint/salon-booking-service/internal/service/salons"
	createBookingUC "github.com/glowpoint/salon-booking-service/internal/usecase/create_booking"
	getAvailabilityUC "github.com/glowpoint/salon-booking-service/internal/usecase/get_availability"
	"github.com/glowpoint/salon-booking-service/pkg/dbmetrics"
	"github.com/glowpoint/salon-booking-service/pkg/logger"
	"github.com/glowpoint/salon-booking-service/pkg/metrics"
	"github.com/glowpoint/salon-booking-service/pkg/simpletxmanager"
	"github.com/glowpoint/salon-booking-service/pkg/txmanager"
)

// systemClock реальный источник времени для сервисов
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
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

	log.Info("Starting salon-booking-service...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		salonRepository        *salonRepo.Repository
		salonServiceRepository *salonServiceRepo.Repository
		staffRepository        *staffRepo.Repository
		reviewRepository       *reviewRepo.Repository
		promotionRepository    *promotionRepo.Repository
	)

	// Интерфейс transaction manager (общий для сервисов и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		salonRepository = salonRepo.NewRepository(wrappedDB)
		salonServiceRepository = salonServiceRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		reviewRepository = reviewRepo.NewRepository(wrappedDB)
		promotionRepository = promotionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		salonRepository = salonRepo.NewRepository(db)
		salonServiceRepository = salonServiceRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		reviewRepository = reviewRepo.NewRepository(db)
		promotionRepository = promotionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем каналы уведомлений
	gatewayTimeout := time.Duration(cfg.Notifications.GatewayTimeout) * time.Second
	channels := []notificationsService.Channel{
		email.NewSender(cfg.Notifications.EmailFrom, log),
		sms.NewSender(cfg.Notifications.SMSGatewayURL, cfg.Notifications.SMSGatewayToken, gatewayTimeout, log),
		whatsapp.NewSender(cfg.Notifications.WhatsAppGatewayURL, gatewayTimeout, log),
	}

	var notificationMetrics notificationsService.MetricsRecorder
	if metricsCollector != nil {
		notificationMetrics = metricsCollector
	}
	notificationSvc := notificationsService.NewService(channels, notificationMetrics, log)
	log.Info("Notification dispatcher initialized with %d channels", len(channels))

	clock := systemClock{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		salonRepository,
		notificationSvc,
		txMgr,
		clock,
		log,
	)
	salonSvc := salonsService.NewService(
		salonRepository,
		salonServiceRepository,
		staffRepository,
		log,
	)
	reviewSvc := reviewsService.NewService(
		reviewRepository,
		salonRepository,
		txMgr,
		log,
	)
	promotionSvc := promotionsService.NewService(
		promotionRepository,
		salonRepository,
		clock,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		salonRepository,
		salonServiceRepository,
		staffRepository,
		notificationSvc,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		salonRepository,
		salonServiceRepository,
		staffRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	salonsH := salonsHandler.NewHandler(salonSvc, log)
	salonServicesH := salonServicesHandler.NewHandler(salonSvc, log)
	staffH := staffHandler.NewHandler(salonSvc, log)
	reviewsH := reviewsHandler.NewHandler(reviewSvc, log)
	promotionsH := promotionsHandler.NewHandler(promotionSvc, log)
	sendNotification := sendNotificationHandler.NewHandler(notificationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчет доступных слотов мастера
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Каталог салонов
	api.HandleFunc("/salons", salonsH.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}", salonsH.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/services", salonServicesH.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/staff", staffH.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/reviews", reviewsH.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/promotions", promotionsH.HandleList).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	protected.HandleFunc("/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Перенос бронирования
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// --- Управление салоном (для владельцев) ---
	// Список бронирований салона
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// Салоны
	protected.HandleFunc("/salons", salonsH.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}", salonsH.HandleUpdate).Methods(http.MethodPatch)
	protected.HandleFunc("/salons/{salonId}", salonsH.HandleDelete).Methods(http.MethodDelete)

	// Услуги салона
	protected.HandleFunc("/salons/{salonId}/services", salonServicesH.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/services/{serviceId}", salonServicesH.HandleUpdate).Methods(http.MethodPatch)
	protected.HandleFunc("/salons/{salonId}/services/{serviceId}", salonServicesH.HandleDelete).Methods(http.MethodDelete)

	// Мастера салона
	protected.HandleFunc("/salons/{salonId}/staff", staffH.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/staff/{staffId}", staffH.HandleUpdate).Methods(http.MethodPatch)
	protected.HandleFunc("/salons/{salonId}/staff/{staffId}", staffH.HandleDelete).Methods(http.MethodDelete)

	// Акции салона
	protected.HandleFunc("/salons/{salonId}/promotions", promotionsH.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/promotions/{promotionId}", promotionsH.HandleUpdate).Methods(http.MethodPatch)
	protected.HandleFunc("/salons/{salonId}/promotions/{promotionId}", promotionsH.HandleDelete).Methods(http.MethodDelete)

	// Отзывы
	protected.HandleFunc("/salons/{salonId}/reviews", reviewsH.HandleCreate).Methods(http.MethodPost)

	// Уведомления
	protected.HandleFunc("/notifications/send", sendNotification.Handle).Methods(http.MethodPost)

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
