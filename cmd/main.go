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

	cancelBookingHandler "github.com/d4nchik/VH-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/d4nchik/VH-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/d4nchik/VH-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/d4nchik/VH-BookingService/internal/api/handlers/get_booking"
	getEndTimesHandler "github.com/d4nchik/VH-BookingService/internal/api/handlers/get_end_times"
	getUserBookingsHandler "github.com/d4nchik/VH-BookingService/internal/api/handlers/get_user_bookings"
	getVenueHandler "github.com/d4nchik/VH-BookingService/internal/api/handlers/get_venue"
	getVenueBookingsHandler "github.com/d4nchik/VH-BookingService/internal/api/handlers/get_venue_bookings"
	listVenuesHandler "github.com/d4nchik/VH-BookingService/internal/api/handlers/list_venues"
	quoteBookingHandler "github.com/d4nchik/VH-BookingService/internal/api/handlers/quote_booking"
	"github.com/d4nchik/VH-BookingService/internal/api/middleware"
	"github.com/d4nchik/VH-BookingService/internal/config"
	"github.com/d4nchik/VH-BookingService/internal/infra/cache/venuecache"
	bookingRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/booking"
	venueRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/venue"
	"github.com/d4nchik/VH-BookingService/internal/integrations/paymentservice"
	bookingsService "github.com/d4nchik/VH-BookingService/internal/service/bookings"
	venuesService "github.com/d4nchik/VH-BookingService/internal/service/venues"
	createBookingUC "github.com/d4nchik/VH-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/d4nchik/VH-BookingService/internal/usecase/get_availability"
	getEndTimesUC "github.com/d4nchik/VH-BookingService/internal/usecase/get_end_times"
	quoteBookingUC "github.com/d4nchik/VH-BookingService/internal/usecase/quote_booking"
	"github.com/d4nchik/VH-BookingService/pkg/dbmetrics"
	"github.com/d4nchik/VH-BookingService/pkg/logger"
	"github.com/d4nchik/VH-BookingService/pkg/metrics"
	"github.com/d4nchik/VH-BookingService/pkg/simpletxmanager"
	"github.com/d4nchik/VH-BookingService/pkg/txmanager"
)

// indexRebuildInterval период полной перестройки поискового индекса площадок
const indexRebuildInterval = 5 * time.Minute

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

	log.Info("Starting VH-BookingService...")
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

	// Инициализируем клиента платежного сервиса
	paymentClient := paymentservice.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Payment client initialized (PaymentService=%s timeout=%ds)",
		cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		venueRepository   *venueRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		venueRepository = venueRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		venueRepository = venueRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем кеш снимков площадок (если Redis включен)
	// Консьюмеры кеша собираются в обеих ветках: типизированный nil-указатель
	// в значении интерфейса не прошел бы проверку на nil
	var (
		venueSvc               *venuesService.Service
		bookingSvc             *bookingsService.Service
		getAvailabilityUseCase *getAvailabilityUC.UseCase
		quoteBookingUseCase    *quoteBookingUC.UseCase
		createBookingUseCase   *createBookingUC.UseCase
	)

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

		snapshotCache := venuecache.New(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)

		venueSvc = venuesService.NewService(venueRepository, snapshotCache, log)
		bookingSvc = bookingsService.NewService(bookingRepository, venueRepository, snapshotCache, log)
		getAvailabilityUseCase = getAvailabilityUC.NewUseCase(bookingRepository, venueRepository, snapshotCache, log)
		quoteBookingUseCase = quoteBookingUC.NewUseCase(venueRepository, snapshotCache, log)
		createBookingUseCase = createBookingUC.NewUseCase(
			bookingRepository, venueRepository, snapshotCache, paymentClient, txMgr, log)
	} else {
		log.Info("Redis disabled, venue snapshot cache is off")

		venueSvc = venuesService.NewService(venueRepository, nil, log)
		bookingSvc = bookingsService.NewService(bookingRepository, venueRepository, nil, log)
		getAvailabilityUseCase = getAvailabilityUC.NewUseCase(bookingRepository, venueRepository, nil, log)
		quoteBookingUseCase = quoteBookingUC.NewUseCase(venueRepository, nil, log)
		createBookingUseCase = createBookingUC.NewUseCase(
			bookingRepository, venueRepository, nil, paymentClient, txMgr, log)
	}

	// Остальные use cases
	getEndTimesUseCase := getEndTimesUC.NewUseCase(bookingRepository, venueRepository, log)

	// Первичная сборка поискового индекса, сервис работает и со старым индексом
	if err := venueSvc.RebuildIndex(context.Background()); err != nil {
		log.Error("Initial search index build failed: %v", err)
	}

	// Периодическая перестройка индекса
	stopIndexCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(indexRebuildInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := venueSvc.RebuildIndex(context.Background()); err != nil {
					log.Error("Search index rebuild failed: %v", err)
				}
			case <-stopIndexCh:
				return
			}
		}
	}()

	// Инициализируем handlers
	listVenues := listVenuesHandler.NewHandler(venueSvc, log)
	getVenue := getVenueHandler.NewHandler(venueSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getEndTimes := getEndTimesHandler.NewHandler(getEndTimesUseCase, log)
	quoteBooking := quoteBookingHandler.NewHandler(quoteBookingUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// Каталог площадок с поиском и фильтрами
	api.HandleFunc("/venues", listVenues.Handle).Methods(http.MethodGet)

	// Карточка площадки
	api.HandleFunc("/venues/{venueId}", getVenue.Handle).Methods(http.MethodGet)

	// Доступные даты и слоты площадки
	api.HandleFunc("/venues/{venueId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Допустимые времена окончания для выбранного начала
	api.HandleFunc("/venues/{venueId}/end-times", getEndTimes.Handle).Methods(http.MethodGet)

	// Расчет стоимости бронирования
	api.HandleFunc("/venues/{venueId}/quote", quoteBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для владельцев) ---
	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновые задачи
	close(stopIndexCh)
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
