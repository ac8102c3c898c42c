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

	adminCalendarHandler "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers/admin_calendar"
	adminCancelBookingHandler "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers/admin_cancel_booking"
	adminCompleteBookingHandler "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers/admin_complete_booking"
	adminMarkNoShowHandler "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers/admin_mark_no_show"
	adminRescheduleBookingHandler "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers/admin_reschedule_booking"
	cancelBookingHandler "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers/get_booking"
	getMyBookingsHandler "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/handlers/get_my_bookings"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/middleware"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/config"
	bookingRepo "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/infra/storage/booking"
	scheduleRepo "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/infra/storage/schedule"
	catalogServiceClient "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/integrations/catalogservice"
	bookingsService "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/service/bookings"
	createBookingUC "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/usecase/reschedule_booking"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/dbmetrics"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/logger"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/metrics"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/simpletxmanager"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/txmanager"
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

	log.Info("Starting salon-booking service...")

	// Референсная таймзона салона: все даты расписаний трактуются в ней
	location, err := cfg.Server.Location()
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}
	log.Info("Reference timezone: %s", location)

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Клиент каталога услуг и персонала
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Менеджер транзакций: пары проверка-мутация и смены статусов
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &getAvailableSlotsUC.RealTimeProvider{}

	// Сервис леджера и статусной машины
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUsecase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		timeProvider,
		log,
	)
	createBookingUseCase := createBookingUC.NewUsecase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		txMgr,
		timeProvider,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUsecase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		txMgr,
		timeProvider,
		log,
	)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	adminCancelBooking := adminCancelBookingHandler.NewHandler(bookingSvc, log)
	adminMarkNoShow := adminMarkNoShowHandler.NewHandler(bookingSvc, log)
	adminCompleteBooking := adminCompleteBookingHandler.NewHandler(bookingSvc, log)
	adminRescheduleBooking := adminRescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, location, log)
	adminCalendar := adminCalendarHandler.NewHandler(bookingSvc, location, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Публичные роуты
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Роуты клиента (требуют X-User-ID)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/me/bookings", getMyBookings.Handle).Methods(http.MethodGet)

	// Роуты администратора (требуют X-User-Role: admin)
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly)

	admin.HandleFunc("/bookings/{bookingId}/cancel", adminCancelBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/no-show", adminMarkNoShow.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/complete", adminCompleteBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/reschedule", adminRescheduleBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/calendar", adminCalendar.Handle).Methods(http.MethodGet)

	// HTTP сервер
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
