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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/salabelleza/SPA-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/salabelleza/SPA-BookingService/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/salabelleza/SPA-BookingService/internal/api/handlers/get_admin_bookings"
	getAvailableSlotsHandler "github.com/salabelleza/SPA-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/salabelleza/SPA-BookingService/internal/api/handlers/get_booking"
	getScheduleHandler "github.com/salabelleza/SPA-BookingService/internal/api/handlers/get_schedule"
	getUserBookingsHandler "github.com/salabelleza/SPA-BookingService/internal/api/handlers/get_user_bookings"
	rescheduleBookingHandler "github.com/salabelleza/SPA-BookingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/salabelleza/SPA-BookingService/internal/api/handlers/update_booking_status"
	updateScheduleHandler "github.com/salabelleza/SPA-BookingService/internal/api/handlers/update_schedule"
	"github.com/salabelleza/SPA-BookingService/internal/api/middleware"
	"github.com/salabelleza/SPA-BookingService/internal/config"
	scheduleCache "github.com/salabelleza/SPA-BookingService/internal/infra/cache/schedule"
	bookingRepo "github.com/salabelleza/SPA-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/salabelleza/SPA-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/salabelleza/SPA-BookingService/internal/integrations/servicecatalog"
	bookingsService "github.com/salabelleza/SPA-BookingService/internal/service/bookings"
	scheduleService "github.com/salabelleza/SPA-BookingService/internal/service/schedule"
	createBookingUC "github.com/salabelleza/SPA-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/salabelleza/SPA-BookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/salabelleza/SPA-BookingService/internal/usecase/reschedule_booking"
	"github.com/salabelleza/SPA-BookingService/pkg/dbmetrics"
	"github.com/salabelleza/SPA-BookingService/pkg/logger"
	"github.com/salabelleza/SPA-BookingService/pkg/metrics"
	"github.com/salabelleza/SPA-BookingService/pkg/simpletxmanager"
	"github.com/salabelleza/SPA-BookingService/pkg/txmanager"
)

func main() {
	// A local .env can supply SPA_DB_PASSWORD and SPA_REDIS_PASSWORD
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SPA-BookingService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// Schedule cache is optional
	var schedCache *scheduleCache.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		schedCache = scheduleCache.NewCache(
			redisClient,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			log,
		)
		log.Info("Schedule cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.CacheTTL)
	}

	catalog := catalogClient.NewClient(
		cfg.ServiceCatalog.URL,
		time.Duration(cfg.ServiceCatalog.Timeout)*time.Second,
		log,
	)
	log.Info("Service catalog client initialized (url=%s, timeout=%ds)",
		cfg.ServiceCatalog.URL, cfg.ServiceCatalog.Timeout)

	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

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

	// Services
	var cacheForService scheduleService.ScheduleCache
	if schedCache != nil {
		cacheForService = schedCache
	}
	scheduleSvc := scheduleService.NewService(scheduleRepository, cacheForService, log)
	bookingSvc := bookingsService.NewService(bookingRepository, catalog, nil, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalog,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)

	// Router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Protected routes (X-User-ID header required)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Staff routes
	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireStaff)

	staff.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/admin/bookings", getAdminBookings.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)

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
