package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createReservationHandler "github.com/m04kA/WatReservationService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/WatReservationService/internal/api/handlers/delete_reservation"
	getReservationHandler "github.com/m04kA/WatReservationService/internal/api/handlers/get_reservation"
	getWatLoadHandler "github.com/m04kA/WatReservationService/internal/api/handlers/get_wat_load"
	getWatReservationsHandler "github.com/m04kA/WatReservationService/internal/api/handlers/get_wat_reservations"
	updateReservationHandler "github.com/m04kA/WatReservationService/internal/api/handlers/update_reservation"
	"github.com/m04kA/WatReservationService/internal/api/middleware"
	"github.com/m04kA/WatReservationService/internal/config"
	"github.com/m04kA/WatReservationService/internal/domain"
	reservationRepo "github.com/m04kA/WatReservationService/internal/infra/storage/reservation"
	identityServiceClient "github.com/m04kA/WatReservationService/internal/integrations/identityservice"
	"github.com/m04kA/WatReservationService/internal/integrations/notifications"
	"github.com/m04kA/WatReservationService/internal/service/notifier"
	reservationsService "github.com/m04kA/WatReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/WatReservationService/internal/usecase/create_reservation"
	getTempleLoadUC "github.com/m04kA/WatReservationService/internal/usecase/get_temple_load"
	updateReservationUC "github.com/m04kA/WatReservationService/internal/usecase/update_reservation"
	"github.com/m04kA/WatReservationService/pkg/dbmetrics"
	"github.com/m04kA/WatReservationService/pkg/keylock"
	"github.com/m04kA/WatReservationService/pkg/logger"
	"github.com/m04kA/WatReservationService/pkg/metrics"
	"github.com/m04kA/WatReservationService/pkg/txmanager"
)

// reservationStore общий набор методов postgres и in-memory хранилищ
type reservationStore interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	GetByTemple(ctx context.Context, templeID string) ([]*domain.Reservation, error)
	GetOverlapping(ctx context.Context, templeID string, window domain.DateRange) ([]*domain.Reservation, error)
	GetByCremationDate(ctx context.Context, templeID string, date time.Time) ([]*domain.Reservation, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ReservationPatch) (*domain.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type observer interface {
	ObserveAdmission(result, reason string)
	ObserveNotification(kind, outcome string)
}

type gateway interface {
	Send(ctx context.Context, title, description, recipientID string) error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML configuration file")
	flag.Parse()

	// .env необязателен, переменные окружения могут прийти из оркестратора
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting WatReservationService...")
	log.Info("Configuration loaded from %s (storage=%s)", *configPath, cfg.Storage.Driver)

	location, err := cfg.Admission.Location()
	if err != nil {
		log.Fatal("Invalid admission timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		stats            observer = metrics.Noop{}
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		stats = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище бронирований
	var (
		store reservationStore
		txMgr txManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store = reservationRepo.NewMemoryRepository()
		txMgr = txmanager.NewNoop()
		log.Warn("Using in-memory storage, reservations are lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")

			store = reservationRepo.NewRepository(wrappedDB)
			txMgr = txmanager.NewTransactionManager(wrappedDB)
		} else {
			store = reservationRepo.NewRepository(db)
			txMgr = txmanager.NewSQLTransactionManager(db)
		}
	}

	// Блокировки храмов
	var locker keylock.Locker = keylock.NewLocal()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		locker = keylock.NewRedis(
			redisClient,
			cfg.Redis.KeyPrefix,
			time.Duration(cfg.Redis.LockTTL)*time.Millisecond,
			time.Duration(cfg.Redis.RetryInterval)*time.Millisecond,
		)
		log.Info("Distributed wat locks enabled (redis=%s)", cfg.Redis.Addr)
	}

	// Инициализируем интеграционных клиентов
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Identity client initialized (url=%s timeout=%ds)", cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	var (
		notificationGateway gateway = notifications.NewLogGateway(log)
		publisher           *notifications.Publisher
	)
	if cfg.Notifications.Enabled {
		publisher = notifications.NewPublisher(
			cfg.Notifications.URL,
			cfg.Notifications.Queue,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			cfg.Notifications.BufferSize,
			log,
		)
		notificationGateway = publisher
		log.Info("Notifications are published to queue %s", cfg.Notifications.Queue)
	} else {
		log.Warn("Notifications disabled, messages are only logged")
	}

	// Инициализируем сервисы
	notifierSvc := notifier.NewService(notificationGateway, stats, log)
	reservationSvc := reservationsService.NewService(store, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		store,
		identityClient,
		notifierSvc,
		locker,
		txMgr,
		stats,
		createReservationUC.Options{
			Policy:   domain.AdmissionPolicy{AllowSameDayCremation: cfg.Admission.AllowSameDayCremation},
			Location: location,
		},
		log,
	)

	updateReservationUseCase := updateReservationUC.NewUseCase(
		store,
		identityClient,
		notifierSvc,
		locker,
		txMgr,
		updateReservationUC.Options{StrictTerminal: cfg.Lifecycle.StrictTerminal},
		log,
	)

	getTempleLoadUseCase := getTempleLoadUC.NewUseCase(store, identityClient, location, log)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	getWatReservations := getWatReservationsHandler.NewHandler(reservationSvc, log)
	getWatLoad := getWatLoadHandler.NewHandler(getTempleLoadUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/wats/{watId}/reservations", getWatReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/wats/{watId}/load", getWatLoad.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	// Отправляем уведомления, оставшиеся в буфере
	if publisher != nil {
		if err := publisher.Close(shutdownCtx); err != nil {
			log.Error("Notification publisher stopped before draining: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
