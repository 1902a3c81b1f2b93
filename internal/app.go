package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	token_adapter "real-estate-marketplace/internal/adapters/jwt"
	logger_adapter "real-estate-marketplace/internal/adapters/logger"
	"real-estate-marketplace/internal/adapters/memory"
	postgres_adapter "real-estate-marketplace/internal/adapters/postgres"
	rabbitmq_adapter "real-estate-marketplace/internal/adapters/rabbitmq"
	redis_adapter "real-estate-marketplace/internal/adapters/redis"
	"real-estate-marketplace/internal/adapters/rest"
	visits_adapter "real-estate-marketplace/internal/adapters/visits"
	"real-estate-marketplace/internal/configs"
	"real-estate-marketplace/internal/constants"
	"real-estate-marketplace/internal/core/port"
	"real-estate-marketplace/internal/core/usecase"
	"real-estate-marketplace/migrations"
	fluentlogger "real-estate-marketplace/pkg/fluent_logger"
	"real-estate-marketplace/pkg/postgres"
	"real-estate-marketplace/pkg/rabbitmq/rabbitmq_common"
	"real-estate-marketplace/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	redis     *redis.Client
	rmqConn   *rabbitmq_common.ConnectionManager
	producer  *rabbitmq_producer.Publisher
	visits    *visits_adapter.DebouncedCounter
	apiServer *rest.Server

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// repositories - набор адаптеров хранения для выбранного драйвера
type repositories struct {
	listings port.ListingStoragePort
	likes    port.LikeRepositoryPort
	bookings port.BookingRepositoryPort
	users    port.UserRepositoryPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig}
	ok := false
	// при ошибке инициализации закрываем то, что уже успели открыть
	defer func() {
		if !ok {
			app.closeResources()
		}
	}()

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: !appConfig.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if appConfig.FluentBit.Enabled {
		app.fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(app.fluentClient, appConfig.AppName, logger_adapter.ParseLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	app.logger = baseLogger.WithFields(port.Fields{"component": "app"})
	app.logger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// --- 2. ХРАНИЛИЩЕ ---
	healthChecks := make(map[string]rest.HealthCheck)

	repos, err := app.initStorage(initCtx)
	if err != nil {
		return nil, err
	}
	if app.dbPool != nil {
		healthChecks["postgres"] = app.dbPool.Ping
	}

	// --- 3. КЭШ КАРТОЧЕК ---
	var listingCache port.ListingCachePort
	if appConfig.Redis.Enabled {
		app.redis, err = redis_adapter.NewClient(initCtx, redis_adapter.Config{
			Addr:     appConfig.Redis.Addr,
			Password: appConfig.Redis.Password,
			DB:       appConfig.Redis.DB,
		})
		if err != nil {
			app.logger.Error("Failed to connect to Redis", err, nil)
			return nil, err
		}
		cacheAdapter, err := redis_adapter.NewListingCache(app.redis, appConfig.Redis.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to create listing cache: %w", err)
		}
		listingCache = cacheAdapter
		healthChecks["redis"] = func(ctx context.Context) error { return app.redis.Ping(ctx).Err() }
		app.logger.Info("Listing cache enabled", port.Fields{"addr": appConfig.Redis.Addr, "ttl": appConfig.Redis.TTL.String()})
	}

	// --- 4. СОБЫТИЯ ---
	var publisher port.EventPublisherPort = rabbitmq_adapter.NoopEventPublisher{}
	if appConfig.RabbitMQ.Enabled {
		rmqLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))
		rmqConfig := rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}

		app.rmqConn, err = rabbitmq_common.NewConnectionManager(rmqConfig, rmqLogger)
		if err != nil {
			app.logger.Error("Failed to connect to RabbitMQ", err, nil)
			return nil, fmt.Errorf("failed to create rabbitmq connection manager: %w", err)
		}
		app.producer, err = rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rmqConfig,
			ExchangeName:             constants.EventsExchangeName,
			ExchangeType:             constants.EventsExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rmqLogger,
		}, app.rmqConn)
		if err != nil {
			return nil, fmt.Errorf("failed to create rabbitmq publisher: %w", err)
		}
		eventAdapter, err := rabbitmq_adapter.NewEventPublisherAdapter(app.producer)
		if err != nil {
			return nil, err
		}
		publisher = eventAdapter
		app.logger.Info("Event publishing enabled", port.Fields{"exchange": constants.EventsExchangeName})
	}

	// --- 5. СЧЕТЧИК ПРОСМОТРОВ ---
	app.visits = visits_adapter.NewDebouncedCounter(repos.listings, visits_adapter.Config{
		Delay:      appConfig.Visits.FlushDelay,
		MaxPending: int64(appConfig.Visits.MaxPending),
	}, baseLogger)

	tokenService, err := token_adapter.NewTokenService(appConfig.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	// --- 6. USE CASES ---
	ttl := appConfig.Auth.AccessTokenTTL
	handlers := rest.Handlers{
		Listings: rest.NewListingHandler(
			usecase.NewFindListingsUseCase(repos.listings),
			usecase.NewGetListingDetailsUseCase(repos.listings, listingCache, app.visits),
			usecase.NewCreateListingUseCase(repos.listings, publisher),
			usecase.NewUpdateListingUseCase(repos.listings, listingCache, publisher),
			usecase.NewDeleteListingUseCase(repos.listings, listingCache, publisher),
			usecase.NewGetOwnerListingsUseCase(repos.listings),
		),
		Likes: rest.NewLikeHandler(
			usecase.NewToggleLikeUseCase(repos.likes, publisher),
			usecase.NewCheckLikeUseCase(repos.likes),
			usecase.NewGetLikedListingsUseCase(repos.likes),
		),
		Bookings: rest.NewBookingHandler(
			usecase.NewCreateBookingUseCase(repos.listings, repos.bookings, publisher),
			usecase.NewGetUserBookingsUseCase(repos.bookings),
			usecase.NewGetOwnerBookingsUseCase(repos.bookings),
			usecase.NewUpdateBookingStatusUseCase(repos.bookings, publisher),
		),
		Auth: rest.NewAuthHandler(
			usecase.NewRegisterUserUseCase(repos.users, tokenService, ttl),
			usecase.NewLoginUserUseCase(repos.users, tokenService, ttl),
			usecase.NewGetCurrentUserUseCase(repos.users),
		),
		Health: rest.NewHealthHandler(healthChecks),
	}
	authMiddleware := rest.NewAuthMiddleware(usecase.NewValidateTokenUseCase(tokenService))

	app.apiServer = rest.NewServer(rest.ServerConfig{
		Port:               appConfig.Rest.Port,
		CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
	}, handlers, authMiddleware, baseLogger)
	app.logger.Info("REST API server configured.", nil)

	ok = true
	return app, nil
}

func (a *App) initStorage(ctx context.Context) (*repositories, error) {
	if a.config.Database.Driver == configs.StorageDriverMemory {
		a.logger.Warn("Using in-memory storage, data will be lost on restart", nil)
		store := memory.NewStore()
		return &repositories{
			listings: memory.NewListingStorage(store),
			likes:    memory.NewLikeRepository(store),
			bookings: memory.NewBookingRepository(store),
			users:    memory.NewUserRepository(store),
		}, nil
	}

	var err error
	a.dbPool, err = postgres.NewClient(ctx, postgres.Config{
		DatabaseURL: a.config.Database.URL,
		MaxConns:    a.config.Database.MaxConns,
	})
	if err != nil {
		a.logger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.logger.Info("Successfully connected to PostgreSQL pool!", nil)

	if err := migrations.Apply(ctx, a.dbPool); err != nil {
		a.logger.Error("Failed to apply migrations", err, nil)
		return nil, err
	}

	listings, err := postgres_adapter.NewPostgresListingStorage(a.dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres listing storage: %w", err)
	}
	likes, err := postgres_adapter.NewPostgresLikeRepository(a.dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres like repository: %w", err)
	}
	bookings, err := postgres_adapter.NewPostgresBookingRepository(a.dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres booking repository: %w", err)
	}
	users, err := postgres_adapter.NewUserRepository(a.dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres user repository: %w", err)
	}
	return &repositories{listings: listings, likes: likes, bookings: bookings, users: users}, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	defer a.closeResources()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("Server failed, shutting down", err, nil)
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	return runErr
}

// closeResources закрывает зависимости в обратном порядке: сначала сбрасываются
// просмотры, пока хранилище еще доступно.
func (a *App) closeResources() {
	if a.logger != nil {
		a.logger.Info("Shutdown sequence initiated...", nil)
	}

	if a.visits != nil {
		a.visits.Close()
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
	}
	if a.rmqConn != nil {
		if err := a.rmqConn.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	if a.logger != nil {
		a.logger.Info("Application shut down gracefully.", nil)
	}

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен, пишем в stdout
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
