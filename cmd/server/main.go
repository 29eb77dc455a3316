package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
	redis "github.com/redis/go-redis/v9"
	zerologlog "github.com/rs/zerolog/log"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"showcase-server/internal/authutils"
	"showcase-server/internal/config"
	"showcase-server/internal/handler"
	"showcase-server/internal/messaging"
	"showcase-server/internal/middleware"
	"showcase-server/internal/repository"
	"showcase-server/internal/service"
	"showcase-server/internal/ws"
	"showcase-server/migrations"
	"showcase-server/pkg/logger"
	"showcase-server/pkg/migration"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	zap.ReplaceGlobals(zapLogger)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel))

	// --- External Connections ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pgPool, err := setupPostgres(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()
	zap.L().Info("Connected to PostgreSQL")

	redisClient, err := setupRedis(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	zap.L().Info("Connected to Redis")

	mqConn, err := connectRabbitMQ(cfg.RabbitMQURL, zapLogger)
	if err != nil {
		zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()
	zap.L().Info("Connected to RabbitMQ")

	// --- Database Migrations ---
	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: ".",
		MigrationsFS:   migrations.FS,
	}, pgPool)
	if err := migrator.Up(ctx); err != nil {
		zap.L().Fatal("Failed to apply database migrations", zap.Error(err))
	}
	zap.L().Info("Database migrations applied")

	// --- Dependency Injection ---
	workspaceRepo := repository.NewPgWorkspaceRepository(pgPool, zapLogger)
	interfaceRepo := repository.NewPgInterfaceRepository(pgPool, zapLogger)
	settingsRepo := repository.NewPgSettingsRepository(pgPool, zapLogger)
	docCache := repository.NewRedisDocumentCache(redisClient, zapLogger)

	publisher, err := messaging.NewRabbitMQInterfaceEventPublisher(mqConn, cfg.UpdateQueueName)
	if err != nil {
		zap.L().Fatal("Failed to create interface event publisher", zap.Error(err))
	}

	workspaceSvc := service.NewWorkspaceService(workspaceRepo, zapLogger)
	interfaceSvc := service.NewInterfaceService(workspaceRepo, interfaceRepo, docCache, publisher, zapLogger)
	contentSvc := service.NewContentService(workspaceRepo, interfaceRepo, docCache, publisher, zapLogger)
	settingsSvc := service.NewSettingsService(workspaceRepo, settingsRepo, zapLogger)

	verifier, err := authutils.NewJWTVerifier(cfg.JWTSecret, zapLogger)
	if err != nil {
		zap.L().Fatal("Failed to create JWT verifier", zap.Error(err))
	}

	// WebSocket hub plus the consumer that feeds it from the update queue.
	connManager := ws.NewConnectionManager(zerologlog.Logger)
	wsHandler := ws.NewWebSocketHandler(connManager, verifier.VerifyToken, zerologlog.Logger)
	updateConsumer, err := messaging.NewConsumer(mqConn, connManager, cfg.UpdateQueueName)
	if err != nil {
		zap.L().Fatal("Failed to create update consumer", zap.Error(err))
	}

	apiHandler := handler.NewHandler(workspaceSvc, interfaceSvc, contentSvc, settingsSvc, zapLogger)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.ZapLoggingMiddleware(zapLogger))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		zap.L().Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/ws/interfaces/:interfaceID", wsHandler.ServeWS)
	apiHandler.RegisterRoutes(router, verifier.VerifyToken)

	// Prometheus middleware goes on after the routes are registered.
	p.Use(router)

	// --- Start Background Workers (Consumers) ---
	go func() {
		zap.L().Info("Starting interface update consumer...")
		if err := updateConsumer.StartConsuming(); err != nil {
			zap.L().Error("Interface update consumer stopped with error", zap.Error(err))
		} else {
			zap.L().Info("Interface update consumer stopped gracefully.")
		}
	}()

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	updateConsumer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// setupPostgres initializes the PostgreSQL connection pool with retry logic.
func setupPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	zap.L().Debug("Setting up PostgreSQL connection...")

	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}

	var pool *pgxpool.Pool
	var lastErr error
	maxRetries := 50
	retryDelay := 3 * time.Second

	zap.L().Info("Attempting to connect to PostgreSQL", zap.Int("max_retries", maxRetries), zap.Duration("retry_delay", retryDelay))

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		connectCtx, connectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		pool, err = pgxpool.NewWithConfig(connectCtx, poolConfig)
		connectCancel()

		if err != nil {
			lastErr = fmt.Errorf("unable to create postgres connection pool (attempt %d/%d): %w", attempt, maxRetries, err)
			zap.L().Warn("Postgres connection pool creation failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Error(err),
			)
			if i < maxRetries-1 {
				time.Sleep(retryDelay)
			}
			continue
		}

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = pool.Ping(pingCtx)
		pingCancel()

		if err == nil {
			zap.L().Info("Successfully connected and pinged PostgreSQL", zap.Int("attempt", attempt))
			return pool, nil
		}

		pool.Close()
		lastErr = fmt.Errorf("unable to ping postgres database (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Postgres ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	zap.L().Error("Failed to connect to PostgreSQL after all retries", zap.Int("attempts", maxRetries), zap.Error(lastErr))
	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", maxRetries, lastErr)
}

// setupRedis initializes the Redis client with retry logic.
func setupRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	zap.L().Debug("Setting up Redis connection...")
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	zap.L().Info("Redis connection options configured", zap.String("address", redisOpts.Addr), zap.Int("db", redisOpts.DB))

	var client *redis.Client
	var lastErr error
	maxRetries := 50
	retryDelay := 3 * time.Second

	zap.L().Info("Attempting to connect and ping Redis", zap.Int("max_retries", maxRetries), zap.Duration("retry_delay", retryDelay))

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		client = redis.NewClient(redisOpts)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := client.Ping(pingCtx).Result()
		pingCancel()

		if err == nil {
			zap.L().Info("Successfully connected and pinged Redis", zap.Int("attempt", attempt))
			return client, nil
		}

		client.Close()
		lastErr = fmt.Errorf("unable to ping redis (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Redis ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	zap.L().Error("Failed to connect to Redis after all retries", zap.Int("attempts", maxRetries), zap.Error(lastErr))
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxRetries, lastErr)
}

// connectRabbitMQ connects to RabbitMQ with retry logic.
func connectRabbitMQ(url string, logger *zap.Logger) (*amqp091.Connection, error) {
	var conn *amqp091.Connection
	var err error
	maxRetries := 50
	retryDelay := 5 * time.Second
	logger.Info("Attempting to connect to RabbitMQ",
		zap.String("url", maskRabbitMQURL(url)),
		zap.Int("max_retries", maxRetries),
		zap.Duration("retry_delay", retryDelay),
	)
	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		conn, err = amqp091.Dial(url)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", maxRetries),
			)
			go func() {
				notifyClose := make(chan *amqp091.Error)
				conn.NotifyClose(notifyClose)
				closeErr := <-notifyClose
				if closeErr != nil {
					logger.Error("RabbitMQ connection closed unexpectedly", zap.Error(closeErr))
				} else {
					logger.Info("RabbitMQ connection closed gracefully.")
				}
			}()
			return conn, nil
		}
		logger.Warn("RabbitMQ connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_delay", retryDelay),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	logger.Error("Failed to connect to RabbitMQ after all retries", zap.Int("attempts", maxRetries), zap.Error(err))
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}

// maskRabbitMQURL hides credentials in the connection URL for logging.
func maskRabbitMQURL(urlStr string) string {
	atIndex := -1
	schemaIndex := -1
	for i := 0; i < len(urlStr); i++ {
		if urlStr[i] == '@' {
			atIndex = i
			break
		}
	}
	for i := 0; i+2 < len(urlStr); i++ {
		if urlStr[i] == ':' && urlStr[i+1] == '/' && urlStr[i+2] == '/' {
			schemaIndex = i + 2
			break
		}
	}

	if atIndex != -1 && schemaIndex != -1 && atIndex > schemaIndex+1 {
		return urlStr[:schemaIndex+1] + "****:****@" + urlStr[atIndex+1:]
	}
	return urlStr
}
