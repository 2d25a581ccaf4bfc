package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sekai-soft/yurikamome/config"
	"github.com/sekai-soft/yurikamome/internal/application"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/cache/redis"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/persistence"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/persistence/postgres"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/twitterweb"
	apphttp "github.com/sekai-soft/yurikamome/internal/interfaces/http"
	"github.com/sekai-soft/yurikamome/pkg/logger"
)

func run() error {
	ctx := context.Background()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Environment: cfg.Logging.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()
	logger.SetDefault(log)

	log.Info("Starting yurikamome...",
		logger.Component("main"),
		logger.String("host_url", cfg.Instance.HostURL()),
	)

	db, redisClient, err := initInfrastructure(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()
	defer redisClient.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Database schema ready", logger.Component("main"))

	repos := persistence.NewRepositories(db)
	deps, err := application.NewDependencies(cfg, &twitterweb.Dialer{})
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}
	svcs := application.NewServices(repos, deps, log)

	loginLimiter := redis.NewLoginLimiter(redisClient, cfg.Security.LoginRateLimit, cfg.Security.LoginRateWindow)

	router := apphttp.NewRouter(cfg, &apphttp.RouterDeps{
		AppService:     svcs.App,
		OAuthService:   svcs.OAuth,
		SessionService: svcs.Session,
		LoginLimiter:   loginLimiter,
		DBHealther:     db,
		RedisHealther:  redisClient,
		Logger:         log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return startServer(server, log)
}

func initInfrastructure(cfg *config.Config, log logger.Logger) (*postgres.DB, *redis.Client, error) {
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Connected to PostgreSQL",
		logger.Component("infrastructure"),
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
	)

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("Connected to Redis",
		logger.Component("infrastructure"),
		logger.String("host", cfg.Redis.Host),
		logger.Int("port", cfg.Redis.Port),
	)

	return db, redisClient, nil
}

func startServer(server *http.Server, log logger.Logger) error {
	errChan := make(chan error, 1)
	go func() {
		log.Info("Server listening",
			logger.Component("server"),
			logger.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("Shutting down server...",
			logger.Component("server"),
			logger.String("signal", sig.String()),
		)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited", logger.Component("server"))
	return nil
}
