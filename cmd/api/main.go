// Package main is the entry point for the cineapi server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/app/service"
	"github.com/eguilbert/cineapi/internal/config"
	"github.com/eguilbert/cineapi/internal/domain"
	"github.com/eguilbert/cineapi/internal/infra/postgres"
	"github.com/eguilbert/cineapi/internal/infra/postgres/migrations"
	rediscache "github.com/eguilbert/cineapi/internal/infra/redis"
	"github.com/eguilbert/cineapi/internal/infra/tmdb"
	"github.com/eguilbert/cineapi/internal/job"
	"github.com/eguilbert/cineapi/internal/logger"
	"github.com/eguilbert/cineapi/internal/transport/httpserver"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/handler"
	"github.com/eguilbert/cineapi/internal/validator"
	"github.com/eguilbert/cineapi/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting cineapi",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repositories
	filmRepo := postgres.NewFilmRepository(db)
	interestRepo := postgres.NewInterestRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	selectionRepo := postgres.NewSelectionRepository(db)
	programmingRepo := postgres.NewProgrammingRepository(db)
	cinemaRepo := postgres.NewCinemaRepository(db)
	listRepo := postgres.NewListRepository(db)

	// Create TMDB client
	catalog := tmdb.New(
		tmdb.ClientConfig{
			BaseURL:  cfg.TMDB.BaseURL,
			Bearer:   cfg.TMDB.Bearer,
			APIKey:   cfg.TMDB.APIKey,
			Language: cfg.TMDB.Language,
			Timeout:  cfg.TMDB.Timeout,
			Retry: tmdb.RetryConfig{
				MaxAttempts: cfg.TMDB.Retry.MaxAttempts,
				WaitTime:    cfg.TMDB.Retry.WaitTime,
				MaxWaitTime: cfg.TMDB.Retry.MaxWaitTime,
			},
			CB: tmdb.CBConfig{
				MaxRequests:  cfg.TMDB.CB.MaxRequests,
				Interval:     cfg.TMDB.CB.Interval,
				Timeout:      cfg.TMDB.CB.Timeout,
				FailureRatio: cfg.TMDB.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Sessions are issued by the identity collaborator; this side only
	// resolves them
	sessions := rediscache.NewSessionStore(redisClient, log.Logger, cfg.Auth.SessionPrefix)

	// Create cache implementation (optional, based on config)
	var cache domain.Cache
	var clearer handler.CacheClearer
	if cfg.Cache.Enabled {
		redisCache := rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		cache = redisCache
		clearer = redisCache
		log.Info("cache enabled",
			zap.Duration("stats_ttl", cfg.Cache.StatsTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("cache disabled")
	}

	// Create services
	filmSvc := service.NewFilmService(filmRepo, interestRepo, ratingRepo, catalog, log.Logger)
	interestSvc := service.NewInterestService(interestRepo, filmRepo, activityRepo, cache, cfg.Cache.StatsTTL, log.Logger)
	ratingSvc := service.NewRatingService(ratingRepo, filmRepo, activityRepo, log.Logger)
	selectionSvc := service.NewSelectionService(selectionRepo, filmRepo, interestRepo, activityRepo, filmSvc, log.Logger)
	programmingSvc := service.NewProgrammingService(programmingRepo, selectionRepo, log.Logger)
	cinemaSvc := service.NewCinemaService(cinemaRepo, log.Logger)
	listSvc := service.NewListService(listRepo, filmRepo, log.Logger)
	statsSvc := service.NewStatsService(filmRepo, interestRepo, selectionRepo, cache, cfg.Cache.StatsTTL, log.Logger)
	refreshSvc := service.NewRefreshService(filmRepo, catalog, log.Logger)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		httpserver.Services{
			Films:       filmSvc,
			Interests:   interestSvc,
			Ratings:     ratingSvc,
			Selections:  selectionSvc,
			Programming: programmingSvc,
			Cinemas:     cinemaSvc,
			Lists:       listSvc,
			Stats:       statsSvc,
			Refresh:     refreshSvc,
		},
		db,
		sessions,
		catalog,
		clearer,
		v,
		log.Logger,
	)

	// Start refresh scheduler with distributed locking
	scheduler := job.NewRefreshScheduler(
		refreshSvc,
		job.RefreshConfig{
			Interval:  cfg.Refresh.Interval,
			Timeout:   cfg.Refresh.Timeout,
			OnStartup: cfg.Refresh.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	scheduler.Start(cfg.Refresh.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		// Stop scheduler
		scheduler.Stop()

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
