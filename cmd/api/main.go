// Command api runs the library HTTP API.
//
//	@title						Library API
//	@version					1.0
//	@description				Digital library: catalog, purchases, loans, wishlists and reviews behind a JWT bearer gate.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/library-system/internal/api"
	"github.com/99minutos/library-system/internal/api/handler"
	"github.com/99minutos/library-system/internal/core/service"
	"github.com/99minutos/library-system/internal/infrastructure/config"
	mongodb "github.com/99minutos/library-system/internal/infrastructure/db/mongo"
	"github.com/99minutos/library-system/internal/infrastructure/db/mysql"
	redisdb "github.com/99minutos/library-system/internal/infrastructure/db/redis"
	"github.com/99minutos/library-system/internal/infrastructure/queue"
	"github.com/99minutos/library-system/internal/infrastructure/storage/s3"
	"github.com/99minutos/library-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is configured from cfg, so fall back to a bare one.
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "library-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Relational store ---
	db, err := mysql.Connect(ctx, mysql.Config{
		DSN:          cfg.MySQL.DSN,
		MaxOpenConns: cfg.MySQL.MaxOpenConns,
		MaxIdleConns: cfg.MySQL.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(ctx, db); err != nil {
		return err
	}
	log.Info().Msg("mysql ready")

	// --- Audit store ---
	mongoClient, mongoDB, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	auditRepo := mongodb.NewAuditRepository(mongoDB)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Login throttle ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Object storage ---
	store, err := s3.NewObjectStore(ctx, s3.Config{
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		Bucket:    cfg.S3.Bucket,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		PublicURL: cfg.S3.PublicURL,
	})
	if err != nil {
		return err
	}

	// --- Audit dispatcher ---
	auditService := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(cfg.DispatcherWorkers, auditService, log)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	// --- Use cases ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := service.NewBcryptHasher()
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Login.MaxFailures, cfg.Login.FailureWindow)

	users := mysql.NewUserRepository(db)
	books := mysql.NewBookRepository(db)

	svc := api.Services{
		Auth:      service.NewAuthService(users, hasher, tokens, throttle, dispatcher, log),
		Users:     service.NewUserService(users, hasher, store, dispatcher, log),
		Books:     service.NewBookService(books, store, dispatcher, log),
		Purchases: service.NewPurchaseService(mysql.NewPurchaseRepository(db), dispatcher, log),
		Loans:     service.NewLoanService(mysql.NewLoanRepository(db), books, dispatcher, log),
		Wishlist:  service.NewWishlistService(mysql.NewWishlistRepository(db), books),
		Reviews:   service.NewReviewService(mysql.NewReviewRepository(db), books),
		Reports:   service.NewReportService(mysql.NewReportRepository(db)),
		Audit:     auditService,
	}

	e := api.NewRouter(log, tokens, svc, api.Options{
		CORSOrigins:    splitList(cfg.CORSOrigins),
		BodyLimit:      cfg.BodyLimit,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		Readiness: map[string]handler.Pinger{
			"mysql":   db.PingContext,
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	})

	// --- Serve until signalled ---
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// In-flight requests are done; flush queued audit events before the
	// stores close.
	stopWorkers()
	dispatcher.Wait()

	log.Info().Msg("server stopped")
	return runErr
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
