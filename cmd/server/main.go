package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blogcms/admin-api/internal/api"
	"github.com/blogcms/admin-api/internal/core/service"
	"github.com/blogcms/admin-api/internal/infrastructure/config"
	mongodb "github.com/blogcms/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/blogcms/admin-api/internal/infrastructure/db/redis"
	"github.com/blogcms/admin-api/internal/infrastructure/queue"
	"github.com/blogcms/admin-api/pkg/logger"
)

const auditWorkers = 4

// @title        Admin Console API
// @version      1.0
// @description  Session-authenticated backend for the blog admin console.
// @BasePath     /
func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "admin-api",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	// Index creation is idempotent; run it on every boot.
	users := mongodb.NewUserRepository(db)
	articles := mongodb.NewArticleRepository(db)
	audit := mongodb.NewAuditRepository(db)
	for name, ensure := range map[string]func(context.Context) error{
		"users":       users.EnsureIndexes,
		"articles":    articles.EnsureIndexes,
		"auth_events": audit.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// Audit events flow through a sharded async dispatcher so request
	// handling never blocks on the audit write path.
	auditService := service.NewAuditService(audit, log)
	dispatcher := queue.NewDispatcher(auditWorkers, auditService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, log, db, rdb, dispatcher)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	cancel() // stop audit workers

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("server stopped gracefully")
}
