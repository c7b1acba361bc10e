package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ireserve/ireserve-api/internal/api"
	mongodb "github.com/ireserve/ireserve-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ireserve/ireserve-api/internal/infrastructure/db/redis"
	"github.com/ireserve/ireserve-api/internal/pkg/config"
	"github.com/ireserve/ireserve-api/pkg/logger"
)

// @title        iReserve API
// @version      1.0
// @description  Role-gated account and session management for admins, students and faculty.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	if err := mongodb.NewAdminRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("admin index creation failed")
	}
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = rdb.Close()
		}()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected, refresh tokens are store-backed")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, refresh tokens are kept in process memory")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
