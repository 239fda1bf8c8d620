package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ecotrace/ewaste-tracker/internal/api"
	"github.com/ecotrace/ewaste-tracker/internal/api/metrics"
	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
	"github.com/ecotrace/ewaste-tracker/internal/core/service"
	mongostore "github.com/ecotrace/ewaste-tracker/internal/infrastructure/db/mongo"
	redisstore "github.com/ecotrace/ewaste-tracker/internal/infrastructure/db/redis"
	"github.com/ecotrace/ewaste-tracker/internal/infrastructure/events"
	"github.com/ecotrace/ewaste-tracker/internal/infrastructure/export"
	"github.com/ecotrace/ewaste-tracker/internal/infrastructure/http/handlers"
	"github.com/ecotrace/ewaste-tracker/internal/infrastructure/qrcode"
	"github.com/ecotrace/ewaste-tracker/internal/pkg/config"
	"github.com/ecotrace/ewaste-tracker/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title       E-waste Tracker API
// @version     1.0
// @description Registry and lifecycle tracking for campus e-waste.
// @BasePath    /

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "ewaste-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "ewaste-api",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	userRepo := mongostore.NewUserRepository(db)
	itemRepo := mongostore.NewItemRepository(db)
	if err := mongostore.EnsureIndexes(ctx, userRepo, itemRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	checks := map[string]handlers.Check{"mongo": handlers.MongoCheck(db)}

	// --- Redis (optional) ---
	var throttle ports.LoginThrottle
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		throttle = redisstore.NewLoginThrottle(rdb, cfg.Redis.LoginMaxAttempts, cfg.Redis.LoginWindow)
		checks["redis"] = handlers.RedisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	// --- NATS (optional) ---
	var publisher ports.StatusPublisher = events.NopPublisher{}
	if cfg.NATS.URL != "" {
		nc, err := events.Connect(cfg.NATS.URL, "ewaste-api")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to nats")
		}
		defer nc.Drain()
		publisher = metrics.InstrumentPublisher(events.NewStatusPublisher(nc, cfg.NATS.SubjectPrefix))
		checks["nats"] = handlers.NATSCheck(nc)
		log.Info().Str("url", cfg.NATS.URL).Msg("status events enabled")
	}

	policy, err := domain.PolicyByName(cfg.Lifecycle.Policy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid lifecycle policy")
	}

	// --- Services ---
	authCfg := service.AuthConfig{
		JWTSecret:  cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}
	tokens := service.NewTokenIssuer(authCfg)
	renderer := metrics.InstrumentRenderer(qrcode.NewPNGRenderer(0))

	e := api.NewRouter(api.Dependencies{
		Logger:       log,
		Auth:         service.NewAuthService(userRepo, tokens, throttle, authCfg, log),
		Items:        service.NewItemService(itemRepo, qrcode.UUIDGenerator{}, renderer, log),
		Lookup:       service.NewLookupService(itemRepo, userRepo, log),
		Lifecycle:    service.NewLifecycleService(itemRepo, policy, publisher, log),
		Tokens:       tokens,
		Exporter:     export.NewXLSXWriter(),
		HealthChecks: checks,
		CORSOrigin:   cfg.CORSOrigin,
		BodyLimit:    cfg.BodyLimit,
		Registerer:   prometheus.DefaultRegisterer,
		Gatherer:     prometheus.DefaultGatherer,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("policy", policy.Name()).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
