// Package main is the entry point of the LDS web client.
//
// It loads configuration, connects the session store, wires the backend
// client into the user service, and serves the HTML pages until SIGINT or
// SIGTERM triggers a graceful shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/fai-lds/lds-client/internal/api"
	"github.com/fai-lds/lds-client/internal/api/handler"
	"github.com/fai-lds/lds-client/internal/api/views"
	"github.com/fai-lds/lds-client/internal/core/domain"
	"github.com/fai-lds/lds-client/internal/core/service"
	"github.com/fai-lds/lds-client/internal/infrastructure/config"
	"github.com/fai-lds/lds-client/internal/infrastructure/db/redis"
	"github.com/fai-lds/lds-client/internal/infrastructure/httpclient"
	"github.com/fai-lds/lds-client/internal/infrastructure/rest"
	"github.com/fai-lds/lds-client/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "lds-client",
	})
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("backend", cfg.Backend.BaseURL).
		Msg("configuration loaded")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("session store unavailable")
	}
	defer rdb.Close()

	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid backend configuration")
	}

	restService := rest.NewService[domain.User](client, rest.TokenConfig{
		Secret: cfg.Backend.TokenSecret,
		TTL:    cfg.Backend.TokenTTL,
	}, log.With().Str("component", "rest").Logger())
	userService := service.NewUserService(restService, client, log.With().Str("component", "user_service").Logger())

	renderer, err := views.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load views")
	}

	router := api.NewRouter(api.Deps{
		Users:    userService,
		Sessions: redis.NewSessionStore(rdb, cfg.Session.TTL),
		Redis:    rdb,
		Renderer: renderer,
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.IsProduction(),
		},
		Log:        log,
		LoginRate:  rate.Limit(cfg.Login.Rate),
		LoginBurst: cfg.Login.Burst,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Backend.Timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("web client listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("web client stopped")
}
