package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YusovID/campus-prep/internal/auth"
	"github.com/YusovID/campus-prep/internal/calendar"
	"github.com/YusovID/campus-prep/internal/chat"
	"github.com/YusovID/campus-prep/internal/config"
	"github.com/YusovID/campus-prep/internal/repository/postgres"
	"github.com/YusovID/campus-prep/internal/service"
	myhttp "github.com/YusovID/campus-prep/internal/transport/http"
	"github.com/YusovID/campus-prep/pkg/logger/sl"
	"github.com/YusovID/campus-prep/pkg/logger/slogpretty"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting campus-prep", slog.String("env", cfg.Env))

	db, err := postgres.NewDB(ctx, cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer func() {
		if err := db.DB().Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	users := postgres.NewUserRepository(db.DB(), log)
	requests := postgres.NewInterviewRequestRepository(db.DB(), log)
	grants := postgres.NewCalendarGrantRepository(db.DB(), log)
	questions := postgres.NewQuestionRepository(db.DB(), log)
	materials := postgres.NewStudyMaterialRepository(db.DB(), log)
	messages := postgres.NewChatRepository(db.DB(), log)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	google, err := calendar.NewGoogle(cfg.Calendar, log)
	if err != nil {
		return fmt.Errorf("failed to init calendar: %w", err)
	}
	if !google.Configured() {
		log.Warn("google calendar credentials missing, interviews will get fallback links")
	}

	hub := chat.NewHub(log)
	defer hub.Close()

	var broadcaster service.Broadcaster = hub
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		fanout := chat.NewRedisFanout(rdb, cfg.Redis.Channel, hub, log)

		relay, err := fanout.Subscribe(ctx)
		if err != nil {
			return fmt.Errorf("failed to subscribe to chat channel: %w", err)
		}
		go relay()

		broadcaster = fanout
	}

	services := myhttp.Services{
		Auth: service.NewAuthService(log, users, tokens),
		Interviews: service.NewInterviewService(
			log, requests, users, grants, google, calendar.NewFallbackLinks(), cfg.Calendar.Timeout,
		),
		Profiles:  service.NewProfileService(log, users),
		Questions: service.NewQuestionService(db.DB(), log, questions, users),
		Materials: service.NewStudyMaterialService(log, materials),
		Chat:      service.NewChatService(log, messages, broadcaster),
		Calendar:  service.NewCalendarService(log, google, tokens, grants, cfg.Calendar.StateTTL),
	}

	srv := myhttp.NewServer(log, services, tokens, hub, myhttp.Options{
		CORSOrigins:   cfg.Server.CORSOrigins,
		RatePerMinute: cfg.Auth.RatePerMinute,
		RateBurst:     cfg.Auth.RateBurst,
		RateTTL:       cfg.Auth.RateTTL,
	})
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	errChan := make(chan error, 1)
	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %w", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChan <- fmt.Errorf("error listening and serving: %w", err)
	}
}
