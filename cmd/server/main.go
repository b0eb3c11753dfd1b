package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/vehicle_api/internal/config"
	"github.com/Skotchmaster/vehicle_api/internal/db"
	"github.com/Skotchmaster/vehicle_api/internal/es"
	"github.com/Skotchmaster/vehicle_api/internal/httpserver"
	"github.com/Skotchmaster/vehicle_api/internal/logging"
	"github.com/Skotchmaster/vehicle_api/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/vehicle_api/internal/middleware/logging"
	"github.com/Skotchmaster/vehicle_api/internal/mykafka"
	"github.com/Skotchmaster/vehicle_api/internal/repo"
	"github.com/Skotchmaster/vehicle_api/internal/service"
	"github.com/Skotchmaster/vehicle_api/internal/tokens"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	logger.Info("config loaded", "config", cfg.String())

	if len(cfg.JWTSecret) == 0 {
		logger.Warn("JWT_SECRET is empty; logins will fail until it is set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}
	seeded, err := db.SeedAdmin(ctx, gdb, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	cancel()
	if err != nil {
		log.Fatalf("db seed: %v", err)
	}
	if seeded {
		logger.Info("seed administrator created", "email", cfg.SeedAdminEmail)
	}

	var events mykafka.Publisher = mykafka.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		prod, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		events = prod
	} else {
		logger.Info("KAFKA_BROKERS is empty; domain events are dropped")
	}

	store := &repo.GormRepo{DB: gdb}
	vehicles := &service.VehicleService{Repo: store, Events: events}
	if cfg.ESURL != "" {
		client, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Error("elasticsearch unavailable; search uses the database", "error", err)
		} else {
			vehicles.Index = es.NewVehicleIndex(client, cfg.ESIndex)
		}
	}

	ts := tokens.NewService(cfg.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.Secure())
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		DB:             gdb,
		Guard:          auth.NewGuard(ts),
		AuthHandler:    &httpserver.AuthHTTP{Svc: &service.AuthService{Store: store, Tokens: ts, Events: events}},
		AdminHandler:   &httpserver.AdminHTTP{Svc: &service.AdminService{Repo: store, Events: events}},
		VehicleHandler: &httpserver.VehicleHTTP{Svc: vehicles},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := events.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close", "error", err)
	}

	logger.Info("shutdown complete")
}
