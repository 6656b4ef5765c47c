package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shop_schema/internal/config"
	"github.com/Skotchmaster/shop_schema/internal/es"
	"github.com/Skotchmaster/shop_schema/internal/httpserver"
	"github.com/Skotchmaster/shop_schema/internal/migrations"
	"github.com/Skotchmaster/shop_schema/internal/mykafka"
	"github.com/Skotchmaster/shop_schema/internal/repo"
	"github.com/Skotchmaster/shop_schema/internal/service"
	pkgdb "github.com/Skotchmaster/shop_schema/pkg/db"
	"github.com/Skotchmaster/shop_schema/pkg/logging"
	loggingmw "github.com/Skotchmaster/shop_schema/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	opts := cfg.DBOptions()
	opts.Migrate = migrations.Migrate

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := pkgdb.Initialize(ctx, opts)
	cancel()
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	svc := &service.ShopService{Repo: &repo.GormRepo{DB: db}}

	var producer *mykafka.Producer
	if cfg.KafkaEnabled() {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		svc.Events = producer
	} else {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	if cfg.SearchEnabled() {
		esClient, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Error("search_disabled", "reason", "elasticsearch unreachable", "error", err)
		} else {
			svc.Search = es.NewProductIndex(esClient, cfg.ESIndex)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		ShopHandler: &httpserver.ShopHTTP{Svc: svc},
		DB:          db,
		JWTSecret:   cfg.JWTAccessSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}

	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_error", "error", err)
	}

	logger.Info("shutdown_complete")
}
