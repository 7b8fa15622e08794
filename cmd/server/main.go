package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/softstep/shop/internal/config"
	"github.com/softstep/shop/internal/db"
	"github.com/softstep/shop/internal/events"
	"github.com/softstep/shop/internal/httpserver"
	"github.com/softstep/shop/internal/logging"
	loggingmw "github.com/softstep/shop/internal/middleware/logging"
	"github.com/softstep/shop/internal/notify"
	"github.com/softstep/shop/internal/repo"
	"github.com/softstep/shop/internal/service"
	"github.com/softstep/shop/internal/storage"
)

func main() {
	configuration, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	database, err := db.Open(ctx, configuration.DSN())
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("database migrate error: %v", err)
	}

	images, err := storage.NewImageStore(configuration.UploadDir)
	if err != nil {
		log.Fatalf("image store init error: %v", err)
	}

	producer := events.NewProducer(configuration.KafkaBrokers)
	hub := notify.NewHub(logger)

	store := &repo.GormRepo{DB: database}
	catalogSvc := &service.CatalogService{Repo: store, Images: images, Producer: producer}
	orderSvc := &service.OrderService{Repo: store, Notifier: hub, Producer: producer}
	accountSvc := &service.AccountService{Repo: store, JWTSecret: []byte(configuration.JWTSecret), Producer: producer}

	if err := accountSvc.SeedDefaultAdmin(ctx); err != nil {
		log.Fatalf("admin seed error: %v", err)
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc},
		UserHandler:    &httpserver.UserHTTP{Svc: accountSvc},
		WSHandler:      &httpserver.WSHandler{Hub: hub},
		UploadDir:      configuration.UploadDir,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
