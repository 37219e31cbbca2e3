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
	"github.com/labstack/echo/v4/middleware"

	"github.com/satriadjati/goshop/internal/config"
	"github.com/satriadjati/goshop/internal/es"
	"github.com/satriadjati/goshop/internal/handlers"
	"github.com/satriadjati/goshop/internal/logging"
	"github.com/satriadjati/goshop/internal/mykafka"
	"github.com/satriadjati/goshop/internal/repo"
	"github.com/satriadjati/goshop/internal/service"
	httpserver "github.com/satriadjati/goshop/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("Inisialisasi database gagal: %v", err)
	}

	prod := mykafka.NewProducer(configuration.KafkaBrokers())

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	store := repo.NewGormStore(db)
	authSvc := &service.AuthService{Store: store, JWTSecret: []byte(configuration.JWT_SECRET)}
	userSvc := &service.UserService{Store: store}
	productSvc := &service.ProductService{Store: store}
	orderSvc := &service.OrderService{Store: store}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		Auth:           authSvc,
		AuthHandler:    &handlers.AuthHandler{Auth: authSvc, Users: userSvc, Producer: prod},
		ProductHandler: &handlers.ProductHandler{Products: productSvc, Producer: prod, ES: esClient, ESIndex: configuration.ES_INDEX},
		OrderHandler:   &handlers.OrderHandler{Orders: orderSvc, Producer: prod},
		SearchHandler:  &handlers.SearchHandler{ES: esClient, Index: configuration.ES_INDEX},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
