package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/config"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/es"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/events"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/handlers"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/logging"
	authmw "github.com/Evaristo-Paulo/api-ecommerce/internal/middleware/auth"
	loggingmw "github.com/Evaristo-Paulo/api-ecommerce/internal/middleware/logging"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/session"
	httpserver "github.com/Evaristo-Paulo/api-ecommerce/internal/transport/http"
	"github.com/Evaristo-Paulo/api-ecommerce/pkg/db"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	database, err := db.Open(context.Background(), configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := events.NewProducer(configuration.KafkaBrokers())

	sessions := &session.Manager{DB: database}
	guard := &authmw.SessionGuard{Sessions: sessions}

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Sessions: sessions, Producer: producer},
		ProductHandler: &handlers.ProductHandler{DB: database, Producer: producer},
		CartHandler:    &handlers.CartHandler{DB: database, Sessions: sessions, Producer: producer},
		Guard:          guard,
	}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		deps.ProductHandler.ES = esClient
		deps.ProductHandler.Index = "products"
		deps.SearchHandler = &handlers.SearchHandler{ES: esClient, Index: "products"}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

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
