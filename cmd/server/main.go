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

	"github.com/ndenisov/gostore/internal/config"
	"github.com/ndenisov/gostore/internal/es"
	"github.com/ndenisov/gostore/internal/handlers"
	"github.com/ndenisov/gostore/internal/logging"
	authmw "github.com/ndenisov/gostore/internal/middleware/auth"
	"github.com/ndenisov/gostore/internal/mykafka"
	"github.com/ndenisov/gostore/internal/repository"
	"github.com/ndenisov/gostore/internal/service"
	httpserver "github.com/ndenisov/gostore/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	roleSvc := &service.RoleService{DB: db}
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := roleSvc.EnsureRoles(initCtx); err != nil {
		cancel()
		log.Fatalf("role bootstrap error: %v", err)
	}
	cancel()

	prod := mykafka.NewProducer([]string{cfg.KAFKA_ADDRESS})

	esClient, err := es.NewClient(cfg)
	if err != nil {
		log.Printf("elasticsearch unavailable, search disabled: %v", err)
		esClient = nil
	}

	jwtSecret := []byte(cfg.JWT_SECRET)
	refreshSecret := []byte(cfg.REFRESH_SECRET)

	cartRepo := &repository.CartRepository{DB: db}
	productRepo := &repository.ProductRepository{DB: db, ImageDir: cfg.IMAGE_DIR}
	categoryRepo := &repository.CategoryRepository{DB: db}
	orderRepo := &repository.OrderRepository{DB: db}

	cartSvc := &service.CartService{Repo: cartRepo}
	orderSvc := &service.OrderService{DB: db, Repo: orderRepo}

	tokens := &authmw.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}

	deps := httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{
			DB:            db,
			Roles:         roleSvc,
			Producer:      prod,
			JWTSecret:     jwtSecret,
			RefreshSecret: refreshSecret,
		},
		CartHandler:     &handlers.CartHandler{Svc: cartSvc, Producer: prod},
		ProductHandler:  &handlers.ProductHandler{Repo: productRepo, Producer: prod},
		CategoryHandler: &handlers.CategoryHandler{Repo: categoryRepo},
		OrderHandler:    &handlers.OrderHandler{Svc: orderSvc, Producer: prod},
		Tokens:          tokens,
		Logger:          logger,
	}
	if esClient != nil {
		deps.SearchHandler = &handlers.SearchHandler{ES: esClient, Index: "product"}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.SERVER_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.SERVER_PORT)
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
