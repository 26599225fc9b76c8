package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/banquet-booking/internal/config"
	"github.com/iliyamo/banquet-booking/internal/database"
	"github.com/iliyamo/banquet-booking/internal/handler"
	"github.com/iliyamo/banquet-booking/internal/middleware"
	"github.com/iliyamo/banquet-booking/internal/queue"
	"github.com/iliyamo/banquet-booking/internal/repository"
	"github.com/iliyamo/banquet-booking/internal/router"
	"github.com/iliyamo/banquet-booking/internal/service"
)

func main() {
	config.LoadDotEnv()  // .env is optional
	cfg := config.Load() // Load environment config

	log := logrus.StandardLogger()
	if cfg.Env == "prod" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(database.Settings{
		User:    cfg.DBUser,
		Pass:    cfg.DBPass,
		Host:    cfg.DBHost,
		Port:    cfg.DBPort,
		Name:    cfg.DBName,
		Timeout: cfg.DBTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.WithError(err).Fatal("schema bootstrap failed")
		}
		log.Info("schema ready")
	}

	pool := database.NewPool(db, cfg.DBTimeout)
	var events service.Publisher = service.NopPublisher{}
	if cfg.EventsOn {
		events = service.AMQPPublisher{URL: queue.URL(), DialTimeout: 3 * time.Second}
	}

	customers, err := service.NewCustomerService(repository.NewCustomerRepo(pool), cfg.BcryptCost)
	if err != nil {
		log.WithError(err).Fatal("customer service")
	}
	bookings := service.NewBookingService(repository.NewBookingRepo(pool), events)
	payments := service.NewPaymentService(repository.NewPaymentRepo(pool), events)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())

	// A nil *redis.Client must not reach the limiter as a non-nil interface.
	var limiter redis.Scripter
	if rdb := config.NewRedisClient(); rdb != nil {
		defer rdb.Close()
		limiter = rdb
	}

	router.RegisterRoutes(e, router.Handlers{
		Auth:     handler.NewAuthHandler(customers, cfg.JWTSecret, cfg.AccessTTLMin),
		Bookings: handler.NewBookingHandler(bookings),
		Payments: handler.NewPaymentHandler(payments),
		Banquets: &handler.BanquetHandler{
			Banquets:   repository.NewBanquetRepo(pool),
			EventTypes: repository.NewEventTypeRepo(pool),
		},
		DB:       db,
	}, cfg.JWTSecret, middleware.NewTokenBucket(config.LoadRateLimitConfig(), limiter))

	if cfg.AuditEnabled {
		audit := queue.AuditConsumer{URL: queue.URL(), Dir: cfg.AuditLogDir}
		go func() {
			if err := audit.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("audit consumer stopped")
			}
		}()
	}

	addr := ":" + cfg.Port // Address string with port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
