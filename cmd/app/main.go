package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/cache"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/repository/memory"
	"github.com/Domenick1991/flightbooking/internal/service/admin"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		userRepo    repository.UserRepository
		flightRepo  repository.FlightRepository
		bookingRepo repository.BookingRepository
		statsRepo   repository.StatsRepository
	)

	if dsn := cfg.Database.DSN(); dsn != "" {
		if err := repository.RunMigrations(ctx, dsn); err != nil {
			logger.Error("run migrations", "error", err)
			os.Exit(1)
		}

		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			logger.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		userRepo = repository.NewUserRepository(pool)
		flightRepo = repository.NewFlightRepository(pool)
		bookingRepo = repository.NewBookingRepository(pool)
		statsRepo = repository.NewStatsRepository(pool)
	} else {
		logger.Warn("no database configured, state will not survive restarts")
		store := memory.NewStore()
		userRepo = store
		flightRepo = store.Flights()
		bookingRepo = store.Bookings()
		statsRepo = store.StatsRepo()
	}

	var flightCache flights.Cache
	if cfg.Redis.Addr != "" {
		flightCache = cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	}

	var bookingOpts []booking.BookingServiceOption
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		bookingOpts = append(bookingOpts, booking.WithProducer(producer, cfg.Kafka.BookingTopic, cfg.Kafka.NotificationsTopic))
	}

	tokens := auth.NewManager(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	userSvc := users.NewUserService(userRepo, tokens)
	flightSvc := flights.NewFlightService(flightRepo, flightCache)
	bookingSvc := booking.NewBookingService(bookingRepo, logger, bookingOpts...)
	adminSvc := admin.NewAdminService(statsRepo)

	if err := userSvc.EnsureAdmin(ctx, cfg.Seed); err != nil {
		logger.Error("ensure admin account", "error", err)
		os.Exit(1)
	}
	if err := flightSvc.SeedSampleFlights(ctx); err != nil {
		logger.Error("seed flights", "error", err)
		os.Exit(1)
	}

	router := bootstrap.NewRouter(cfg, bootstrap.Deps{
		Users:    userSvc,
		Flights:  flightSvc,
		Bookings: bookingSvc,
		Stats:    adminSvc,
		Tokens:   tokens,
	})

	logger.Info("starting http server", "address", cfg.HTTP.Address)
	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
