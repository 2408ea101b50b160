package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/Freeeeeet/studio_booking_bot/internal/app"
	"github.com/Freeeeeet/studio_booking_bot/internal/config"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller"
	"github.com/Freeeeeet/studio_booking_bot/internal/events"
	"github.com/Freeeeeet/studio_booking_bot/internal/metrics"
	"github.com/Freeeeeet/studio_booking_bot/internal/repository"
	"github.com/Freeeeeet/studio_booking_bot/internal/repository/base"
	"github.com/Freeeeeet/studio_booking_bot/internal/service"
	"github.com/Freeeeeet/studio_booking_bot/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting studio booking bot",
		zap.String("timezone", cfg.Location.String()),
		zap.Int("token_length", len(cfg.TelegramToken)),
	)

	pool, err := base.NewPool(ctx, cfg.DBDSN, cfg.Location)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, migrations.FS)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	txManager := base.NewTxManager(pool)
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	slotRepo := repository.NewSlotRepository(pool, cfg.Location)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	b, err := bot.New(cfg.TelegramToken,
		bot.WithErrorsHandler(func(err error) {
			logger.Warn("Telegram API error", zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}

	userService := service.NewUserService(userRepo, adminRepo, logger)
	catalogService := service.NewCatalogService(serviceRepo, logger)
	bookingService := service.NewBookingService(txManager, bookingRepo, serviceRepo, publisher, m, cfg.Location, logger)
	gridService := service.NewGridService(slotRepo, bookingRepo, cfg.Schedule, m, cfg.Location, logger)
	availabilityService := service.NewAvailabilityService(slotRepo, bookingRepo, cfg.Schedule, cfg.BookingBuffer, m, cfg.Location, logger)
	notificationService := service.NewNotificationService(
		controller.NewTelegramNotifier(b),
		bookingService,
		userService,
		cfg.StudioAddress,
		m,
		logger,
	)

	if err := catalogService.Seed(ctx, service.DefaultServices); err != nil {
		return err
	}
	if err := userService.BootstrapAdmins(ctx, cfg.AdminIDs); err != nil {
		return err
	}

	// Сетка должна существовать до первого /book
	inserted, err := gridService.Generate(ctx, cfg.GridHorizonDays)
	if err != nil {
		return err
	}
	logger.Info("Schedule grid ready",
		zap.Int("horizon_days", cfg.GridHorizonDays),
		zap.Int64("inserted", inserted),
	)

	botController := controller.NewBotController(b, controller.Services{
		Users:        userService,
		Bookings:     bookingService,
		Catalog:      catalogService,
		Availability: availabilityService,
		Grid:         gridService,
		Notification: notificationService,
	}, cfg.Location, cfg.BookingHorizonDays, logger)

	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	scheduler := app.NewScheduler(notificationService, gridService, cfg.ReminderInterval, cfg.GridHorizonDays, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	var metricsServer *app.MetricsServer
	if cfg.MetricsAddr != "" {
		metricsServer = app.NewMetricsServer(cfg.MetricsAddr, m.Handler(), logger)
		metricsServer.Start()
	}

	logger.Info("Bot is running")
	botController.Start(ctx)

	logger.Info("Shutting down")

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Metrics server shutdown failed", zap.Error(err))
		}
	}

	return nil
}

type eventPublisher interface {
	service.EventPublisher
	Close() error
}

func newPublisher(cfg *config.Config, logger *zap.Logger) (eventPublisher, error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP_URL is empty, booking events are not published")
		return events.NopPublisher{}, nil
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, err
	}
	logger.Info("Publishing booking events", zap.String("exchange", cfg.AMQPExchange))

	return publisher, nil
}
