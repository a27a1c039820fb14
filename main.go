package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"bookly/config"
	"bookly/cron"
	"bookly/handlers"
	"bookly/middleware"
	"bookly/routes"
	"bookly/services/booking"
	"bookly/services/catalog"
	"bookly/services/notification"
	"bookly/services/schedule"
	"bookly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, logger)
	if err != nil {
		logger.Fatal("main: failed to open stores", zap.Error(err))
	}

	// Notifications.
	drivers := config.NotifyDriverList()
	notifyTimeout := time.Duration(config.AppConfig.NotifyTimeoutSeconds) * time.Second

	var queueClient *asynq.Client
	var worker *cron.Worker
	if slices.Contains(drivers, "queue") {
		queueClient = asynq.NewClient(cron.QueueRedisOpt())

		// The worker performs the real delivery for queued notifications.
		var deliver notification.Sink = notification.NewLogSink(logger)
		if config.AppConfig.NotifyWebhookURL != "" {
			if deliver, err = notification.NewWebhookSink(config.AppConfig.NotifyWebhookURL, notifyTimeout); err != nil {
				logger.Fatal("main: invalid webhook sink", zap.Error(err))
			}
		}
		worker = cron.NewWorker(cron.QueueRedisOpt(), config.AppConfig.WorkerConcurrency, deliver, st.bookings, logger)
		worker.Start()
	}

	sink, closeSinks, err := notification.BuildSink(notification.Options{
		Drivers:      drivers,
		Queue:        queueClient,
		KafkaBrokers: config.KafkaBrokerList(),
		KafkaTopic:   config.AppConfig.KafkaTopic,
		WebhookURL:   config.AppConfig.NotifyWebhookURL,
		Timeout:      notifyTimeout,
	}, logger)
	if err != nil {
		logger.Fatal("main: failed to configure notifications", zap.Error(err))
	}
	dispatcher := notification.NewDispatcher(sink, logger, notifyTimeout)

	// Services.
	scheduleSvc, err := schedule.NewScheduleService(st.availability, logger)
	if err != nil {
		logger.Fatal("main: schedule service", zap.Error(err))
	}
	resolver, err := schedule.NewAvailabilityResolver(st.services, st.availability, st.bookings)
	if err != nil {
		logger.Fatal("main: availability resolver", zap.Error(err))
	}
	catalogSvc, err := catalog.NewCatalogService(st.services, logger)
	if err != nil {
		logger.Fatal("main: catalog service", zap.Error(err))
	}
	coordinator, err := booking.NewBookingCoordinator(
		st.services,
		st.bookings,
		dispatcher,
		logger,
		time.Duration(config.AppConfig.ReminderLeadMinutes)*time.Minute,
	)
	if err != nil {
		logger.Fatal("main: booking coordinator", zap.Error(err))
	}

	handlerBundle := &handlers.HandlerBundle{
		Availability: &handlers.AvailabilityHandler{Service: scheduleSvc},
		Slots:        &handlers.SlotsHandler{Resolver: resolver},
		Bookings:     &handlers.BookingHandler{Coordinator: coordinator},
		Catalog:      &handlers.CatalogHandler{Service: catalogSvc},
		Admin:        &handlers.AdminHandler{},
	}

	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(ctx, utils.HealthCheckInterval, st.checks)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + config.AppConfig.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.Strings("notify", drivers))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("main: pending notifications dropped", zap.Error(err))
	}
	if err := closeSinks(); err != nil {
		logger.Warn("main: failed to close notification sinks", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	st.Close(shutdownCtx)

	logger.Info("main: server stopped gracefully")
}
