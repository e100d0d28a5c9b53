package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"groomify/config"
	"groomify/cron"
	"groomify/database"
	appointmentRepo "groomify/database/repository/appointment"
	catalogRepo "groomify/database/repository/catalog"
	paymentRepo "groomify/database/repository/payment"
	tenantRepo "groomify/database/repository/tenant"
	"groomify/handlers"
	"groomify/middleware"
	"groomify/routes"
	"groomify/services/booking"
	"groomify/services/catalog"
	"groomify/services/payment"
	"groomify/services/tasks"
	"groomify/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	payRepo := paymentRepo.NewMongoPaymentRepo()
	catRepo := catalogRepo.NewMongoCatalogRepo()
	tenRepo := tenantRepo.NewMongoTenantRepo()

	// Deferred hold expiry rides the shared asynq queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	expiryScheduler := &tasks.AsynqExpiryScheduler{Client: asynqClient}

	// services.
	catalogService := &catalog.DefaultCatalogService{
		Repo: catRepo,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:     apptRepo,
		Catalog:  catRepo,
		Payments: payRepo,
		Expiry:   expiryScheduler,
		HoldTTL:  time.Duration(config.AppConfig.HoldTTLMinutes) * time.Minute,
		Refunds:  booking.DefaultRefundPolicy(),
		Logger:   logger,
	}

	gateway := payment.NewStripeCheckoutGateway(
		config.AppConfig.Currency,
		config.AppConfig.CheckoutSuccessURL,
		config.AppConfig.CheckoutCancelURL,
	)
	paymentService := &payment.DefaultPaymentService{
		Payments:       payRepo,
		Appointments:   apptRepo,
		Catalog:        catRepo,
		Gateway:        gateway,
		Cache:          utils.GetCacheClient(),
		DepositPercent: int64(config.AppConfig.DepositPercent),
		Logger:         logger,
	}

	cron.InitExpiryWorker(bookingService)

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(bookingService, paymentService, catalogService, tenRepo)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
