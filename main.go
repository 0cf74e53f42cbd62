// File: stagelink/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stagelink/config"
	"stagelink/cron"
	"stagelink/database"
	bookingRepoPkg "stagelink/database/repository/booking"
	communicationRepoPkg "stagelink/database/repository/communication"
	donotserveRepoPkg "stagelink/database/repository/donotserve"
	performerRepoPkg "stagelink/database/repository/performer"
	ratecardRepoPkg "stagelink/database/repository/ratecard"
	"stagelink/handlers"
	"stagelink/middleware"
	"stagelink/routes"
	"stagelink/services/blacklist"
	"stagelink/services/booking"
	"stagelink/services/notification"
	"stagelink/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
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
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	commRepo := communicationRepoPkg.NewMongoCommunicationRepo()
	dnsRepo := donotserveRepoPkg.NewMongoDoNotServeRepo()
	performerRepo := performerRepoPkg.NewMongoPerformerRepo()
	rateCardRepo := ratecardRepoPkg.NewMongoRateCardRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{
		CommRepo:      commRepo,
		PerformerRepo: performerRepo,
		Delivery:      &notification.LogDeliveryService{Logger: logger},
		Logger:        logger,
	}

	guard := &blacklist.DefaultGuard{Repo: dnsRepo}
	dnsService := &blacklist.DefaultDoNotServeService{
		Repo:     dnsRepo,
		Notifier: notificationService,
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	bookingService := &booking.DefaultBookingService{
		Repo:          bookingRepo,
		RateCard:      rateCardRepo,
		PerformerRepo: performerRepo,
		Guard:         guard,
		Notifier:      notificationService,
		Scheduler:     &booking.AsynqPromptScheduler{Client: asynqClient},
		Logger:        logger,
	}

	catalogService := &booking.CatalogService{
		Repo:  rateCardRepo,
		Cache: utils.GetCacheClient(),
	}

	// Background worker for delayed prompts and reminders.
	cron.InitBookingWorker(bookingRepo, notificationService)

	// handlers.
	handlerSet := &routes.HandlerSet{
		Booking:       handlers.NewBookingHandler(bookingService, logger),
		Performer:     handlers.NewPerformerHandler(bookingService, performerRepo, logger),
		Admin:         handlers.NewAdminHandler(bookingService, performerRepo, logger),
		DoNotServe:    handlers.NewDoNotServeHandler(dnsService, logger),
		Communication: handlers.NewCommunicationHandler(commRepo, logger),
		Catalog:       handlers.NewCatalogHandler(catalogService),
	}

	routes.RegisterBookingRoutes(router, handlerSet)
	routes.RegisterPerformerRoutes(router, handlerSet)
	routes.RegisterAdminRoutes(router, handlerSet)
	routes.RegisterHealthRoute(router)

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
