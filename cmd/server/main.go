package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nishantvidhuri/storebackend/config"
	"github.com/Nishantvidhuri/storebackend/internal/api"
	"github.com/Nishantvidhuri/storebackend/internal/broker"
	"github.com/Nishantvidhuri/storebackend/internal/gateway"
	"github.com/Nishantvidhuri/storebackend/internal/notify"
	"github.com/Nishantvidhuri/storebackend/internal/redisclient"
	"github.com/Nishantvidhuri/storebackend/internal/service"
	"github.com/Nishantvidhuri/storebackend/internal/store"
	"github.com/Nishantvidhuri/storebackend/internal/util"
	"github.com/Nishantvidhuri/storebackend/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting store backend")

	tp, err := util.InitTracer("storebackend", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	razorpay := gateway.NewRazorpayClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	smsSink := notify.NewTwilioSink(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)

	authService := service.NewAuthService(db, []byte(cfg.JWT.Secret), cfg.JWT.TokenTTL)
	cartService := service.NewCartService(db)
	orderService := service.NewOrderService(db, smsSink, eventPublisher, cfg.Twilio.AdminNumber)
	paymentService := service.NewPaymentService(db, razorpay, eventPublisher)
	productService := service.NewProductService(db, redisClient)
	complaintService := service.NewComplaintService(db)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	notifyConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
	notifyWorker := worker.NewNotificationWorker(notifyConsumer, db, smsSink)
	go func() {
		if err := notifyWorker.Start(workerCtx); err != nil {
			log.Printf("Notification worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(authService, cartService, orderService, paymentService, productService, complaintService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	notifyWorker.Stop()

	log.Println("Server exited")
}
