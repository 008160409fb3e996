package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "coinmarket-backend/internal/api/http"
	"coinmarket-backend/internal/config"
	"coinmarket-backend/internal/logger"
	"coinmarket-backend/internal/repository/postgres"
	"coinmarket-backend/internal/security"
	"coinmarket-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Coin Market Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	// Initialize Services
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository)
	commissionSvc := service.NewCommissionService(
		store.CreatorRepository,
		store.ProductRepository,
		store.UserRepository,
		noteSvc,
		emailSvc,
		cfg.Economy,
	)
	checkoutSvc := service.NewCheckoutService(
		store.AccountRepository,
		store.ProductRepository,
		store.EntitlementRepository,
		store.PromoRepository,
		store.OrderRepository,
		store.LedgerRepository,
		store.UserRepository,
		store.ReferralRepository,
		commissionSvc,
		noteSvc,
		emailSvc,
		cfg.Economy,
	)
	subscriptionSvc := service.NewSubscriptionService(
		store.SubscriptionRepository,
		store.ProductRepository,
		store.UserRepository,
		noteSvc,
		emailSvc,
		cfg.Economy,
	)
	webhookSvc := service.NewPaymentWebhookService(
		store.LedgerRepository,
		store.AccountRepository,
		store.UserRepository,
		noteSvc,
		cfg.Economy,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(&httpapi.Services{
		Ledger:       ledgerSvc,
		Checkout:     checkoutSvc,
		Subscription: subscriptionSvc,
		Commission:   commissionSvc,
		Webhook:      webhookSvc,
		Notification: noteSvc,
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
