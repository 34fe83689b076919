package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"

	"github.com/gfranzini/expense-rate-service/internal/application/service"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/api"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/config"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/db"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/handler"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.GetDefaultLogger().Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	logger.SetDefaultLogger(log)

	log.Info("Starting expense rate service", map[string]interface{}{
		"port": cfg.Port,
	})

	// Setup BadgerDB
	dbPath := filepath.Join(cfg.DataDir, "badger")
	if err := os.MkdirAll(dbPath, 0o755); err != nil {
		log.Fatal("Failed to create database directory", map[string]interface{}{
			"path":  dbPath,
			"error": err.Error(),
		})
	}

	badgerOpts := badger.DefaultOptions(dbPath)
	badgerOpts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing BadgerDB", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Initialize repositories
	rateRepo := db.NewBadgerRateRepository(badgerDB)
	expenseRepo := db.NewBadgerExpenseRepository(badgerDB)
	categoryRepo := db.NewBadgerCategoryRepository(badgerDB)

	// Initialize the provider client
	provider := api.NewCurrencyAPIClient(api.Config{
		BaseURL: cfg.ProviderBaseURL,
		APIKey:  cfg.ProviderAPIKey,
		Timeout: cfg.ProviderTimeout,
	}, nil, log)

	// Initialize services
	resolver := service.NewRateResolverService(rateRepo, provider, log)
	converter := service.NewConversionService(resolver, log)
	expenseService := service.NewExpenseService(expenseRepo, converter, log)
	categoryService := service.NewCategoryService(categoryRepo, log)

	// Initialize handlers
	expenseHandler := handler.NewExpenseHandler(expenseService, log)
	rateHandler := handler.NewRateHandler(resolver, log)
	categoryHandler := handler.NewCategoryHandler(categoryService, log)

	// Setup router
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.RecoveryMiddleware(log))
	expenseHandler.RegisterRoutes(router)
	rateHandler.RegisterRoutes(router)
	categoryHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Serve until interrupted, then drain in-flight requests
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"addr": server.Addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
