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

	"github.com/robfig/cron/v3"

	"github.com/stepaks675/sproutcard/internal/api"
	"github.com/stepaks675/sproutcard/internal/apperrors"
	"github.com/stepaks675/sproutcard/internal/config"
	"github.com/stepaks675/sproutcard/internal/database"
	"github.com/stepaks675/sproutcard/internal/provider"
	"github.com/stepaks675/sproutcard/internal/repository"
	"github.com/stepaks675/sproutcard/internal/secrets"
	"github.com/stepaks675/sproutcard/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	priceRepo := repository.NewPriceRepository(db)
	recapRepo := repository.NewRecapRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Credential codec is optional; without it the provider key can only
	// come from the environment.
	var codec *secrets.Codec
	if cfg.Secrets.FernetKey != "" {
		codec, err = secrets.NewCodec(cfg.Secrets.FernetKey)
		if err != nil {
			log.Fatalf("Failed to initialize secrets codec: %v", err)
		}
	} else {
		log.Println("FERNET_KEY not set; provider key rotation via API is disabled")
	}

	providerClient := provider.NewHTTPClient(cfg.Provider.BaseURL, cfg.Provider.APIKey)

	// Create services
	systemService := service.NewSystemService(db, settingRepo, codec, providerClient)
	priceService := service.NewPriceService(priceRepo, providerClient, cfg.Provider.PriceCacheTTL)
	recapService := service.NewRecapService(
		providerClient,
		priceService,
		recapRepo,
		cfg.Provider.Chains,
	)

	// Prefer the key from the environment; otherwise fall back to the
	// encrypted one stored through the API.
	if cfg.Provider.APIKey == "" && codec != nil {
		storedKey, err := systemService.LoadProviderKey()
		switch {
		case err == nil:
			providerClient.SetAPIKey(storedKey)
			log.Println("Loaded provider API key from settings")
		case errors.Is(err, apperrors.ErrProviderKeyNotSet):
			log.Println("No provider API key configured yet")
		default:
			log.Fatalf("Failed to load provider API key: %v", err)
		}
	}

	// Schedule periodic price cache cleanup
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		if err := priceService.PurgeExpired(); err != nil {
			log.Printf("Price cache purge failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule price cache purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, recapService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
