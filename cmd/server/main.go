package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cypherlabdev/hedge-finder-service/internal/books"
	"github.com/cypherlabdev/hedge-finder-service/internal/cache"
	"github.com/cypherlabdev/hedge-finder-service/internal/config"
	httpHandler "github.com/cypherlabdev/hedge-finder-service/internal/handler/http"
	"github.com/cypherlabdev/hedge-finder-service/internal/messaging"
	"github.com/cypherlabdev/hedge-finder-service/internal/normalizer"
	"github.com/cypherlabdev/hedge-finder-service/internal/poller"
	"github.com/cypherlabdev/hedge-finder-service/internal/provider/oddsapi"
	"github.com/cypherlabdev/hedge-finder-service/internal/service"
	"github.com/cypherlabdev/hedge-finder-service/pkg/hedge"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting hedge-finder-service")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create Redis cache
	redisCache := cache.NewRedisCache(
		cache.RedisCacheConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		},
		logger,
	)
	defer redisCache.Close()

	// Test Redis connection
	if err := redisCache.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	// Create hedge engine
	params, err := cfg.Hedge.ToParams()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid hedge parameters")
	}
	engine, err := hedge.New(params, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create hedge engine")
	}
	logger.Info().
		Str("bonus_book", string(params.BonusBook)).
		Str("stake", params.Stake.String()).
		Str("min_efficiency", params.MinEfficiency.String()).
		Msg("hedge engine initialized")

	// Create hedge service layer
	hedgeService := service.NewHedgeService(engine, redisCache, logger)
	logger.Info().Msg("hedge service initialized")

	// Create Kafka consumer
	consumer := messaging.NewKafkaConsumer(
		messaging.KafkaConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		},
		engine,
		redisCache,
		logger,
	)
	defer consumer.Close()

	// Start Kafka consumer in goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("Kafka consumer failed")
		}
	}()

	// Start the odds poller when a provider key is configured
	if cfg.Provider.APIKey != "" {
		if err := startPoller(ctx, cfg, hedgeService, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to start odds poller")
		}
	} else {
		logger.Info().Msg("no provider API key configured, poller disabled")
	}

	// Initialize HTTP handler
	hedgeHandler := httpHandler.NewHedgeHandler(hedgeService, logger)
	logger.Info().Msg("HTTP handler initialized")

	// Setup HTTP server routes
	mux := http.NewServeMux()

	// Health and monitoring endpoints
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyHandler(w, r, redisCache)
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Register API routes
	hedgeHandler.RegisterRoutes(mux)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// Cancel context to stop consumer and poller
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// startPoller wires the provider client, normalizer, and polling loop
func startPoller(ctx context.Context, cfg *config.Config, hedgeService *service.HedgeService, logger zerolog.Logger) error {
	allowed, err := cfg.Hedge.AllowedBooks()
	if err != nil {
		return fmt.Errorf("resolving bookmakers: %w", err)
	}

	sportKeys := make([]string, 0, len(cfg.Provider.Sports))
	for _, sport := range cfg.Provider.Sports {
		key, ok := oddsapi.SportKeys[sport]
		if !ok {
			return fmt.Errorf("unknown sport %q", sport)
		}
		sportKeys = append(sportKeys, key)
	}

	client := oddsapi.NewClient(oddsapi.ClientConfig{
		BaseURL: cfg.Provider.BaseURL,
		APIKey:  cfg.Provider.APIKey,
		Timeout: cfg.Provider.Timeout,
	}, logger)

	norm := normalizer.New(allowed, logger)

	p := poller.NewPoller(poller.PollerConfig{
		SportKeys: sportKeys,
		Regions:   books.RegionsFor(allowed),
		Interval:  cfg.Provider.PollInterval,
	}, client, norm, hedgeService, logger)

	go p.Run(ctx)

	logger.Info().
		Strs("sports", sportKeys).
		Msg("odds poller started")

	return nil
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "hedge-finder").Logger()
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 if service is ready to accept traffic
func readyHandler(w http.ResponseWriter, r *http.Request, cache *cache.RedisCache) {
	// Check Redis connection
	if err := cache.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Redis unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
