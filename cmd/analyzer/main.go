package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	app_service "wallet-flow-analyzer/internal/application/service"
	domain_service "wallet-flow-analyzer/internal/domain/service"
	"wallet-flow-analyzer/internal/infrastructure/api"
	"wallet-flow-analyzer/internal/infrastructure/config"
	"wallet-flow-analyzer/internal/infrastructure/feed"
	"wallet-flow-analyzer/internal/infrastructure/logger"
	"wallet-flow-analyzer/internal/infrastructure/messaging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log, err := logger.NewLogger(cfg.App.LogLevel, cfg.App.Env)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	// Create FX application
	app := fx.New(
		// Provide dependencies
		fx.Supply(cfg),
		fx.Supply(log),
		fx.Supply(&cfg.NATS),
		fx.Provide(func() *zap.Logger { return log.Logger }),

		// Infrastructure providers
		fx.Provide(
			feed.NewEtherscanClient,
			messaging.NewReportPublisher,
			func(p *messaging.ReportPublisher) domain_service.ReportPublisher { return p },
			api.NewServer,
		),

		// Domain services
		fx.Provide(
			func(cfg *config.Config, log *logger.Logger) *domain_service.WalletAnalyzer {
				return domain_service.NewWalletAnalyzer(
					cfg.Analytics.BuySharesMarker,
					cfg.Analytics.SharesContract,
					log,
				)
			},
		),

		// Application providers
		fx.Provide(
			app_service.NewWalletReportService,
		),

		// Lifecycle hooks
		fx.Invoke(startPublisher),
		fx.Invoke(startHTTPServer),

		// Configure logging
		fx.WithLogger(func() fxevent.Logger {
			return fxevent.NopLogger
		}),
	)

	// Start the application
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Error("Failed to start application", zap.Error(err))
		os.Exit(1)
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down application...")

	// Stop the application
	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application gracefully", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped successfully")
}

// startPublisher connects the report publisher on startup
func startPublisher(
	lifecycle fx.Lifecycle,
	publisher *messaging.ReportPublisher,
	log *logger.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return publisher.Connect(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return publisher.Disconnect()
		},
	})
}

// startHTTPServer starts the report API server
func startHTTPServer(
	lifecycle fx.Lifecycle,
	server *api.Server,
	log *logger.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting HTTP server...")
			server.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
