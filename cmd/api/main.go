package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pms-portal/billing-api/docs"
	"github.com/pms-portal/billing-api/internal/config"
	"github.com/pms-portal/billing-api/internal/database"
	"github.com/pms-portal/billing-api/internal/http/handler"
	"github.com/pms-portal/billing-api/internal/http/middleware"
	"github.com/pms-portal/billing-api/internal/http/router"
	"github.com/pms-portal/billing-api/internal/jobs"
	"github.com/pms-portal/billing-api/internal/logger"
	"github.com/pms-portal/billing-api/internal/repository"
	"github.com/pms-portal/billing-api/internal/service"
	"go.uber.org/zap"
)

// @title PMS Billing API
// @version 1.0
// @description Client code allocation and invoice numbering for the PMS portal

// @contact.name API Support
// @contact.email support@pms-portal.ae

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Basic configuration first, for logging setup
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if host := os.Getenv("SWAGGER_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	} else {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Development reads secrets from the environment, staging and production from Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database schema auto-migrated")
	}

	// Repositories
	clientRepo := repository.NewClientRepository(db)
	annualSeqRepo := repository.NewAnnualCodeRepository(db)
	permanentSeqRepo := repository.NewPermanentCodeRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Services
	annualCodeService := service.NewAnnualCodeService(clientRepo, annualSeqRepo, db, log)
	clientService := service.NewClientService(clientRepo, permanentSeqRepo, annualCodeService, db, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, clientRepo, annualCodeService, cfg.Invoicing, db, log)

	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	clientHandler := handler.NewClientHandler(clientService, annualCodeService, invoiceService, log)
	annualCodeHandler := handler.NewAnnualCodeHandler(annualCodeService, log)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		rateLimiter,
		clientHandler,
		annualCodeHandler,
		invoiceHandler,
	)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.AnnualRolloverEnabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterAnnualRolloverJob(
			scheduler,
			annualCodeService,
			log,
			cfg.Jobs.AnnualRolloverCron,
			cfg.Jobs.AnnualRolloverTimeoutDuration(),
			cfg.Jobs.RolloverOnStartup,
		); err != nil {
			log.Error("Failed to register annual rollover job", zap.Error(err))
			scheduler = nil
		} else {
			scheduler.Start()
			log.Info("Scheduler started with annual rollover job",
				zap.String("cron_expr", cfg.Jobs.AnnualRolloverCron),
				zap.Duration("timeout", cfg.Jobs.AnnualRolloverTimeoutDuration()),
				zap.Bool("rollover_on_startup", cfg.Jobs.RolloverOnStartup),
			)
		}
	} else {
		log.Info("Annual rollover job disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("Error closing database connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
