package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/application/service"
	"github.com/pitchdesk/pitchdesk/internal/config"
	"github.com/pitchdesk/pitchdesk/internal/domain/lifecycle"
	"github.com/pitchdesk/pitchdesk/internal/infrastructure/notify"
	"github.com/pitchdesk/pitchdesk/internal/infrastructure/persistence/repository"
	"github.com/pitchdesk/pitchdesk/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/pitchdesk/pitchdesk/internal/interfaces/http"
	"github.com/pitchdesk/pitchdesk/pkg/database"
	"github.com/pitchdesk/pitchdesk/pkg/utils"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting pitch lifecycle engine",
		zap.Int("port", cfg.Server.Port),
		zap.String("database", cfg.Database.Path))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Transaction manager
	txManager := sqlite.NewDB(db.DB, logger)

	// Repositories
	pitchRepo := repository.NewPitchRepository(db.DB, logger)
	projectRepo := repository.NewProjectRepository(db.DB, logger)
	snapshotRepo := repository.NewSnapshotRepository(db.DB, logger)
	eventRepo := repository.NewEventRepository(db.DB, logger)
	payoutRepo := repository.NewPayoutRepository(db.DB, logger)
	notificationRepo := repository.NewNotificationRepository(db.DB, logger)
	actorRepo := repository.NewActorRepository(db.DB, logger)
	policyRepo := repository.NewPolicyRepository(db.DB, logger)
	finalizer := repository.NewProjectFinalizer(projectRepo)

	// Seed the hold policy from config defaults on first run
	if err := policyRepo.Seed(context.Background(), cfg.HoldPolicy.HoldPolicy()); err != nil {
		logger.Fatal("Failed to seed hold policy", zap.Error(err))
	}

	// Collaborators
	clock := port.SystemClock{}
	notifier := notify.NewRecordingNotifier(notificationRepo, &notify.LogSender{Logger: logger}, logger)
	portal := notify.NewPortalIssuer(notify.PortalConfig{
		BaseURL:    cfg.Portal.BaseURL,
		SigningKey: cfg.Portal.SigningKey,
		TokenTTL:   cfg.Portal.TokenTTL,
	}, clock)

	table := lifecycle.DefaultPitchTable()
	if err := table.Validate(); err != nil {
		logger.Fatal("Invalid transition table", zap.Error(err))
	}

	// Application services
	svcLogger := utils.NewServiceLogger(logger)
	completionService := service.NewCompletionService(
		pitchRepo, projectRepo, snapshotRepo, eventRepo, payoutRepo,
		policyRepo, txManager, finalizer, notifier, portal, clock, svcLogger,
	)
	transitionService := service.NewTransitionService(
		pitchRepo, projectRepo, eventRepo, txManager, table, clock, svcLogger,
	)
	contestService := service.NewContestService(
		projectRepo, eventRepo, txManager, notifier, clock, svcLogger,
	)
	payoutService := service.NewPayoutService(
		payoutRepo, eventRepo, actorRepo, policyRepo, txManager, clock, svcLogger,
	)
	queryService := service.NewQueryService(pitchRepo, eventRepo, payoutRepo, svcLogger)

	// HTTP server
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, completionService, transitionService, contestService, payoutService, queryService, svcLogger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
}
