package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recovery_notification_engine/internal/app"
	"recovery_notification_engine/internal/domain/moderation"
	"recovery_notification_engine/internal/infra/config"
	idb "recovery_notification_engine/internal/infra/database"
	"recovery_notification_engine/internal/infra/httpapi"
	"recovery_notification_engine/internal/infra/logger"
	"recovery_notification_engine/internal/infra/push"
	"recovery_notification_engine/internal/infra/scheduler"
)

func main() {
	fmt.Println("Notification & Escalation Engine starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Initialize Repositories and the batch unit of work
	appointmentRepo := idb.NewPostgresAppointmentRepository(db)
	documentRepo := idb.NewPostgresDocumentRepository(db)
	postRepo := idb.NewPostgresPostRepository(db)
	checkinRepo := idb.NewPostgresCheckinRepository(db)
	notificationRepo := idb.NewPostgresNotificationRepository(db)
	moderationRepo := idb.NewPostgresModerationRepository(db)
	sessionRepo := idb.NewPostgresAgentSessionRepository(db)
	userRepo := idb.NewPostgresUserRepository(db)
	batchFactory := idb.NewTxBatchFactory(db)
	log.Info("Repositories initialized.")

	// Push gateway client
	pushClient := push.NewGatewayClient(cfg.PushGatewayURL, cfg.PushGatewayAPIKey, cfg.PushRatePerSecond, log)

	// Sweep services
	reminderCfg := app.DefaultReminderConfig()
	reminderCfg.Tolerance = time.Duration(cfg.ReminderToleranceMinutes) * time.Minute
	reminderService := app.NewReminderService(appointmentRepo, notificationRepo, userRepo, batchFactory, pushClient, reminderCfg, log)

	expiryCfg := app.DefaultExpiryConfig()
	expiryCfg.Horizon = time.Duration(cfg.DocumentHorizonDays) * 24 * time.Hour
	expiryService := app.NewExpiryService(documentRepo, notificationRepo, batchFactory, expiryCfg, log)

	// Event-triggered services
	scorer := moderation.NewScorer(moderation.DefaultKeywordGroups())
	moderationCfg := app.DefaultModerationConfig()
	moderationCfg.Threshold = cfg.ToxicityThreshold
	moderationCfg.AdminFanoutLimit = cfg.AdminFanoutLimit
	moderationService := app.NewModerationService(postRepo, moderationRepo, notificationRepo, userRepo, batchFactory, scorer, moderationCfg, log)

	crisisCfg := app.DefaultCrisisConfig()
	crisisCfg.CravingThreshold = cfg.CravingCrisisThreshold
	crisisCfg.AdminFanoutLimit = cfg.AdminFanoutLimit
	crisisService := app.NewCrisisService(checkinRepo, notificationRepo, userRepo, sessionRepo, batchFactory, pushClient, crisisCfg, log)
	log.Info("Engine services initialized.")

	// Sweep scheduler
	location, err := time.LoadLocation(cfg.SchedulerTimezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.SchedulerTimezone, err)
	}
	sweepScheduler := scheduler.NewSweepScheduler(
		reminderService,
		expiryService,
		log,
		location,
		cfg.CronSpecAppointmentSweep,
		cfg.CronSpecDocumentSweep,
	)
	sweepScheduler.Start()

	// Event ingress
	router := httpapi.NewRouter(moderationService, crisisService, cfg.EventAuthToken, log)
	srv := &http.Server{Addr: cfg.HTTPListenAddr, Handler: router}
	go func() {
		log.Infof("Event ingress listening on %s.", cfg.HTTPListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Event ingress server failed: %v", err)
		}
	}()

	log.Info("Application setup complete. Scheduler and event ingress are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	sweepScheduler.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Event ingress shutdown: %v", err)
	}
	log.Info("Application shut down gracefully.")
}
