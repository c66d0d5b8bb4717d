package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"

	"kindnessconnect-backend/internal/bootstrap"
	"kindnessconnect-backend/internal/config"
	"kindnessconnect-backend/internal/jobs"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	envFile := flag.String("env", ".env", "Optional .env file loaded before the configuration")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'reconcile-ledger', 'audit-themes', 'all')")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load %s: %v", *envFile, err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting KindnessConnect Cronjob Runner...", "log_level", cfg.Log.Level, "datastore", cfg.Datastore.Type)

	ctx := context.Background()
	var app *firebase.App
	if cfg.Datastore.Type == "firestore" {
		if app, err = bootstrap.NewFirebaseApp(ctx, cfg.Firebase); err != nil {
			log.Fatalf("Failed to initialize firebase: %v", err)
		}
	}

	store, err := bootstrap.OpenStore(ctx, cfg, app)
	if err != nil {
		logger.Error("Failed to open document store", "error", err)
		log.Fatalf("Failed to open document store: %v", err)
	}
	defer store.Close()

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(jobs.Repositories{
		Campaigns: store.CampaignRepository,
		Donations: store.DonationRepository,
		Sponsors:  store.SponsorRepository,
	}, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !runJobOnce(jobRunner, *runOnce) {
			store.Close()
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once. It reports false for an unknown job name.
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) bool {
	switch jobName {
	case "reconcile-ledger":
		jobRunner.ReconcileLedger()
	case "audit-themes":
		jobRunner.AuditThemeExclusivity()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - reconcile-ledger\n")
		fmt.Printf("  - audit-themes\n")
		fmt.Printf("  - all\n")
		return false
	}
	return true
}
