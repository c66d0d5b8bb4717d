package jobs

import (
	"context"
	"log/slog"
	"time"

	"kindnessconnect-backend/internal/config"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/repository"
)

// jobTimeout bounds a single job run.
const jobTimeout = 5 * time.Minute

// JobRunner coordinates all scheduled jobs. Jobs only report; they never rewrite data.
type JobRunner struct {
	repos  Repositories
	config *config.Config
	log    *slog.Logger
}

// Repositories holds the stores the jobs read
type Repositories struct {
	Campaigns repository.CampaignRepository
	Donations repository.DonationRepository
	Sponsors  repository.SponsorRepository
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repos Repositories, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repos:  repos,
		config: cfg,
		log:    logger.WithService("jobs"),
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery and a deadline
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			jr.log.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	jr.log.InfoContext(ctx, "Starting job", "job", jobName)
	jobFunc(ctx)
	jr.log.InfoContext(ctx, "Job completed", "job", jobName, "duration", time.Since(start))
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.ReconcileLedger()
	jr.AuditThemeExclusivity()
}
