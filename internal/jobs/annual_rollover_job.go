package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AnnualRolloverJobName is the scheduler name of the new-year rollover job
const AnnualRolloverJobName = "annual_code_rollover"

// AnnualCodeRollover is the part of the annual code service the job drives.
type AnnualCodeRollover interface {
	// NeedsReset reports whether any client, active or not, holds a code from an earlier year.
	NeedsReset(ctx context.Context) (bool, error)

	// BulkAssignForNewYear resets and re-assigns every active client's code
	// when a reset is needed. Returns the number of clients assigned.
	BulkAssignForNewYear(ctx context.Context) (int, error)
}

// AnnualRolloverJob re-issues annual client codes when the calendar year changes.
type AnnualRolloverJob struct {
	service AnnualCodeRollover
	logger  *zap.Logger
	timeout time.Duration
}

func NewAnnualRolloverJob(service AnnualCodeRollover, logger *zap.Logger, timeout time.Duration) *AnnualRolloverJob {
	return &AnnualRolloverJob{
		service: service,
		logger:  logger,
		timeout: timeout,
	}
}

// Run is called by the scheduler. The service itself decides whether a
// rollover is due, so extra runs are harmless.
func (j *AnnualRolloverJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting annual code rollover job")

	assigned, err := j.service.BulkAssignForNewYear(ctx)
	if err != nil {
		j.logger.Error("annual code rollover failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("annual code rollover job completed",
		zap.Int("clients_assigned", assigned),
		zap.Duration("duration", time.Since(start)))
}

// RunStartup catches up on a rollover missed while the service was down.
// It returns the number of clients assigned, zero when nothing was due.
func (j *AnnualRolloverJob) RunStartup() int {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	needed, err := j.service.NeedsReset(ctx)
	if err != nil {
		j.logger.Error("startup rollover check failed", zap.Error(err))
		return 0
	}
	if !needed {
		j.logger.Debug("annual codes are current, no startup rollover needed")
		return 0
	}

	start := time.Now()
	j.logger.Info("annual codes are from an earlier year, rolling over on startup")

	assigned, err := j.service.BulkAssignForNewYear(ctx)
	if err != nil {
		j.logger.Error("startup annual code rollover failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return 0
	}

	j.logger.Info("startup annual code rollover completed",
		zap.Int("clients_assigned", assigned),
		zap.Duration("duration", time.Since(start)))
	return assigned
}

// RegisterAnnualRolloverJob schedules the rollover job. When runOnStartup is
// set a catch-up pass runs in a background goroutine so API startup is not blocked.
func RegisterAnnualRolloverJob(scheduler *Scheduler, service AnnualCodeRollover, logger *zap.Logger, cronExpr string, timeout time.Duration, runOnStartup bool) error {
	job := NewAnnualRolloverJob(service, logger, timeout)

	if err := scheduler.AddJob(AnnualRolloverJobName, cronExpr, job.Run); err != nil {
		return err
	}

	if runOnStartup {
		go job.RunStartup()
	}
	return nil
}
