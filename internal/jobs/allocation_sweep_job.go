package jobs

import (
	"context"
	"log/slog"

	"github.com/esp3j0/waste-transort/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AllocationSweepJob periodically releases drivers and vehicles still marked
// busy for orders that no longer hold them. Completion and delivery release
// resources inline; the sweep cleans up after crashes mid-transition.
type AllocationSweepJob struct {
	handler commands.ReleaseStaleAllocationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAllocationSweepJob creates a job that sweeps stale allocations once a minute.
func NewAllocationSweepJob(
	handler commands.ReleaseStaleAllocationsCommandHandler,
	logger *slog.Logger,
) *AllocationSweepJob {
	return &AllocationSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "allocation_sweep_job"),
	}
}

// Start schedules the sweep to run at the top of every minute.
func (j *AllocationSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewReleaseStaleAllocationsCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Allocation sweep command construction failed", "error", err)
			return
		}

		released, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Allocation sweep failed", "error", err)
			return
		}
		if released > 0 {
			j.logger.InfoContext(ctx, "Allocation sweep released stale resources", "released", released)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Allocation sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *AllocationSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Allocation sweep job stopped")
}
