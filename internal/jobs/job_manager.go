package jobs

import (
	"fmt"
	"log/slog"

	"github.com/esp3j0/waste-transort/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	allocationSweepJob *AllocationSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	releaseStaleAllocationsHandler commands.ReleaseStaleAllocationsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		allocationSweepJob: NewAllocationSweepJob(releaseStaleAllocationsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.allocationSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start allocation sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.allocationSweepJob.Stop()
}
