package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	checkLockSweepJob *CheckLockSweepJob
}

// NewJobManager wires every job to its command handler.
func NewJobManager(
	purgeLocksHandler checkLockPurger,
	sweepSchedule string,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		checkLockSweepJob: NewCheckLockSweepJob(purgeLocksHandler, sweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.checkLockSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start check lock sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.checkLockSweepJob.Stop()
}
