package jobs

import (
	"context"

	"checkcore/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultCheckLockSweepSchedule runs the sweep every thirty seconds.
const DefaultCheckLockSweepSchedule = "*/30 * * * * *"

type checkLockPurger interface {
	Handle(ctx context.Context, command commands.PurgeExpiredCheckLocksCommand) (int64, error)
}

// CheckLockSweepJob removes expired workstation leases so abandoned checks
// become editable again without waiting for the next acquire.
type CheckLockSweepJob struct {
	handler  checkLockPurger
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewCheckLockSweepJob uses schedule (six-field cron with seconds, or a
// descriptor such as "@every 1m"). An empty schedule selects DefaultCheckLockSweepSchedule.
func NewCheckLockSweepJob(handler checkLockPurger, schedule string, logger *zap.Logger) *CheckLockSweepJob {
	if schedule == "" {
		schedule = DefaultCheckLockSweepSchedule
	}
	return &CheckLockSweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "check_lock_sweep_job")),
	}
}

// Run performs one sweep.
func (j *CheckLockSweepJob) Run(ctx context.Context) {
	removed, err := j.handler.Handle(ctx, commands.NewPurgeExpiredCheckLocksCommand())
	if err != nil {
		j.logger.Error("check lock sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("expired check locks removed", zap.Int64("count", removed))
	}
}

func (j *CheckLockSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("check lock sweep job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running sweep to finish.
func (j *CheckLockSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("check lock sweep job stopped")
}
