package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleBindingReleaseJob periodically sweeps partner-bound orders whose
// partner has neither accepted nor rejected within the staleness window and
// returns them to the seeking pool.
type StaleBindingReleaseJob struct {
	handler  commands.ReleaseStaleBindingsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleBindingReleaseJob creates the sweep job with the given cron
// schedule (six-field, with seconds).
func NewStaleBindingReleaseJob(
	handler commands.ReleaseStaleBindingsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *StaleBindingReleaseJob {
	return &StaleBindingReleaseJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_binding_release_job"),
	}
}

// Start begins the periodic sweep.
func (j *StaleBindingReleaseJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewReleaseStaleBindingsCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale binding release command creation failed", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale binding release job failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale binding release job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep job.
func (j *StaleBindingReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale binding release job stopped")
}
