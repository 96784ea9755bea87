package jobs

import (
	"context"
	"errors"
	"log/slog"

	"manufacturing/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// assignmentSchedule runs the sweep once a minute. Assignment is not
// latency-sensitive: a job queued between runs just waits for the next one.
const assignmentSchedule = "* * * * *"

// DesignAssignmentJob manages the scheduled auto-assignment of queued design
// jobs. Each run sweeps every organization with queued unassigned jobs and
// hands them to active designers with free capacity.
type DesignAssignmentJob struct {
	handler commands.AutoAssignDesignJobsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDesignAssignmentJob creates the background assignment job.
func NewDesignAssignmentJob(handler commands.AutoAssignDesignJobsCommandHandler, logger *slog.Logger) *DesignAssignmentJob {
	return &DesignAssignmentJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "design_assignment_job"),
	}
}

// Start schedules the assignment sweep.
func (j *DesignAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(assignmentSchedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewAutoAssignDesignJobsCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "design assignment job misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty queue is the normal idle state, not a failure.
			if !errors.Is(err, commands.ErrNoQueuedDesignJobs) {
				j.logger.ErrorContext(ctx, "design assignment job failed", "error", err)
			}
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "design assignment job started", "schedule", assignmentSchedule)
	return nil
}

// Stop stops the assignment job.
func (j *DesignAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "design assignment job stopped")
}
