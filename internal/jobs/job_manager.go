package jobs

import (
	"fmt"
	"log/slog"

	"manufacturing/internal/core/application/usecases/commands"
)

// JobManager coordinates the application's scheduled jobs and gives the
// composition root one interface to start and stop them.
type JobManager struct {
	designAssignmentJob *DesignAssignmentJob
}

// NewJobManager creates a job manager wired to the given handlers.
func NewJobManager(
	autoAssignHandler commands.AutoAssignDesignJobsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		designAssignmentJob: NewDesignAssignmentJob(autoAssignHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.designAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start design assignment job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.designAssignmentJob.Stop()
}
