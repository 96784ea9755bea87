// Package jobs provides scheduled background tasks for the workflow engine.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// DesignAssignmentJob runs once a minute and sweeps every organization with
// queued unassigned design jobs, assigning them to active designers with
// free capacity through the smart assignment path.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(autoAssignHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The assignment job treats an empty queue as the idle state and stays
// quiet; every other error is logged and retried on the next run.
package jobs
