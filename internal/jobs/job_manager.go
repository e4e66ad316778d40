// Package jobs provides the scheduled background tasks of the engine,
// implemented on github.com/robfig/cron/v3. Currently the only job is the
// settlement reconciliation sweep; JobManager exists so the entrypoint
// keeps a single start/stop point as jobs are added.
package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconciliationJob *SettlementReconciliationJob
}

// NewJobManager creates a job manager wired to the given handlers.
// onReconciled may be nil; when set it receives the created-row count of
// every reconciliation run.
func NewJobManager(
	reconcileHandler commands.ReconcileSettlementsCommandHandler,
	logger *slog.Logger,
	onReconciled func(created int),
) *JobManager {
	return &JobManager{
		reconciliationJob: NewSettlementReconciliationJob(reconcileHandler, logger, onReconciled),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start settlement reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reconciliationJob.Stop()
}
