package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// reconciliationSchedule runs the settlement sweep once a minute. Every
// pass is idempotent, so the schedule is a freshness knob rather than a
// correctness one.
const reconciliationSchedule = "0 * * * * *"

// SettlementReconciliationJob periodically materializes the settlement
// rows owed for delivered orders.
type SettlementReconciliationJob struct {
	handler commands.ReconcileSettlementsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger

	// onCreated receives the number of rows each run created. Optional.
	onCreated func(created int)
}

// NewSettlementReconciliationJob creates the reconciliation job. onCreated
// may be nil; when set it receives the created-row count of every run.
func NewSettlementReconciliationJob(
	handler commands.ReconcileSettlementsCommandHandler,
	logger *slog.Logger,
	onCreated func(created int),
) *SettlementReconciliationJob {
	return &SettlementReconciliationJob{
		handler:   handler,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "settlement_reconciliation_job"),
		onCreated: onCreated,
	}
}

// Start begins the reconciliation job on its schedule.
func (j *SettlementReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(reconciliationSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileSettlementsCommand()

		created, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Settlement reconciliation failed", "error", err)
			return
		}

		if j.onCreated != nil {
			j.onCreated(created)
		}
		if created > 0 {
			j.logger.InfoContext(ctx, "Settlement reconciliation created obligations", "created", created)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settlement reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *SettlementReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Settlement reconciliation job stopped")
}
