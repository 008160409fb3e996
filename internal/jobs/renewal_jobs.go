package jobs

import (
	"context"

	"coinmarket-backend/internal/logger"
)

// ExpireSubscriptions marks subscriptions whose end date has passed as EXPIRED
func (jr *JobRunner) ExpireSubscriptions() {
	jr.runWithRecovery("ExpireSubscriptions", func() {
		ctx := context.Background()

		expired, err := jr.services.Subscription.CheckAndExpire(ctx)
		if err != nil {
			logger.Error("Failed to expire lapsed subscriptions", "error", err)
			return
		}

		logger.Info("Expired lapsed subscriptions", "count", expired)
	})
}

// ProcessAutoRenewals charges subscriptions that end within the renewal window
func (jr *JobRunner) ProcessAutoRenewals() {
	jr.runWithRecovery("ProcessAutoRenewals", func() {
		ctx := context.Background()

		report, err := jr.services.Subscription.ProcessAutoRenewals(ctx)
		if err != nil {
			logger.Error("Failed to process auto-renewals", "error", err)
			return
		}

		logger.Info("Auto-renewal sweep completed",
			"renewed", report.Renewed,
			"failed", report.Failed,
			"skipped", report.Skipped)
	})
}
