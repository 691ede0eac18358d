package jobs

import (
	"context"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/metrics"
)

// GenerateNotifications runs one pass of the automatic notification generator
// (critical stock + overdue returns).
func (jr *JobRunner) GenerateNotifications() {
	jr.runWithRecovery("GenerateNotifications", func() {
		ctx := context.Background()

		created, err := jr.services.Notification.GenerateAutomatic(ctx)
		if err != nil {
			logger.Error("Failed to generate notifications", "error", err)
			return
		}
		logger.Info("Notification scan finished", "created", created)
	})
}

// SendOverdueReminders mails the operations inbox a digest of every contract
// past its end date without a recorded return.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		if !jr.config.Email.Enabled() || jr.config.Email.OpsAddress == "" {
			logger.Warn("Overdue reminders skipped: email not configured")
			return
		}

		overdue, err := jr.services.Rental.ListOverdue(ctx)
		if err != nil {
			logger.Error("Failed to list overdue contracts", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue contracts, no reminder sent")
			return
		}

		if err := jr.services.Email.SendOverdueReminder(ctx, jr.config.Email.OpsAddress, overdue); err != nil {
			logger.Error("Failed to send overdue reminder",
				"to", jr.config.Email.OpsAddress,
				"contracts", len(overdue),
				"error", err)
			return
		}
		metrics.OverdueRemindersSent.Inc()
		logger.Info("Overdue reminder sent", "contracts", len(overdue))
	})
}
