package jobs

import (
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/config"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Inventory    service.InventoryService
	Rental       service.RentalService
	Notification service.NotificationService
	Email        service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs every scheduled job once (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ReconcileInventory()
	jr.GenerateNotifications()
	jr.SendOverdueReminders()
}
