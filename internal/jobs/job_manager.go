package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Settings carries the schedules and limits of the background jobs.
type Settings struct {
	RelaySchedule     string
	RelayBatchSize    int
	RelayGrace        time.Duration
	AutoCloseSchedule string
	AutoCloseAfter    time.Duration
	AutoCloseBatch    int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	eventRelayJob     *EventRelayJob
	orderAutoCloseJob *OrderAutoCloseJob
}

func NewJobManager(
	relayHandler relayEventsHandler,
	closeHandler closeDeliveredOrdersHandler,
	settings Settings,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		eventRelayJob: NewEventRelayJob(
			relayHandler, settings.RelaySchedule, settings.RelayBatchSize, settings.RelayGrace, logger,
		),
		orderAutoCloseJob: NewOrderAutoCloseJob(
			closeHandler, settings.AutoCloseSchedule, settings.AutoCloseAfter, settings.AutoCloseBatch, logger,
		),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.eventRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start event relay job: %w", err)
	}

	if err := jm.orderAutoCloseJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.eventRelayJob.Stop()
		return fmt.Errorf("failed to start order auto close job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderAutoCloseJob.Stop()
	jm.eventRelayJob.Stop()
}
