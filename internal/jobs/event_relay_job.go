package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type relayEventsHandler interface {
	Handle(ctx context.Context, cmd commands.RelayEventsCommand) (int, error)
}

// EventRelayJob periodically hands unpublished events to the message bus.
type EventRelayJob struct {
	handler   relayEventsHandler
	schedule  string
	batchSize int
	grace     time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewEventRelayJob(
	handler relayEventsHandler,
	schedule string,
	batchSize int,
	grace time.Duration,
	logger *slog.Logger,
) *EventRelayJob {
	return &EventRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		grace:     grace,
		cron:      newCron(),
		logger:    logger.With("component", "event_relay_job"),
	}
}

func (j *EventRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Event relay job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running relay to finish.
func (j *EventRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Event relay job stopped")
}

func (j *EventRelayJob) run(ctx context.Context) {
	cmd, err := commands.NewRelayEventsCommand(j.batchSize, j.grace)
	if err != nil {
		j.logger.ErrorContext(ctx, "Event relay job misconfigured", "error", err)
		return
	}

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Event relay job failed", "error", err, "sent", sent)
		return
	}
	if sent > 0 {
		j.logger.DebugContext(ctx, "Relayed unpublished events", "sent", sent)
	}
}

func newCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}
