package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type closeDeliveredOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.CloseDeliveredOrdersCommand) (int, error)
}

// OrderAutoCloseJob closes orders that stayed DELIVERED for longer than olderThan.
type OrderAutoCloseJob struct {
	handler   closeDeliveredOrdersHandler
	schedule  string
	olderThan time.Duration
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOrderAutoCloseJob(
	handler closeDeliveredOrdersHandler,
	schedule string,
	olderThan time.Duration,
	batchSize int,
	logger *slog.Logger,
) *OrderAutoCloseJob {
	return &OrderAutoCloseJob{
		handler:   handler,
		schedule:  schedule,
		olderThan: olderThan,
		batchSize: batchSize,
		cron:      newCron(),
		logger:    logger.With("component", "order_auto_close_job"),
	}
}

func (j *OrderAutoCloseJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order auto close job started",
		"schedule", j.schedule, "older_than", j.olderThan.String())
	return nil
}

func (j *OrderAutoCloseJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order auto close job stopped")
}

func (j *OrderAutoCloseJob) run(ctx context.Context) {
	cmd, err := commands.NewCloseDeliveredOrdersCommand(j.olderThan, j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order auto close job misconfigured", "error", err)
		return
	}

	closed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order auto close job failed", "error", err, "closed", closed)
		return
	}
	if closed > 0 {
		j.logger.InfoContext(ctx, "Closed delivered orders", "closed", closed)
	}
}
