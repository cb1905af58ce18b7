package commands

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrRelayEventsCommandIsNotConstructed = errors.New(
	"RelayEventsCommand must be created via NewRelayEventsCommand constructor",
)

// RelayEventsCommand re-broadcasts events whose broadcast never succeeded.
// Only events older than grace are picked so in-flight commits are left alone.
type RelayEventsCommand struct { //nolint:recvcheck //using for validation
	batchSize int
	grace     time.Duration

	guard guard.ConstructorGuard
}

func NewRelayEventsCommand(batchSize int, grace time.Duration) (RelayEventsCommand, error) {
	if batchSize <= 0 {
		return RelayEventsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batch size",
			fmt.Errorf("%d is not greater than 0", batchSize),
		)
	}
	if grace < 0 {
		return RelayEventsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"grace period",
			fmt.Errorf("%s is negative", grace),
		)
	}

	return RelayEventsCommand{batchSize: batchSize, grace: grace, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayEventsCommand) Validate() error {
	return c.guard.Validate(ErrRelayEventsCommandIsNotConstructed)
}

func (c RelayEventsCommand) BatchSize() int       { return c.batchSize }
func (c RelayEventsCommand) Grace() time.Duration { return c.grace }
