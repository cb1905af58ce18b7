package commands

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCloseDeliveredOrdersCommandIsNotConstructed = errors.New(
	"CloseDeliveredOrdersCommand must be created via NewCloseDeliveredOrdersCommand constructor",
)

// CloseDeliveredOrdersCommand closes DELIVERED orders nobody touched for olderThan.
type CloseDeliveredOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

func NewCloseDeliveredOrdersCommand(olderThan time.Duration, batchSize int) (CloseDeliveredOrdersCommand, error) {
	var ageErr, batchErr error
	if olderThan <= 0 {
		ageErr = errs.NewValueIsInvalidErrorWithCause("auto close age", fmt.Errorf("%s is not positive", olderThan))
	}
	if batchSize <= 0 {
		batchErr = errs.NewValueIsInvalidErrorWithCause("batch size", fmt.Errorf("%d is not greater than 0", batchSize))
	}
	if err := errors.Join(ageErr, batchErr); err != nil {
		return CloseDeliveredOrdersCommand{}, err
	}

	return CloseDeliveredOrdersCommand{
		olderThan: olderThan,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CloseDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCloseDeliveredOrdersCommandIsNotConstructed)
}

func (c CloseDeliveredOrdersCommand) OlderThan() time.Duration { return c.olderThan }
func (c CloseDeliveredOrdersCommand) BatchSize() int           { return c.batchSize }
