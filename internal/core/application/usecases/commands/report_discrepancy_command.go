package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrReportDiscrepancyCommandIsNotConstructed = errors.New(
	"ReportDiscrepancyCommand must be created via NewReportDiscrepancyCommand constructor",
)

// ReportDiscrepancyCommand records received quantities that differ from the
// ordered ones.
type ReportDiscrepancyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   services.Actor
	reports []order.DiscrepancyReport
	notes   string

	guard guard.ConstructorGuard
}

func NewReportDiscrepancyCommand(
	orderID kernel.UUID,
	actor services.Actor,
	reports []order.DiscrepancyReport,
	notes string,
) (ReportDiscrepancyCommand, error) {
	var orderErr, reportsErr error
	if err := orderID.Validate(); err != nil {
		orderErr = errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if len(reports) == 0 {
		reportsErr = errs.NewValueIsRequiredError("discrepancy items")
	}

	if err := errors.Join(orderErr, actor.Validate(), reportsErr); err != nil {
		return ReportDiscrepancyCommand{}, err
	}

	copied := make([]order.DiscrepancyReport, len(reports))
	copy(copied, reports)

	return ReportDiscrepancyCommand{
		orderID: orderID,
		actor:   actor,
		reports: copied,
		notes:   strings.TrimSpace(notes),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReportDiscrepancyCommand) Validate() error {
	return c.guard.Validate(ErrReportDiscrepancyCommandIsNotConstructed)
}

func (c ReportDiscrepancyCommand) OrderID() kernel.UUID  { return c.orderID }
func (c ReportDiscrepancyCommand) Actor() services.Actor { return c.actor }
func (c ReportDiscrepancyCommand) Notes() string         { return c.notes }

func (c ReportDiscrepancyCommand) Reports() []order.DiscrepancyReport {
	reports := make([]order.DiscrepancyReport, len(c.reports))
	copy(reports, c.reports)
	return reports
}
