package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrReportProductionDelayCommandIsNotConstructed = errors.New(
	"ReportProductionDelayCommand must be created via NewReportProductionDelayCommand constructor",
)

// ReportProductionDelayCommand represents a manufacturer reporting a delay on
// a work order. Hold requests additionally park the work order in on_hold.
type ReportProductionDelayCommand struct { //nolint:recvcheck //using for validation
	orgID       kernel.UUID
	workOrderID kernel.UUID
	reason      string
	hold        bool
	actorID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewReportProductionDelayCommand creates a delay report. The reason is
// required.
func NewReportProductionDelayCommand(
	orgID, workOrderID kernel.UUID,
	reason string,
	hold bool,
	actorID *kernel.UUID,
) (ReportProductionDelayCommand, error) {
	if err := errors.Join(
		orgID.Validate(),
		workOrderID.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return ReportProductionDelayCommand{}, err
	}
	if reason == "" {
		return ReportProductionDelayCommand{}, errs.NewValueIsRequiredError("delay reason")
	}

	return ReportProductionDelayCommand{
		orgID:       orgID,
		workOrderID: workOrderID,
		reason:      reason,
		hold:        hold,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportProductionDelayCommand) Validate() error {
	return c.guard.Validate(ErrReportProductionDelayCommandIsNotConstructed)
}

// OrgID returns the organization the work order belongs to.
func (c ReportProductionDelayCommand) OrgID() kernel.UUID { return c.orgID }

// WorkOrderID returns the delayed work order.
func (c ReportProductionDelayCommand) WorkOrderID() kernel.UUID { return c.workOrderID }

// Reason returns why production is delayed.
func (c ReportProductionDelayCommand) Reason() string { return c.reason }

// Hold reports whether the work order should also move to on_hold.
func (c ReportProductionDelayCommand) Hold() bool { return c.hold }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c ReportProductionDelayCommand) ActorID() *kernel.UUID { return c.actorID }
