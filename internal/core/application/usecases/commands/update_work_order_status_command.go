package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"
	"manufacturing/internal/pkg/guard"
)

var ErrUpdateWorkOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateWorkOrderStatusCommand must be created via NewUpdateWorkOrderStatusCommand constructor",
)

// UpdateWorkOrderStatusCommand represents a primary status transition of a
// work order. Illegal target statuses are rejected at construction; illegal
// transitions are rejected by the aggregate.
type UpdateWorkOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orgID        kernel.UUID
	workOrderID  kernel.UUID
	to           workorder.Status
	qualityNotes string
	actorID      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateWorkOrderStatusCommand creates a command to move a work order to a
// new status. Quality notes are optional and recorded with the transition.
func NewUpdateWorkOrderStatusCommand(
	orgID, workOrderID kernel.UUID,
	to workorder.Status,
	qualityNotes string,
	actorID *kernel.UUID,
) (UpdateWorkOrderStatusCommand, error) {
	if err := errors.Join(
		orgID.Validate(),
		workOrderID.Validate(),
		to.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return UpdateWorkOrderStatusCommand{}, err
	}

	return UpdateWorkOrderStatusCommand{
		orgID:        orgID,
		workOrderID:  workOrderID,
		to:           to,
		qualityNotes: qualityNotes,
		actorID:      actorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateWorkOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateWorkOrderStatusCommandIsNotConstructed)
}

// OrgID returns the organization the work order belongs to.
func (c UpdateWorkOrderStatusCommand) OrgID() kernel.UUID { return c.orgID }

// WorkOrderID returns the work order to transition.
func (c UpdateWorkOrderStatusCommand) WorkOrderID() kernel.UUID { return c.workOrderID }

// To returns the target status.
func (c UpdateWorkOrderStatusCommand) To() workorder.Status { return c.to }

// QualityNotes returns notes to record with the transition, empty when none.
func (c UpdateWorkOrderStatusCommand) QualityNotes() string { return c.qualityNotes }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c UpdateWorkOrderStatusCommand) ActorID() *kernel.UUID { return c.actorID }
