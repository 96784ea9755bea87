package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrAssignManufacturerCommandIsNotConstructed = errors.New(
	"AssignManufacturerCommand must be created via NewAssignManufacturerCommand constructor",
)

// AssignManufacturerCommand represents a request to hand a work order to a
// specific manufacturer.
type AssignManufacturerCommand struct { //nolint:recvcheck //using for validation
	orgID          kernel.UUID
	workOrderID    kernel.UUID
	manufacturerID kernel.UUID
	actorID        *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignManufacturerCommand creates a command to assign a work order.
func NewAssignManufacturerCommand(orgID, workOrderID, manufacturerID kernel.UUID, actorID *kernel.UUID) (AssignManufacturerCommand, error) {
	if err := errors.Join(
		orgID.Validate(),
		workOrderID.Validate(),
		manufacturerID.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return AssignManufacturerCommand{}, err
	}

	return AssignManufacturerCommand{
		orgID:          orgID,
		workOrderID:    workOrderID,
		manufacturerID: manufacturerID,
		actorID:        actorID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignManufacturerCommand) Validate() error {
	return c.guard.Validate(ErrAssignManufacturerCommandIsNotConstructed)
}

// OrgID returns the organization the work order belongs to.
func (c AssignManufacturerCommand) OrgID() kernel.UUID { return c.orgID }

// WorkOrderID returns the work order to assign.
func (c AssignManufacturerCommand) WorkOrderID() kernel.UUID { return c.workOrderID }

// ManufacturerID returns the manufacturer to assign the work order to.
func (c AssignManufacturerCommand) ManufacturerID() kernel.UUID { return c.manufacturerID }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c AssignManufacturerCommand) ActorID() *kernel.UUID { return c.actorID }
