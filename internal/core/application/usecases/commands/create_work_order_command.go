package commands

import (
	"errors"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrCreateWorkOrderCommandIsNotConstructed = errors.New(
	"CreateWorkOrderCommand must be created via NewCreateWorkOrderCommand constructor",
)

// CreateWorkOrderCommand represents a request to open the manufacturing stage
// for an order item. Creation is idempotent per (organization, order item).
type CreateWorkOrderCommand struct { //nolint:recvcheck //using for validation
	orgID        kernel.UUID
	orderItemID  kernel.UUID
	quantity     int
	priority     int
	plannedStart *time.Time
	plannedEnd   *time.Time
	actorID      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateWorkOrderCommand creates a command to open a work order. The
// planned window is optional but must come as a pair when present.
func NewCreateWorkOrderCommand(
	orgID, orderItemID kernel.UUID,
	quantity, priority int,
	plannedStart, plannedEnd *time.Time,
	actorID *kernel.UUID,
) (CreateWorkOrderCommand, error) {
	if err := errors.Join(
		orgID.Validate(),
		orderItemID.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return CreateWorkOrderCommand{}, err
	}
	if quantity <= 0 {
		return CreateWorkOrderCommand{}, errs.NewValueIsInvalidError("quantity must be greater than 0")
	}
	if priority < workorder.MinPriority || priority > workorder.MaxPriority {
		return CreateWorkOrderCommand{}, errs.NewValueIsOutOfRangeError("priority", priority,
			workorder.MinPriority, workorder.MaxPriority)
	}
	if (plannedStart == nil) != (plannedEnd == nil) {
		return CreateWorkOrderCommand{}, errs.NewValueIsInvalidError(
			"planned start and planned end must be set together")
	}

	return CreateWorkOrderCommand{
		orgID:        orgID,
		orderItemID:  orderItemID,
		quantity:     quantity,
		priority:     priority,
		plannedStart: plannedStart,
		plannedEnd:   plannedEnd,
		actorID:      actorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrderCommandIsNotConstructed)
}

// OrgID returns the organization the work order belongs to.
func (c CreateWorkOrderCommand) OrgID() kernel.UUID { return c.orgID }

// OrderItemID returns the order item to manufacture.
func (c CreateWorkOrderCommand) OrderItemID() kernel.UUID { return c.orderItemID }

// Quantity returns the number of units to manufacture.
func (c CreateWorkOrderCommand) Quantity() int { return c.quantity }

// Priority returns the work order priority.
func (c CreateWorkOrderCommand) Priority() int { return c.priority }

// PlannedStart returns the planned production start, if any.
func (c CreateWorkOrderCommand) PlannedStart() *time.Time { return c.plannedStart }

// PlannedEnd returns the planned production end, if any.
func (c CreateWorkOrderCommand) PlannedEnd() *time.Time { return c.plannedEnd }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c CreateWorkOrderCommand) ActorID() *kernel.UUID { return c.actorID }
