package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrReceivePurchaseOrderCommandIsNotConstructed = errors.New(
	"ReceivePurchaseOrderCommand must be created via NewReceivePurchaseOrderCommand constructor",
)

// ReceivePurchaseOrderCommand represents the warehouse receiving a delivered
// purchase order.
type ReceivePurchaseOrderCommand struct { //nolint:recvcheck //using for validation
	orgID           kernel.UUID
	purchaseOrderID kernel.UUID
	actorID         *kernel.UUID

	guard guard.ConstructorGuard
}

// NewReceivePurchaseOrderCommand creates a purchase order receipt command.
func NewReceivePurchaseOrderCommand(orgID, purchaseOrderID kernel.UUID, actorID *kernel.UUID) (ReceivePurchaseOrderCommand, error) {
	if err := errors.Join(
		orgID.Validate(),
		purchaseOrderID.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return ReceivePurchaseOrderCommand{}, err
	}

	return ReceivePurchaseOrderCommand{
		orgID:           orgID,
		purchaseOrderID: purchaseOrderID,
		actorID:         actorID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceivePurchaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrReceivePurchaseOrderCommandIsNotConstructed)
}

// OrgID returns the organization the purchase order belongs to.
func (c ReceivePurchaseOrderCommand) OrgID() kernel.UUID { return c.orgID }

// PurchaseOrderID returns the received purchase order.
func (c ReceivePurchaseOrderCommand) PurchaseOrderID() kernel.UUID { return c.purchaseOrderID }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c ReceivePurchaseOrderCommand) ActorID() *kernel.UUID { return c.actorID }
