package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrApprovePurchaseOrderCommandIsNotConstructed = errors.New(
	"ApprovePurchaseOrderCommand must be created via NewApprovePurchaseOrderCommand constructor",
)

// ApprovePurchaseOrderCommand represents approval of a purchase order that
// exceeded the auto-approval threshold.
type ApprovePurchaseOrderCommand struct { //nolint:recvcheck //using for validation
	orgID           kernel.UUID
	purchaseOrderID kernel.UUID
	actorID         *kernel.UUID

	guard guard.ConstructorGuard
}

// NewApprovePurchaseOrderCommand creates a purchase order approval command.
func NewApprovePurchaseOrderCommand(orgID, purchaseOrderID kernel.UUID, actorID *kernel.UUID) (ApprovePurchaseOrderCommand, error) {
	if err := errors.Join(
		orgID.Validate(),
		purchaseOrderID.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return ApprovePurchaseOrderCommand{}, err
	}

	return ApprovePurchaseOrderCommand{
		orgID:           orgID,
		purchaseOrderID: purchaseOrderID,
		actorID:         actorID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApprovePurchaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrApprovePurchaseOrderCommandIsNotConstructed)
}

// OrgID returns the organization the purchase order belongs to.
func (c ApprovePurchaseOrderCommand) OrgID() kernel.UUID { return c.orgID }

// PurchaseOrderID returns the purchase order to approve.
func (c ApprovePurchaseOrderCommand) PurchaseOrderID() kernel.UUID { return c.purchaseOrderID }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c ApprovePurchaseOrderCommand) ActorID() *kernel.UUID { return c.actorID }
