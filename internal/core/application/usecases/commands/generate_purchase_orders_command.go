package commands

import (
	"errors"
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrGeneratePurchaseOrdersCommandIsNotConstructed = errors.New(
	"GeneratePurchaseOrdersCommand must be created via NewGeneratePurchaseOrdersCommand constructor",
)

// GeneratePurchaseOrdersCommand represents a request to sweep the pending
// material requirements of the given work orders into supplier purchase
// orders. A threshold of zero falls back to the default approval threshold.
type GeneratePurchaseOrdersCommand struct { //nolint:recvcheck //using for validation
	orgID         kernel.UUID
	workOrderIDs  []kernel.UUID
	thresholdCent int64
	actorID       *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGeneratePurchaseOrdersCommand creates a purchase order generation
// command. At least one work order is required.
func NewGeneratePurchaseOrdersCommand(
	orgID kernel.UUID,
	workOrderIDs []kernel.UUID,
	thresholdCent int64,
	actorID *kernel.UUID,
) (GeneratePurchaseOrdersCommand, error) {
	if err := errors.Join(
		orgID.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return GeneratePurchaseOrdersCommand{}, err
	}
	if len(workOrderIDs) == 0 {
		return GeneratePurchaseOrdersCommand{}, errs.NewValueIsRequiredError("work order ids")
	}
	for _, id := range workOrderIDs {
		if err := id.Validate(); err != nil {
			return GeneratePurchaseOrdersCommand{}, err
		}
	}
	if thresholdCent < 0 {
		return GeneratePurchaseOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"approval threshold is invalid",
			fmt.Errorf("%d is negative", thresholdCent))
	}

	return GeneratePurchaseOrdersCommand{
		orgID:         orgID,
		workOrderIDs:  append([]kernel.UUID(nil), workOrderIDs...),
		thresholdCent: thresholdCent,
		actorID:       actorID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GeneratePurchaseOrdersCommand) Validate() error {
	return c.guard.Validate(ErrGeneratePurchaseOrdersCommandIsNotConstructed)
}

// OrgID returns the organization the work orders belong to.
func (c GeneratePurchaseOrdersCommand) OrgID() kernel.UUID { return c.orgID }

// WorkOrderIDs returns a copy of the work orders to sweep.
func (c GeneratePurchaseOrdersCommand) WorkOrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.workOrderIDs...)
}

// ThresholdCent returns the approval threshold override, zero for the
// default.
func (c GeneratePurchaseOrdersCommand) ThresholdCent() int64 { return c.thresholdCent }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c GeneratePurchaseOrdersCommand) ActorID() *kernel.UUID { return c.actorID }
