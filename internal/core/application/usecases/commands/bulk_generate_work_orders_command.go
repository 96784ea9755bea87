package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrBulkGenerateWorkOrdersCommandIsNotConstructed = errors.New(
	"BulkGenerateWorkOrdersCommand must be created via NewBulkGenerateWorkOrdersCommand constructor",
)

// BulkGenerateWorkOrdersCommand represents a request to open work orders for
// a batch of approved design jobs. Each creation is independently idempotent;
// jobs that are not approved are reported as failures.
type BulkGenerateWorkOrdersCommand struct { //nolint:recvcheck //using for validation
	orgID        kernel.UUID
	designJobIDs []kernel.UUID
	actorID      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkGenerateWorkOrdersCommand creates a batch work order generation
// command. At least one design job is required.
func NewBulkGenerateWorkOrdersCommand(orgID kernel.UUID, designJobIDs []kernel.UUID, actorID *kernel.UUID) (BulkGenerateWorkOrdersCommand, error) {
	if err := errors.Join(
		orgID.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return BulkGenerateWorkOrdersCommand{}, err
	}
	if len(designJobIDs) == 0 {
		return BulkGenerateWorkOrdersCommand{}, errs.NewValueIsRequiredError("design job ids")
	}
	for _, id := range designJobIDs {
		if err := id.Validate(); err != nil {
			return BulkGenerateWorkOrdersCommand{}, err
		}
	}

	return BulkGenerateWorkOrdersCommand{
		orgID:        orgID,
		designJobIDs: append([]kernel.UUID(nil), designJobIDs...),
		actorID:      actorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkGenerateWorkOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkGenerateWorkOrdersCommandIsNotConstructed)
}

// OrgID returns the organization the design jobs belong to.
func (c BulkGenerateWorkOrdersCommand) OrgID() kernel.UUID { return c.orgID }

// DesignJobIDs returns a copy of the batch.
func (c BulkGenerateWorkOrdersCommand) DesignJobIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.designJobIDs...)
}

// ActorID returns the acting user, or nil for engine-originated requests.
func (c BulkGenerateWorkOrdersCommand) ActorID() *kernel.UUID { return c.actorID }
