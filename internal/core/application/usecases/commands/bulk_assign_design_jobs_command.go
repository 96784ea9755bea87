package commands

import (
	"errors"
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrBulkAssignDesignJobsCommandIsNotConstructed = errors.New(
	"BulkAssignDesignJobsCommand must be created via NewBulkAssignDesignJobsCommand constructor",
)

// AssignmentMode selects how a bulk assignment distributes jobs.
type AssignmentMode string

const (
	// ModeExplicit assigns each job to the designer named next to it.
	ModeExplicit AssignmentMode = "explicit"
	// ModeSmart lets the assignment scheduler pick designers by score.
	ModeSmart AssignmentMode = "smart"
)

// Validate checks the mode is one of the known assignment modes.
func (m AssignmentMode) Validate() error {
	if m != ModeExplicit && m != ModeSmart {
		return errs.NewValueIsInvalidErrorWithCause("mode is invalid",
			fmt.Errorf("%q is not a valid assignment mode", string(m)))
	}
	return nil
}

// ExplicitPair names one job-to-designer assignment in explicit mode.
type ExplicitPair struct {
	DesignJobID kernel.UUID
	DesignerID  kernel.UUID
}

// BulkAssignDesignJobsCommand represents a batch assignment request. In
// explicit mode the pairs drive the batch; in smart mode the job IDs do (an
// empty list means every queued unassigned job of the organization).
type BulkAssignDesignJobsCommand struct { //nolint:recvcheck //using for validation
	orgID            kernel.UUID
	mode             AssignmentMode
	pairs            []ExplicitPair
	designJobIDs     []kernel.UUID
	capacityOverride *int
	actorID          *kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkAssignDesignJobsCommand creates a batch assignment command.
// Explicit mode requires at least one pair; smart mode ignores pairs.
func NewBulkAssignDesignJobsCommand(
	orgID kernel.UUID,
	mode AssignmentMode,
	pairs []ExplicitPair,
	designJobIDs []kernel.UUID,
	capacityOverride *int,
	actorID *kernel.UUID,
) (BulkAssignDesignJobsCommand, error) {
	if err := errors.Join(
		orgID.Validate(),
		mode.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return BulkAssignDesignJobsCommand{}, err
	}
	if mode == ModeExplicit && len(pairs) == 0 {
		return BulkAssignDesignJobsCommand{}, errs.NewValueIsRequiredError("assignment pairs")
	}
	for _, pair := range pairs {
		if err := errors.Join(pair.DesignJobID.Validate(), pair.DesignerID.Validate()); err != nil {
			return BulkAssignDesignJobsCommand{}, err
		}
	}
	for _, id := range designJobIDs {
		if err := id.Validate(); err != nil {
			return BulkAssignDesignJobsCommand{}, err
		}
	}
	if capacityOverride != nil && *capacityOverride <= 0 {
		return BulkAssignDesignJobsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"capacity override is invalid",
			fmt.Errorf("%d is not greater than 0", *capacityOverride))
	}

	return BulkAssignDesignJobsCommand{
		orgID:            orgID,
		mode:             mode,
		pairs:            append([]ExplicitPair(nil), pairs...),
		designJobIDs:     append([]kernel.UUID(nil), designJobIDs...),
		capacityOverride: capacityOverride,
		actorID:          actorID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkAssignDesignJobsCommand) Validate() error {
	return c.guard.Validate(ErrBulkAssignDesignJobsCommandIsNotConstructed)
}

// OrgID returns the organization whose jobs are assigned.
func (c BulkAssignDesignJobsCommand) OrgID() kernel.UUID { return c.orgID }

// Mode returns the distribution mode.
func (c BulkAssignDesignJobsCommand) Mode() AssignmentMode { return c.mode }

// Pairs returns a copy of the explicit job-to-designer pairs.
func (c BulkAssignDesignJobsCommand) Pairs() []ExplicitPair {
	return append([]ExplicitPair(nil), c.pairs...)
}

// DesignJobIDs returns a copy of the smart-mode job selection.
func (c BulkAssignDesignJobsCommand) DesignJobIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.designJobIDs...)
}

// CapacityOverride returns the per-call capacity limit, or nil.
func (c BulkAssignDesignJobsCommand) CapacityOverride() *int { return c.capacityOverride }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c BulkAssignDesignJobsCommand) ActorID() *kernel.UUID { return c.actorID }
