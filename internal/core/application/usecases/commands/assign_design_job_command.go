package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrAssignDesignJobCommandIsNotConstructed = errors.New(
	"AssignDesignJobCommand must be created via NewAssignDesignJobCommand constructor",
)

// AssignDesignJobCommand represents an explicit request to hand a design job
// to a specific designer.
type AssignDesignJobCommand struct { //nolint:recvcheck //using for validation
	orgID       kernel.UUID
	designJobID kernel.UUID
	designerID  kernel.UUID
	actorID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDesignJobCommand creates a command to assign a design job.
func NewAssignDesignJobCommand(orgID, designJobID, designerID kernel.UUID, actorID *kernel.UUID) (AssignDesignJobCommand, error) {
	cmd := AssignDesignJobCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orgID.Validate(),
		designJobID.Validate(),
		designerID.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return AssignDesignJobCommand{}, err
	}

	cmd.orgID = orgID
	cmd.designJobID = designJobID
	cmd.designerID = designerID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDesignJobCommand) Validate() error {
	return c.guard.Validate(ErrAssignDesignJobCommandIsNotConstructed)
}

// OrgID returns the organization the job belongs to.
func (c AssignDesignJobCommand) OrgID() kernel.UUID { return c.orgID }

// DesignJobID returns the job to assign.
func (c AssignDesignJobCommand) DesignJobID() kernel.UUID { return c.designJobID }

// DesignerID returns the designer to assign the job to.
func (c AssignDesignJobCommand) DesignerID() kernel.UUID { return c.designerID }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c AssignDesignJobCommand) ActorID() *kernel.UUID { return c.actorID }

func validateOptionalActor(actorID *kernel.UUID) error {
	if actorID == nil {
		return nil
	}
	return actorID.Validate()
}
