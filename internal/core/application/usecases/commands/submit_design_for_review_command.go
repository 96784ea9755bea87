package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrSubmitDesignForReviewCommandIsNotConstructed = errors.New(
	"SubmitDesignForReviewCommand must be created via NewSubmitDesignForReviewCommand constructor",
)

// SubmitDesignForReviewCommand represents a designer handing a draft over for
// review.
type SubmitDesignForReviewCommand struct { //nolint:recvcheck //using for validation
	orgID       kernel.UUID
	designJobID kernel.UUID
	actorID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSubmitDesignForReviewCommand creates a command to submit a design for
// review.
func NewSubmitDesignForReviewCommand(orgID, designJobID kernel.UUID, actorID *kernel.UUID) (SubmitDesignForReviewCommand, error) {
	if err := errors.Join(
		orgID.Validate(),
		designJobID.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return SubmitDesignForReviewCommand{}, err
	}

	return SubmitDesignForReviewCommand{
		orgID:       orgID,
		designJobID: designJobID,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitDesignForReviewCommand) Validate() error {
	return c.guard.Validate(ErrSubmitDesignForReviewCommandIsNotConstructed)
}

// OrgID returns the organization the job belongs to.
func (c SubmitDesignForReviewCommand) OrgID() kernel.UUID { return c.orgID }

// DesignJobID returns the job being submitted.
func (c SubmitDesignForReviewCommand) DesignJobID() kernel.UUID { return c.designJobID }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c SubmitDesignForReviewCommand) ActorID() *kernel.UUID { return c.actorID }
