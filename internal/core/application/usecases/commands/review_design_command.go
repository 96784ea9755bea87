package commands

import (
	"errors"
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrReviewDesignCommandIsNotConstructed = errors.New(
	"ReviewDesignCommand must be created via NewReviewDesignCommand constructor",
)

// ReviewDecision is the reviewer's verdict on a submitted design.
type ReviewDecision string

const (
	DecisionApprove          ReviewDecision = "approve"
	DecisionRequestRevisions ReviewDecision = "request_revisions"
	DecisionReject           ReviewDecision = "reject"
)

// Validate checks the decision is one of the known verdicts.
func (d ReviewDecision) Validate() error {
	switch d {
	case DecisionApprove, DecisionRequestRevisions, DecisionReject:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("decision is invalid",
			fmt.Errorf("%q is not a valid review decision", string(d)))
	}
}

// ReviewDesignCommand represents a reviewer's verdict on a design job.
// Approval is the trigger for the work order auto-creation cascade.
type ReviewDesignCommand struct { //nolint:recvcheck //using for validation
	orgID       kernel.UUID
	designJobID kernel.UUID
	decision    ReviewDecision
	notes       string
	actorID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewReviewDesignCommand creates a command carrying a review verdict.
func NewReviewDesignCommand(
	orgID, designJobID kernel.UUID,
	decision ReviewDecision,
	notes string,
	actorID *kernel.UUID,
) (ReviewDesignCommand, error) {
	if err := errors.Join(
		orgID.Validate(),
		designJobID.Validate(),
		decision.Validate(),
		validateOptionalActor(actorID),
	); err != nil {
		return ReviewDesignCommand{}, err
	}

	return ReviewDesignCommand{
		orgID:       orgID,
		designJobID: designJobID,
		decision:    decision,
		notes:       notes,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewDesignCommand) Validate() error {
	return c.guard.Validate(ErrReviewDesignCommandIsNotConstructed)
}

// OrgID returns the organization the job belongs to.
func (c ReviewDesignCommand) OrgID() kernel.UUID { return c.orgID }

// DesignJobID returns the reviewed job.
func (c ReviewDesignCommand) DesignJobID() kernel.UUID { return c.designJobID }

// Decision returns the reviewer's verdict.
func (c ReviewDesignCommand) Decision() ReviewDecision { return c.decision }

// Notes returns the reviewer's free-form notes.
func (c ReviewDesignCommand) Notes() string { return c.notes }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c ReviewDesignCommand) ActorID() *kernel.UUID { return c.actorID }
