package designjob

import (
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
)

// Status represents the lifecycle state of a design job. Values are persisted
// verbatim, so the string constants form a closed vocabulary that must not be
// renamed.
//
// State machine:
//
//	queued ──> assigned ──> drafting ──> submitted_for_review ──> under_review
//	                                            │                     │
//	              ┌─────────────────────────────┴──────┬──────────────┤
//	              v                                    v              v
//	       revision_requested                       approved       rejected
//
// Every non-terminal state can also move to canceled. Terminal states are
// approved and canceled.
type Status string

const (
	Queued             Status = "queued"
	Assigned           Status = "assigned"
	Drafting           Status = "drafting"
	SubmittedForReview Status = "submitted_for_review"
	UnderReview        Status = "under_review"
	RevisionRequested  Status = "revision_requested"
	Approved           Status = "approved"
	Rejected           Status = "rejected"
	Canceled           Status = "canceled"
)

// Transitions returns the directed transition graph for design job statuses.
// A fresh graph is returned on every call so callers cannot mutate the
// package's source of truth.
func Transitions() kernel.StatusGraph[Status] {
	return kernel.StatusGraph[Status]{
		Queued:             {Assigned, Canceled},
		Assigned:           {Drafting, Queued, Canceled},
		Drafting:           {SubmittedForReview, Canceled},
		SubmittedForReview: {UnderReview, Approved, RevisionRequested, Rejected, Canceled},
		UnderReview:        {Approved, RevisionRequested, Rejected, Canceled},
		RevisionRequested:  {Drafting, SubmittedForReview, Canceled},
		Rejected:           {Drafting, Canceled},
		Approved:           {},
		Canceled:           {},
	}
}

// Validate checks that the status is part of the closed design job vocabulary.
func (s Status) Validate() error {
	if !Transitions().Contains(s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid design job status", string(s)))
	}
	return nil
}

// String returns the persisted representation of the status.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether moving to the target status is legal.
func (s Status) CanTransitionTo(to Status) bool {
	return Transitions().CanTransition(s, to)
}

// ValidTransitions returns the statuses reachable from this one.
func (s Status) ValidTransitions() []Status {
	return Transitions().ValidTransitions(s)
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return Transitions().IsTerminal(s)
}
