package purchaseorder

import (
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
)

// DefaultApprovalThresholdCent applies when the caller does not supply an
// approval threshold: orders totalling less skip the approval queue.
const DefaultApprovalThresholdCent int64 = 500_000

// Status represents the lifecycle state of a purchase order. The string
// values form a closed vocabulary persisted verbatim.
//
// A draft below the approval threshold may move straight to approved; larger
// orders go through pending_approval. Terminal states are completed and
// cancelled.
type Status string

const (
	Draft           Status = "draft"
	PendingApproval Status = "pending_approval"
	Approved        Status = "approved"
	Sent            Status = "sent"
	Acknowledged    Status = "acknowledged"
	InProduction    Status = "in_production"
	Shipped         Status = "shipped"
	Delivered       Status = "delivered"
	Received        Status = "received"
	Completed       Status = "completed"
	Cancelled       Status = "cancelled"
	OnHold          Status = "on_hold"
)

// Transitions returns the directed transition graph for purchase order
// statuses.
func Transitions() kernel.StatusGraph[Status] {
	return kernel.StatusGraph[Status]{
		Draft:           {PendingApproval, Approved, Cancelled},
		PendingApproval: {Approved, Draft, Cancelled},
		Approved:        {Sent, Cancelled},
		Sent:            {Acknowledged, InProduction, OnHold, Cancelled},
		Acknowledged:    {InProduction, OnHold, Cancelled},
		InProduction:    {Shipped, OnHold, Cancelled},
		Shipped:         {Delivered},
		Delivered:       {Received},
		Received:        {Completed},
		OnHold:          {Sent, InProduction, Cancelled},
		Completed:       {},
		Cancelled:       {},
	}
}

// Validate checks that the status is part of the closed purchase order
// vocabulary.
func (s Status) Validate() error {
	if !Transitions().Contains(s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid purchase order status", string(s)))
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
