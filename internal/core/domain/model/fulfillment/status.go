package fulfillment

import (
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
)

// Status represents the fulfillment stage of an order item. The string values
// form a closed vocabulary persisted verbatim. Terminal states are completed
// and cancelled; exception is a recoverable parking state.
type Status string

const (
	NotStarted  Status = "not_started"
	Preparation Status = "preparation"
	Packaging   Status = "packaging"
	ReadyToShip Status = "ready_to_ship"
	Shipped     Status = "shipped"
	InTransit   Status = "in_transit"
	Delivered   Status = "delivered"
	Completed   Status = "completed"
	Exception   Status = "exception"
	Cancelled   Status = "cancelled"
)

// Transitions returns the directed transition graph for fulfillment stages.
func Transitions() kernel.StatusGraph[Status] {
	return kernel.StatusGraph[Status]{
		NotStarted:  {Preparation, Cancelled},
		Preparation: {Packaging, Exception, Cancelled},
		Packaging:   {ReadyToShip, Exception, Cancelled},
		ReadyToShip: {Shipped, Exception, Cancelled},
		Shipped:     {InTransit, Delivered, Exception},
		InTransit:   {Delivered, Exception},
		Delivered:   {Completed, Exception},
		Exception:   {Preparation, Packaging, ReadyToShip, Cancelled},
		Completed:   {},
		Cancelled:   {},
	}
}

// Validate checks that the status is part of the closed fulfillment
// vocabulary.
func (s Status) Validate() error {
	if !Transitions().Contains(s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid fulfillment status", string(s)))
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
