package workorder

import (
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
)

// Status represents the lifecycle state of a work order. The string values
// form a closed vocabulary persisted verbatim.
//
// Terminal states are shipped and cancelled. on_hold is a parking state that
// can resume into queued or in_production.
type Status string

const (
	Pending      Status = "pending"
	Queued       Status = "queued"
	InProduction Status = "in_production"
	QualityCheck Status = "quality_check"
	Rework       Status = "rework"
	Packaging    Status = "packaging"
	Completed    Status = "completed"
	Shipped      Status = "shipped"
	Cancelled    Status = "cancelled"
	OnHold       Status = "on_hold"
)

// Transitions returns the directed transition graph for work order statuses.
func Transitions() kernel.StatusGraph[Status] {
	return kernel.StatusGraph[Status]{
		Pending:      {Queued, Cancelled},
		Queued:       {InProduction, OnHold, Cancelled},
		InProduction: {QualityCheck, Completed, OnHold, Cancelled},
		QualityCheck: {Packaging, Rework, Completed, OnHold},
		Rework:       {QualityCheck, InProduction, Cancelled},
		Packaging:    {Completed, Shipped},
		Completed:    {Shipped},
		OnHold:       {Queued, InProduction, Cancelled},
		Shipped:      {},
		Cancelled:    {},
	}
}

// MaterialsPendingStatuses lists the statuses on whose entry the engine scans
// for pending material requirements and, when any exist, triggers bulk
// purchase-order generation.
func MaterialsPendingStatuses() []Status {
	return []Status{Queued, InProduction}
}

// IsMaterialsPending reports whether entering this status triggers the
// material-requirements scan.
func (s Status) IsMaterialsPending() bool {
	for _, st := range MaterialsPendingStatuses() {
		if s == st {
			return true
		}
	}
	return false
}

// Validate checks that the status is part of the closed work order vocabulary.
func (s Status) Validate() error {
	if !Transitions().Contains(s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid work order status", string(s)))
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
