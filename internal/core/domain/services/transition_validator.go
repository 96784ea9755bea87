package services

import (
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/fulfillment"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/purchaseorder"
	"manufacturing/internal/core/domain/model/workorder"
)

// CanTransition reports whether the status move is legal for the given
// entity kind. Unknown kinds and unknown states fail closed (no legal moves).
// Self-transitions are only legal when the kind's graph lists them.
func CanTransition(kind kernel.EntityKind, from, to string) bool {
	switch kind {
	case kernel.KindDesignJob:
		return designjob.Transitions().CanTransition(designjob.Status(from), designjob.Status(to))
	case kernel.KindWorkOrder:
		return workorder.Transitions().CanTransition(workorder.Status(from), workorder.Status(to))
	case kernel.KindPurchaseOrder:
		return purchaseorder.Transitions().CanTransition(purchaseorder.Status(from), purchaseorder.Status(to))
	case kernel.KindOrderItem:
		return fulfillment.Transitions().CanTransition(fulfillment.Status(from), fulfillment.Status(to))
	default:
		return false
	}
}

// ValidTransitions returns the statuses reachable in one step from the given
// state for the given entity kind. Unknown kinds and unknown states yield an
// empty set.
func ValidTransitions(kind kernel.EntityKind, from string) []string {
	switch kind {
	case kernel.KindDesignJob:
		return toStrings(designjob.Transitions().ValidTransitions(designjob.Status(from)))
	case kernel.KindWorkOrder:
		return toStrings(workorder.Transitions().ValidTransitions(workorder.Status(from)))
	case kernel.KindPurchaseOrder:
		return toStrings(purchaseorder.Transitions().ValidTransitions(purchaseorder.Status(from)))
	case kernel.KindOrderItem:
		return toStrings(fulfillment.Transitions().ValidTransitions(fulfillment.Status(from)))
	default:
		return []string{}
	}
}

// IsTerminal reports whether the state is a terminal state of the kind's
// graph. Unknown states are not terminal; they are simply unknown.
func IsTerminal(kind kernel.EntityKind, state string) bool {
	switch kind {
	case kernel.KindDesignJob:
		return designjob.Transitions().IsTerminal(designjob.Status(state))
	case kernel.KindWorkOrder:
		return workorder.Transitions().IsTerminal(workorder.Status(state))
	case kernel.KindPurchaseOrder:
		return purchaseorder.Transitions().IsTerminal(purchaseorder.Status(state))
	case kernel.KindOrderItem:
		return fulfillment.Transitions().IsTerminal(fulfillment.Status(state))
	default:
		return false
	}
}

func toStrings[S ~string](in []S) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}
