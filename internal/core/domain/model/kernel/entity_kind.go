package kernel

import (
	"fmt"

	"manufacturing/internal/pkg/errs"
)

// EntityKind identifies the workflow entity a status transition or an audit
// event belongs to. Each kind owns its own transition graph and its own
// closed set of audit event codes.
type EntityKind string

const (
	KindDesignJob     EntityKind = "design_job"
	KindWorkOrder     EntityKind = "work_order"
	KindPurchaseOrder EntityKind = "purchase_order"
	KindOrderItem     EntityKind = "order_item"
)

// knownEntityKinds lists every kind the engine recognizes. Unknown kinds fail
// closed everywhere: no transitions, no event codes.
func knownEntityKinds() map[EntityKind]struct{} {
	return map[EntityKind]struct{}{
		KindDesignJob:     {},
		KindWorkOrder:     {},
		KindPurchaseOrder: {},
		KindOrderItem:     {},
	}
}

// Validate checks that the kind is one of the known workflow entity kinds.
func (k EntityKind) Validate() error {
	if _, ok := knownEntityKinds()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("entity kind is invalid",
			fmt.Errorf("%q is not a known entity kind", string(k)))
	}
	return nil
}

// String returns the persisted representation of the kind.
func (k EntityKind) String() string {
	return string(k)
}
