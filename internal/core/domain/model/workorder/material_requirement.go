package workorder

import (
	"errors"
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

// RequirementStatus tracks a material requirement from demand to fulfillment.
// The progression is linear: pending -> ordered -> received -> fulfilled.
type RequirementStatus string

const (
	RequirementPending   RequirementStatus = "pending"
	RequirementOrdered   RequirementStatus = "ordered"
	RequirementReceived  RequirementStatus = "received"
	RequirementFulfilled RequirementStatus = "fulfilled"
)

// RequirementTransitions returns the transition graph for requirement
// statuses.
func RequirementTransitions() kernel.StatusGraph[RequirementStatus] {
	return kernel.StatusGraph[RequirementStatus]{
		RequirementPending:   {RequirementOrdered},
		RequirementOrdered:   {RequirementReceived},
		RequirementReceived:  {RequirementFulfilled},
		RequirementFulfilled: {},
	}
}

// Validate checks membership in the closed requirement status vocabulary.
func (s RequirementStatus) Validate() error {
	if !RequirementTransitions().Contains(s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid material requirement status", string(s)))
	}
	return nil
}

// String returns the persisted representation of the status.
func (s RequirementStatus) String() string {
	return string(s)
}

// ErrRequirementIsNotConstructed is returned when a MaterialRequirement was
// not created through its constructors.
var ErrRequirementIsNotConstructed = errors.New("MaterialRequirement must be created via NewMaterialRequirement or RestoreMaterialRequirement")

// MaterialRequirement records a quantity of a material that a work order
// needs before production can proceed. Pending requirements are swept into
// supplier-grouped purchase orders by the purchase-order generation cascade.
type MaterialRequirement struct {
	id             kernel.UUID
	orgID          kernel.UUID
	workOrderID    kernel.UUID
	materialID     kernel.UUID
	supplierID     kernel.UUID
	quantityNeeded int
	unitCostCent   int64
	status         RequirementStatus
	updatedAt      time.Time

	guard guard.ConstructorGuard
}

// NewMaterialRequirement creates a pending requirement. unitCostCent is the
// estimated per-unit cost used to price generated purchase order lines.
func NewMaterialRequirement(id, orgID, workOrderID, materialID, supplierID kernel.UUID, quantityNeeded int, unitCostCent int64) (*MaterialRequirement, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		workOrderID.Validate(),
		materialID.Validate(),
		supplierID.Validate(),
		validateQuantity(quantityNeeded),
		validateUnitCost(unitCostCent),
	); err != nil {
		return nil, err
	}

	return &MaterialRequirement{
		id:             id,
		orgID:          orgID,
		workOrderID:    workOrderID,
		materialID:     materialID,
		supplierID:     supplierID,
		quantityNeeded: quantityNeeded,
		unitCostCent:   unitCostCent,
		status:         RequirementPending,
		updatedAt:      time.Now().UTC(),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreMaterialRequirement reconstructs a requirement from persistence.
func RestoreMaterialRequirement(
	id, orgID, workOrderID, materialID, supplierID kernel.UUID,
	quantityNeeded int,
	unitCostCent int64,
	status RequirementStatus,
	updatedAt time.Time,
) (*MaterialRequirement, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		workOrderID.Validate(),
		materialID.Validate(),
		supplierID.Validate(),
		validateQuantity(quantityNeeded),
		validateUnitCost(unitCostCent),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &MaterialRequirement{
		id:             id,
		orgID:          orgID,
		workOrderID:    workOrderID,
		materialID:     materialID,
		supplierID:     supplierID,
		quantityNeeded: quantityNeeded,
		unitCostCent:   unitCostCent,
		status:         status,
		updatedAt:      updatedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the requirement was created through a constructor.
func (m *MaterialRequirement) Validate() error {
	if m == nil {
		return ErrRequirementIsNotConstructed
	}
	return m.guard.Validate(ErrRequirementIsNotConstructed)
}

// ID returns the requirement's unique identifier.
func (m *MaterialRequirement) ID() kernel.UUID { return m.id }

// OrgID returns the owning organization identifier.
func (m *MaterialRequirement) OrgID() kernel.UUID { return m.orgID }

// WorkOrderID returns the work order that needs the material.
func (m *MaterialRequirement) WorkOrderID() kernel.UUID { return m.workOrderID }

// MaterialID returns the required material.
func (m *MaterialRequirement) MaterialID() kernel.UUID { return m.materialID }

// SupplierID returns the supplier the material is sourced from. Purchase
// order generation groups pending requirements by this value.
func (m *MaterialRequirement) SupplierID() kernel.UUID { return m.supplierID }

// QuantityNeeded returns the required quantity.
func (m *MaterialRequirement) QuantityNeeded() int { return m.quantityNeeded }

// UnitCostCent returns the estimated per-unit cost in cents.
func (m *MaterialRequirement) UnitCostCent() int64 { return m.unitCostCent }

// Status returns the requirement's current status.
func (m *MaterialRequirement) Status() RequirementStatus { return m.status }

// UpdatedAt returns the last mutation timestamp (UTC).
func (m *MaterialRequirement) UpdatedAt() time.Time { return m.updatedAt }

// MarkOrdered records that the requirement is covered by a purchase order.
func (m *MaterialRequirement) MarkOrdered() error {
	return m.changeStatus(RequirementOrdered)
}

// MarkReceived records that the ordered material arrived.
func (m *MaterialRequirement) MarkReceived() error {
	return m.changeStatus(RequirementReceived)
}

// MarkFulfilled records that the material was consumed by production.
func (m *MaterialRequirement) MarkFulfilled() error {
	return m.changeStatus(RequirementFulfilled)
}

func validateUnitCost(unitCostCent int64) error {
	if unitCostCent < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit cost is invalid",
			fmt.Errorf("%d is negative", unitCostCent))
	}
	return nil
}

func (m *MaterialRequirement) changeStatus(to RequirementStatus) error {
	if !RequirementTransitions().CanTransition(m.status, to) {
		return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
			fmt.Errorf("material requirement cannot move from %s to %s", m.status, to))
	}
	m.status = to
	m.updatedAt = time.Now().UTC()
	return nil
}
