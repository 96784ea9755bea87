package purchaseorder

import (
	"errors"
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var (
	// ErrPurchaseOrderIsNotConstructed is returned when a PurchaseOrder was
	// not created through its constructors.
	ErrPurchaseOrderIsNotConstructed = errors.New("PurchaseOrder must be created via NewPurchaseOrder or RestorePurchaseOrder")

	// ErrNoItems is returned when a purchase order is created without items.
	ErrNoItems = errors.New("purchase order requires at least one item")
)

// Item is a purchase order line. It links back to the material requirement it
// covers so that receiving the order can advance the requirement.
type Item struct {
	id            kernel.UUID
	requirementID kernel.UUID
	materialID    kernel.UUID
	quantity      int
	unitPriceCent int64
}

// NewItem creates a purchase order line.
func NewItem(id, requirementID, materialID kernel.UUID, quantity int, unitPriceCent int64) (Item, error) {
	if err := errors.Join(
		id.Validate(),
		requirementID.Validate(),
		materialID.Validate(),
	); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPriceCent < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%d is negative", unitPriceCent))
	}

	return Item{
		id:            id,
		requirementID: requirementID,
		materialID:    materialID,
		quantity:      quantity,
		unitPriceCent: unitPriceCent,
	}, nil
}

// ID returns the line's unique identifier.
func (i Item) ID() kernel.UUID { return i.id }

// RequirementID returns the material requirement this line covers.
func (i Item) RequirementID() kernel.UUID { return i.requirementID }

// MaterialID returns the ordered material.
func (i Item) MaterialID() kernel.UUID { return i.materialID }

// Quantity returns the ordered quantity.
func (i Item) Quantity() int { return i.quantity }

// UnitPriceCent returns the unit price in cents.
func (i Item) UnitPriceCent() int64 { return i.unitPriceCent }

// AmountCent returns quantity times unit price in cents.
func (i Item) AmountCent() int64 { return int64(i.quantity) * i.unitPriceCent }

// PurchaseOrder is the aggregate root for procurement. One purchase order
// covers the pending material requirements of one supplier, possibly across
// several work orders.
//
// The total amount is always derived from the lines; it is never stored
// independently.
type PurchaseOrder struct {
	id                    kernel.UUID
	orgID                 kernel.UUID
	supplierID            kernel.UUID
	status                Status
	items                 []Item
	approvalThresholdCent int64
	createdAt             time.Time
	updatedAt             time.Time

	guard guard.ConstructorGuard
}

// NewPurchaseOrder creates a purchase order in draft status. At least one
// item is required.
func NewPurchaseOrder(id, orgID, supplierID kernel.UUID, approvalThresholdCent int64, items []Item) (*PurchaseOrder, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		supplierID.Validate(),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if approvalThresholdCent < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("approval threshold is invalid",
			fmt.Errorf("%d is negative", approvalThresholdCent))
	}

	now := time.Now().UTC()
	po := &PurchaseOrder{
		id:                    id,
		orgID:                 orgID,
		supplierID:            supplierID,
		status:                Draft,
		items:                 append([]Item(nil), items...),
		approvalThresholdCent: approvalThresholdCent,
		createdAt:             now,
		updatedAt:             now,
		guard:                 guard.NewConstructorGuard(),
	}
	return po, nil
}

// RestorePurchaseOrder reconstructs a purchase order from persistence.
func RestorePurchaseOrder(
	id, orgID, supplierID kernel.UUID,
	status Status,
	items []Item,
	approvalThresholdCent int64,
	createdAt, updatedAt time.Time,
) (*PurchaseOrder, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		supplierID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	return &PurchaseOrder{
		id:                    id,
		orgID:                 orgID,
		supplierID:            supplierID,
		status:                status,
		items:                 append([]Item(nil), items...),
		approvalThresholdCent: approvalThresholdCent,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the aggregate was created through a constructor.
func (p *PurchaseOrder) Validate() error {
	if p == nil {
		return ErrPurchaseOrderIsNotConstructed
	}
	return p.guard.Validate(ErrPurchaseOrderIsNotConstructed)
}

// ID returns the purchase order's unique identifier.
func (p *PurchaseOrder) ID() kernel.UUID { return p.id }

// OrgID returns the owning organization identifier.
func (p *PurchaseOrder) OrgID() kernel.UUID { return p.orgID }

// SupplierID returns the supplier the order is placed with.
func (p *PurchaseOrder) SupplierID() kernel.UUID { return p.supplierID }

// Status returns the current lifecycle status.
func (p *PurchaseOrder) Status() Status { return p.status }

// Items returns a copy of the order lines.
func (p *PurchaseOrder) Items() []Item {
	return append([]Item(nil), p.items...)
}

// ApprovalThresholdCent returns the threshold below which the order skips the
// approval queue.
func (p *PurchaseOrder) ApprovalThresholdCent() int64 { return p.approvalThresholdCent }

// TotalAmountCent returns the sum of all line amounts in cents.
func (p *PurchaseOrder) TotalAmountCent() int64 {
	var total int64
	for _, item := range p.items {
		total += item.AmountCent()
	}
	return total
}

// CreatedAt returns the creation timestamp (UTC).
func (p *PurchaseOrder) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last mutation timestamp (UTC).
func (p *PurchaseOrder) UpdatedAt() time.Time { return p.updatedAt }

// ChangeStatus moves the purchase order along an edge of the transition graph.
func (p *PurchaseOrder) ChangeStatus(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !p.status.CanTransitionTo(to) {
		return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
			fmt.Errorf("purchase order cannot move from %s to %s", p.status, to))
	}

	p.status = to
	p.updatedAt = time.Now().UTC()
	return nil
}

// Submit moves a draft out of draft: orders whose total stays below the
// approval threshold are auto-approved, all others queue for approval.
func (p *PurchaseOrder) Submit() error {
	if p.TotalAmountCent() < p.approvalThresholdCent {
		return p.ChangeStatus(Approved)
	}
	return p.ChangeStatus(PendingApproval)
}

// Approve approves a pending purchase order.
func (p *PurchaseOrder) Approve() error {
	return p.ChangeStatus(Approved)
}

// Receive records that the delivered order was received at the warehouse.
func (p *PurchaseOrder) Receive() error {
	return p.ChangeStatus(Received)
}
