package workorder

import (
	"errors"
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

// Priority bounds for work orders. 1 is lowest, 5 is most urgent.
const (
	MinPriority = 1
	MaxPriority = 5
)

// ErrWorkOrderIsNotConstructed is returned when a WorkOrder instance was not
// created through NewWorkOrder or RestoreWorkOrder.
var ErrWorkOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder or RestoreWorkOrder")

// WorkOrder is the aggregate root for the manufacturing stage of an order
// item. It is created manually or auto-generated when the item's design job
// reaches approval.
//
// Invariants:
//   - id, orgID, orderItemID and orderID are valid UUIDs
//   - at most one work order exists per order item within an organization
//     (data store natural-key constraint)
//   - quantity is positive
//   - status only moves along edges of the work order transition graph
type WorkOrder struct {
	id             kernel.UUID
	orgID          kernel.UUID
	orderItemID    kernel.UUID
	orderID        kernel.UUID
	manufacturerID *kernel.UUID
	status         Status
	priority       int
	quantity       int
	plannedStart   *time.Time
	plannedEnd     *time.Time
	actualStart    *time.Time
	actualEnd      *time.Time
	delayReason    string
	qualityNotes   string
	createdAt      time.Time
	updatedAt      time.Time

	guard guard.ConstructorGuard
}

// NewWorkOrder creates a work order in pending status with no manufacturer.
func NewWorkOrder(id, orgID, orderItemID, orderID kernel.UUID, quantity, priority int) (*WorkOrder, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		orderItemID.Validate(),
		orderID.Validate(),
		validateQuantity(quantity),
		validateWorkOrderPriority(priority),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &WorkOrder{
		id:          id,
		orgID:       orgID,
		orderItemID: orderItemID,
		orderID:     orderID,
		status:      Pending,
		priority:    priority,
		quantity:    quantity,
		createdAt:   now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreWorkOrder reconstructs a work order from persistence.
func RestoreWorkOrder(
	id, orgID, orderItemID, orderID kernel.UUID,
	manufacturerID *kernel.UUID,
	status Status,
	priority, quantity int,
	plannedStart, plannedEnd, actualStart, actualEnd *time.Time,
	delayReason, qualityNotes string,
	createdAt, updatedAt time.Time,
) (*WorkOrder, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		orderItemID.Validate(),
		orderID.Validate(),
		status.Validate(),
		validateQuantity(quantity),
		validateWorkOrderPriority(priority),
	); err != nil {
		return nil, err
	}
	if manufacturerID != nil {
		if err := manufacturerID.Validate(); err != nil {
			return nil, err
		}
	}

	return &WorkOrder{
		id:             id,
		orgID:          orgID,
		orderItemID:    orderItemID,
		orderID:        orderID,
		manufacturerID: manufacturerID,
		status:         status,
		priority:       priority,
		quantity:       quantity,
		plannedStart:   plannedStart,
		plannedEnd:     plannedEnd,
		actualStart:    actualStart,
		actualEnd:      actualEnd,
		delayReason:    delayReason,
		qualityNotes:   qualityNotes,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the aggregate was created through a constructor.
func (w *WorkOrder) Validate() error {
	if w == nil {
		return ErrWorkOrderIsNotConstructed
	}
	return w.guard.Validate(ErrWorkOrderIsNotConstructed)
}

// ID returns the work order's unique identifier.
func (w *WorkOrder) ID() kernel.UUID { return w.id }

// OrgID returns the owning organization (tenant) identifier.
func (w *WorkOrder) OrgID() kernel.UUID { return w.orgID }

// OrderItemID returns the order item this work order manufactures.
func (w *WorkOrder) OrderItemID() kernel.UUID { return w.orderItemID }

// OrderID returns the customer order the item belongs to.
func (w *WorkOrder) OrderID() kernel.UUID { return w.orderID }

// ManufacturerID returns the assigned manufacturer, or nil when unassigned.
func (w *WorkOrder) ManufacturerID() *kernel.UUID { return w.manufacturerID }

// Status returns the current lifecycle status.
func (w *WorkOrder) Status() Status { return w.status }

// Priority returns the work order priority (1 lowest .. 5 most urgent).
func (w *WorkOrder) Priority() int { return w.priority }

// Quantity returns the number of units to manufacture.
func (w *WorkOrder) Quantity() int { return w.quantity }

// PlannedStart returns the planned production start date, if set.
func (w *WorkOrder) PlannedStart() *time.Time { return w.plannedStart }

// PlannedEnd returns the planned production end date, if set.
func (w *WorkOrder) PlannedEnd() *time.Time { return w.plannedEnd }

// ActualStart returns the actual production start, recorded on entering
// in_production.
func (w *WorkOrder) ActualStart() *time.Time { return w.actualStart }

// ActualEnd returns the actual production end, recorded on completion.
func (w *WorkOrder) ActualEnd() *time.Time { return w.actualEnd }

// DelayReason returns the last reported delay reason, empty when none.
func (w *WorkOrder) DelayReason() string { return w.delayReason }

// QualityNotes returns free-form notes from quality checks.
func (w *WorkOrder) QualityNotes() string { return w.qualityNotes }

// CreatedAt returns the creation timestamp (UTC).
func (w *WorkOrder) CreatedAt() time.Time { return w.createdAt }

// UpdatedAt returns the last mutation timestamp (UTC).
func (w *WorkOrder) UpdatedAt() time.Time { return w.updatedAt }

// SchedulePlan sets the planned production window.
func (w *WorkOrder) SchedulePlan(start, end time.Time) error {
	if end.Before(start) {
		return errs.NewValueIsInvalidErrorWithCause("planned window is invalid",
			fmt.Errorf("planned end %s precedes planned start %s", end, start))
	}
	w.plannedStart = &start
	w.plannedEnd = &end
	w.touch()
	return nil
}

// ChangeStatus moves the work order along an edge of the transition graph and
// maintains the actual production window: entering in_production stamps
// actualStart (first time only), entering completed or shipped stamps
// actualEnd.
func (w *WorkOrder) ChangeStatus(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !w.status.CanTransitionTo(to) {
		return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
			fmt.Errorf("work order cannot move from %s to %s", w.status, to))
	}

	now := time.Now().UTC()
	if to == InProduction && w.actualStart == nil {
		w.actualStart = &now
	}
	if (to == Completed || to == Shipped) && w.actualEnd == nil {
		w.actualEnd = &now
	}

	w.status = to
	w.touch()
	return nil
}

// AssignManufacturer assigns the work order to a manufacturer. Assignment does
// not change the status; scheduling does that separately.
func (w *WorkOrder) AssignManufacturer(manufacturerID kernel.UUID) error {
	if err := manufacturerID.Validate(); err != nil {
		return err
	}
	if w.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s work order cannot be assigned", w.status))
	}

	w.manufacturerID = &manufacturerID
	w.touch()
	return nil
}

// ReportDelay records a production delay. The reason is required. When hold is
// true the work order also moves to on_hold, which must be a legal transition
// from the current status.
func (w *WorkOrder) ReportDelay(reason string, hold bool) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("delay reason")
	}

	if hold {
		if err := w.ChangeStatus(OnHold); err != nil {
			return err
		}
	}

	w.delayReason = reason
	w.touch()
	return nil
}

// RecordQualityNotes appends notes from a quality check.
func (w *WorkOrder) RecordQualityNotes(notes string) {
	w.qualityNotes = notes
	w.touch()
}

func (w *WorkOrder) touch() {
	w.updatedAt = time.Now().UTC()
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}

func validateWorkOrderPriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return errs.NewValueIsOutOfRangeError("priority", priority, MinPriority, MaxPriority)
	}
	return nil
}
