package fulfillment

import (
	"errors"
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

// ErrOrderItemIsNotConstructed is returned when an OrderItem was not created
// through its constructors.
var ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem or RestoreOrderItem")

// OrderItem is the engine's view of a customer order line: the anchor that
// design jobs and work orders attach to, carrying the item's fulfillment
// stage. Creation and commercial details live upstream; the engine only
// advances the stage as the coupled life cycles progress.
type OrderItem struct {
	id          kernel.UUID
	orgID       kernel.UUID
	orderID     kernel.UUID
	productName string
	stage       Status
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

// NewOrderItem creates an order item in the not_started fulfillment stage.
func NewOrderItem(id, orgID, orderID kernel.UUID, productName string) (*OrderItem, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		orderID.Validate(),
	); err != nil {
		return nil, err
	}
	if productName == "" {
		return nil, errs.NewValueIsRequiredError("product name")
	}

	return &OrderItem{
		id:          id,
		orgID:       orgID,
		orderID:     orderID,
		productName: productName,
		stage:       NotStarted,
		updatedAt:   time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrderItem reconstructs an order item from persistence.
func RestoreOrderItem(id, orgID, orderID kernel.UUID, productName string, stage Status, updatedAt time.Time) (*OrderItem, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		orderID.Validate(),
		stage.Validate(),
	); err != nil {
		return nil, err
	}

	return &OrderItem{
		id:          id,
		orgID:       orgID,
		orderID:     orderID,
		productName: productName,
		stage:       stage,
		updatedAt:   updatedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the order item was created through a constructor.
func (o *OrderItem) Validate() error {
	if o == nil {
		return ErrOrderItemIsNotConstructed
	}
	return o.guard.Validate(ErrOrderItemIsNotConstructed)
}

// ID returns the order item's unique identifier.
func (o *OrderItem) ID() kernel.UUID { return o.id }

// OrgID returns the owning organization identifier.
func (o *OrderItem) OrgID() kernel.UUID { return o.orgID }

// OrderID returns the customer order the item belongs to.
func (o *OrderItem) OrderID() kernel.UUID { return o.orderID }

// ProductName returns the ordered product's name.
func (o *OrderItem) ProductName() string { return o.productName }

// Stage returns the item's fulfillment stage.
func (o *OrderItem) Stage() Status { return o.stage }

// UpdatedAt returns the last mutation timestamp (UTC).
func (o *OrderItem) UpdatedAt() time.Time { return o.updatedAt }

// AdvanceStage moves the item along an edge of the fulfillment graph.
func (o *OrderItem) AdvanceStage(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !o.stage.CanTransitionTo(to) {
		return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
			fmt.Errorf("order item cannot move from %s to %s", o.stage, to))
	}

	o.stage = to
	o.updatedAt = time.Now().UTC()
	return nil
}
