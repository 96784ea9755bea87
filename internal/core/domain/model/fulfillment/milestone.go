package fulfillment

import (
	"errors"
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

// Code identifies a fulfillment milestone. The set is closed; the default
// sequence is seeded for an order when its first work order is created.
type Code string

const (
	ProductionScheduled  Code = "PRODUCTION_SCHEDULED"
	ProductionStarted    Code = "PRODUCTION_STARTED"
	QualityCheckPassed   Code = "QUALITY_CHECK_PASSED"
	ReadyForPackaging    Code = "READY_FOR_PACKAGING"
	ReadyToShipMilestone Code = "READY_TO_SHIP"
	ShippedMilestone     Code = "SHIPPED"
)

// DefaultCodes returns the milestone sequence seeded for every order, in
// order.
func DefaultCodes() []Code {
	return []Code{
		ProductionScheduled,
		ProductionStarted,
		QualityCheckPassed,
		ReadyForPackaging,
		ReadyToShipMilestone,
		ShippedMilestone,
	}
}

// Validate checks that the code is part of the closed milestone set.
func (c Code) Validate() error {
	for _, known := range DefaultCodes() {
		if c == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("milestone code is invalid",
		fmt.Errorf("%q is not a known milestone code", string(c)))
}

// String returns the persisted representation of the code.
func (c Code) String() string {
	return string(c)
}

// MilestoneStatus tracks a single milestone. Blocked milestones return to
// pending or in_progress when the blocking delay is resolved.
type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneBlocked    MilestoneStatus = "blocked"
)

// MilestoneTransitions returns the transition graph for milestone statuses.
func MilestoneTransitions() kernel.StatusGraph[MilestoneStatus] {
	return kernel.StatusGraph[MilestoneStatus]{
		MilestonePending:    {MilestoneInProgress, MilestoneCompleted, MilestoneBlocked},
		MilestoneInProgress: {MilestoneCompleted, MilestoneBlocked},
		MilestoneBlocked:    {MilestonePending, MilestoneInProgress},
		MilestoneCompleted:  {},
	}
}

// Validate checks membership in the closed milestone status vocabulary.
func (s MilestoneStatus) Validate() error {
	if !MilestoneTransitions().Contains(s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid milestone status", string(s)))
	}
	return nil
}

// String returns the persisted representation of the status.
func (s MilestoneStatus) String() string {
	return string(s)
}

// ErrMilestoneIsNotConstructed is returned when a Milestone was not created
// through its constructors.
var ErrMilestoneIsNotConstructed = errors.New("Milestone must be created via NewMilestone or RestoreMilestone")

// Milestone is one step of an order's fulfillment checklist. Milestones are
// advanced by manufacturing cascades and blocked when production is delayed.
// At most one milestone exists per (org, order, code).
type Milestone struct {
	id            kernel.UUID
	orgID         kernel.UUID
	orderID       kernel.UUID
	code          Code
	status        MilestoneStatus
	blockedReason string
	updatedAt     time.Time

	guard guard.ConstructorGuard
}

// NewMilestone creates a pending milestone.
func NewMilestone(id, orgID, orderID kernel.UUID, code Code) (*Milestone, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		orderID.Validate(),
		code.Validate(),
	); err != nil {
		return nil, err
	}

	return &Milestone{
		id:        id,
		orgID:     orgID,
		orderID:   orderID,
		code:      code,
		status:    MilestonePending,
		updatedAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreMilestone reconstructs a milestone from persistence.
func RestoreMilestone(
	id, orgID, orderID kernel.UUID,
	code Code,
	status MilestoneStatus,
	blockedReason string,
	updatedAt time.Time,
) (*Milestone, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		orderID.Validate(),
		code.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Milestone{
		id:            id,
		orgID:         orgID,
		orderID:       orderID,
		code:          code,
		status:        status,
		blockedReason: blockedReason,
		updatedAt:     updatedAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the milestone was created through a constructor.
func (m *Milestone) Validate() error {
	if m == nil {
		return ErrMilestoneIsNotConstructed
	}
	return m.guard.Validate(ErrMilestoneIsNotConstructed)
}

// ID returns the milestone's unique identifier.
func (m *Milestone) ID() kernel.UUID { return m.id }

// OrgID returns the owning organization identifier.
func (m *Milestone) OrgID() kernel.UUID { return m.orgID }

// OrderID returns the customer order the milestone belongs to.
func (m *Milestone) OrderID() kernel.UUID { return m.orderID }

// Code returns the milestone code.
func (m *Milestone) Code() Code { return m.code }

// Status returns the milestone's current status.
func (m *Milestone) Status() MilestoneStatus { return m.status }

// BlockedReason returns why the milestone is blocked, empty when it is not.
func (m *Milestone) BlockedReason() string { return m.blockedReason }

// UpdatedAt returns the last mutation timestamp (UTC).
func (m *Milestone) UpdatedAt() time.Time { return m.updatedAt }

// Start moves the milestone to in_progress.
func (m *Milestone) Start() error {
	return m.changeStatus(MilestoneInProgress, "")
}

// Complete finishes the milestone. Completed is terminal.
func (m *Milestone) Complete() error {
	return m.changeStatus(MilestoneCompleted, "")
}

// Block marks the milestone blocked with the given reason. The reason is
// required.
func (m *Milestone) Block(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("blocked reason")
	}
	return m.changeStatus(MilestoneBlocked, reason)
}

// Unblock returns a blocked milestone to pending.
func (m *Milestone) Unblock() error {
	return m.changeStatus(MilestonePending, "")
}

// IsOpen reports whether the milestone can still be blocked, i.e. it is not
// completed.
func (m *Milestone) IsOpen() bool {
	return m.status != MilestoneCompleted
}

func (m *Milestone) changeStatus(to MilestoneStatus, reason string) error {
	if !MilestoneTransitions().CanTransition(m.status, to) {
		return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
			fmt.Errorf("milestone %s cannot move from %s to %s", m.code, m.status, to))
	}
	m.status = to
	m.blockedReason = reason
	m.updatedAt = time.Now().UTC()
	return nil
}
