package designjob

import (
	"errors"
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

// Priority bounds for design jobs. 1 is lowest, 5 is most urgent.
const (
	MinPriority = 1
	MaxPriority = 5
)

// ErrDesignJobIsNotConstructed is returned when a DesignJob instance was not
// created through NewDesignJob or RestoreDesignJob.
var ErrDesignJobIsNotConstructed = errors.New("DesignJob must be created via NewDesignJob or RestoreDesignJob")

// DesignJob is the aggregate root for the design stage of an order item.
//
// Invariants:
//   - id, orgID and orderItemID are valid UUIDs
//   - at most one design job exists per order item within an organization
//     (enforced by the data store's natural-key constraint)
//   - status only moves along edges of the design job transition graph
//   - every read joins on orgID; a tenant mismatch reads as not-found
type DesignJob struct {
	id                 kernel.UUID
	orgID              kernel.UUID
	orderItemID        kernel.UUID
	assigneeDesignerID *kernel.UUID
	status             Status
	priority           int
	title              string
	brief              string
	createdAt          time.Time
	updatedAt          time.Time

	guard guard.ConstructorGuard
}

// NewDesignJob creates a design job in queued status with no assignee.
// Title is required; priority must lie within [MinPriority, MaxPriority].
func NewDesignJob(id, orgID, orderItemID kernel.UUID, title, brief string, priority int) (*DesignJob, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		orderItemID.Validate(),
		validateTitle(title),
		validatePriority(priority),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &DesignJob{
		id:          id,
		orgID:       orgID,
		orderItemID: orderItemID,
		status:      Queued,
		priority:    priority,
		title:       title,
		brief:       brief,
		createdAt:   now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreDesignJob reconstructs a design job from persistence. Unlike
// NewDesignJob it accepts any status from the closed vocabulary and an
// optional assignee.
func RestoreDesignJob(
	id, orgID, orderItemID kernel.UUID,
	assigneeDesignerID *kernel.UUID,
	status Status,
	priority int,
	title, brief string,
	createdAt, updatedAt time.Time,
) (*DesignJob, error) {
	if err := errors.Join(
		id.Validate(),
		orgID.Validate(),
		orderItemID.Validate(),
		status.Validate(),
		validateTitle(title),
		validatePriority(priority),
	); err != nil {
		return nil, err
	}
	if assigneeDesignerID != nil {
		if err := assigneeDesignerID.Validate(); err != nil {
			return nil, err
		}
	}

	return &DesignJob{
		id:                 id,
		orgID:              orgID,
		orderItemID:        orderItemID,
		assigneeDesignerID: assigneeDesignerID,
		status:             status,
		priority:           priority,
		title:              title,
		brief:              brief,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the aggregate was created through a constructor.
func (j *DesignJob) Validate() error {
	if j == nil {
		return ErrDesignJobIsNotConstructed
	}
	return j.guard.Validate(ErrDesignJobIsNotConstructed)
}

// ID returns the design job's unique identifier.
func (j *DesignJob) ID() kernel.UUID { return j.id }

// OrgID returns the owning organization (tenant) identifier.
func (j *DesignJob) OrgID() kernel.UUID { return j.orgID }

// OrderItemID returns the order item this design job belongs to.
func (j *DesignJob) OrderItemID() kernel.UUID { return j.orderItemID }

// AssigneeDesignerID returns the assigned designer, or nil when unassigned.
func (j *DesignJob) AssigneeDesignerID() *kernel.UUID { return j.assigneeDesignerID }

// Status returns the current lifecycle status.
func (j *DesignJob) Status() Status { return j.status }

// Priority returns the job priority (1 lowest .. 5 most urgent).
func (j *DesignJob) Priority() int { return j.priority }

// Title returns the short job title.
func (j *DesignJob) Title() string { return j.title }

// Brief returns the free-form design brief.
func (j *DesignJob) Brief() string { return j.brief }

// CreatedAt returns the creation timestamp (UTC).
func (j *DesignJob) CreatedAt() time.Time { return j.createdAt }

// UpdatedAt returns the last mutation timestamp (UTC).
func (j *DesignJob) UpdatedAt() time.Time { return j.updatedAt }

// ChangeStatus moves the job along an edge of the transition graph.
// Illegal moves return a ValueIsInvalidError naming both states.
func (j *DesignJob) ChangeStatus(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !j.status.CanTransitionTo(to) {
		return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
			fmt.Errorf("design job cannot move from %s to %s", j.status, to))
	}

	j.status = to
	j.touch()
	return nil
}

// AssignDesigner assigns the job to a designer, moving it to assigned status.
// Reassignment of an already assigned job swaps the designer without a status
// change.
func (j *DesignJob) AssignDesigner(designerID kernel.UUID) error {
	if err := designerID.Validate(); err != nil {
		return err
	}

	if j.status != Assigned {
		if err := j.ChangeStatus(Assigned); err != nil {
			return err
		}
	}

	j.assigneeDesignerID = &designerID
	j.touch()
	return nil
}

// StartDrafting moves an assigned job into drafting.
func (j *DesignJob) StartDrafting() error {
	return j.ChangeStatus(Drafting)
}

// SubmitForReview submits the current draft for review.
func (j *DesignJob) SubmitForReview() error {
	return j.ChangeStatus(SubmittedForReview)
}

// Approve accepts the design. Approved is terminal; the caller fires the
// work-order cascade after the approval commits.
func (j *DesignJob) Approve() error {
	return j.ChangeStatus(Approved)
}

// RequestRevisions sends the design back to the designer.
func (j *DesignJob) RequestRevisions() error {
	return j.ChangeStatus(RevisionRequested)
}

// Reject declines the design without requesting another iteration.
func (j *DesignJob) Reject() error {
	return j.ChangeStatus(Rejected)
}

// Cancel cancels the job. Canceled is terminal.
func (j *DesignJob) Cancel() error {
	return j.ChangeStatus(Canceled)
}

func (j *DesignJob) touch() {
	j.updatedAt = time.Now().UTC()
}

func validateTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	return nil
}

func validatePriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return errs.NewValueIsOutOfRangeError("priority", priority, MinPriority, MaxPriority)
	}
	return nil
}
