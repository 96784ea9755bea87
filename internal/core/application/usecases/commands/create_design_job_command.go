package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrCreateDesignJobCommandIsNotConstructed = errors.New(
	"CreateDesignJobCommand must be created via NewCreateDesignJobCommand constructor",
)

// CreateDesignJobCommand represents a request to open the design stage for an
// order item. Creation is idempotent per (organization, order item): retrying
// the command returns the existing job instead of failing.
//
// Example:
//
//	cmd, err := NewCreateDesignJobCommand(orgID, itemID, "Engraved panel", "walnut, 20x30", 3, &userID)
//	if err != nil {
//	    return fmt.Errorf("invalid design job data: %w", err)
//	}
//	job, err := handler.Handle(ctx, cmd)
type CreateDesignJobCommand struct { //nolint:recvcheck //using for validation
	orgID       kernel.UUID
	orderItemID kernel.UUID
	title       string
	brief       string
	priority    int
	actorID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDesignJobCommand creates a command to open a design job.
// Title is required and priority must lie within the design job bounds.
func NewCreateDesignJobCommand(
	orgID, orderItemID kernel.UUID,
	title, brief string,
	priority int,
	actorID *kernel.UUID,
) (CreateDesignJobCommand, error) {
	cmd := CreateDesignJobCommand{
		brief: brief,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrgID(orgID),
		cmd.setOrderItemID(orderItemID),
		cmd.setTitle(title),
		cmd.setPriority(priority),
		cmd.setActorID(actorID),
	); err != nil {
		return CreateDesignJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDesignJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateDesignJobCommandIsNotConstructed)
}

// OrgID returns the organization the job belongs to.
func (c CreateDesignJobCommand) OrgID() kernel.UUID { return c.orgID }

// OrderItemID returns the order item the job designs for.
func (c CreateDesignJobCommand) OrderItemID() kernel.UUID { return c.orderItemID }

// Title returns the short job title.
func (c CreateDesignJobCommand) Title() string { return c.title }

// Brief returns the free-form design brief.
func (c CreateDesignJobCommand) Brief() string { return c.brief }

// Priority returns the job priority.
func (c CreateDesignJobCommand) Priority() int { return c.priority }

// ActorID returns the acting user, or nil for engine-originated requests.
func (c CreateDesignJobCommand) ActorID() *kernel.UUID { return c.actorID }

func (c *CreateDesignJobCommand) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}
	c.orgID = orgID
	return nil
}

func (c *CreateDesignJobCommand) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}
	c.orderItemID = orderItemID
	return nil
}

func (c *CreateDesignJobCommand) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	c.title = title
	return nil
}

func (c *CreateDesignJobCommand) setPriority(priority int) error {
	if priority < designjob.MinPriority || priority > designjob.MaxPriority {
		return errs.NewValueIsOutOfRangeError("priority", priority,
			designjob.MinPriority, designjob.MaxPriority)
	}
	c.priority = priority
	return nil
}

func (c *CreateDesignJobCommand) setActorID(actorID *kernel.UUID) error {
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return err
		}
	}
	c.actorID = actorID
	return nil
}
